package infra

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_NombreConAcentos(t *testing.T) {
	// "Azúcar impalpable 500g x2" has 25 runes but more bytes: a byte-based
	// cut at 24 would land inside the ú and leave invalid UTF-8 in the ticket.
	got := truncate("Azúcar impalpable 500g x2", 24)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 24, len([]rune(got)))
	assert.Equal(t, "Azúcar impalpable 500g …", got)
}

func TestTruncate_CortoPasaIntacto(t *testing.T) {
	assert.Equal(t, "Café", truncate("Café", 26))
	assert.Equal(t, "Café", truncate("Café", 4))
	assert.Equal(t, "", truncate("", 26))
}
