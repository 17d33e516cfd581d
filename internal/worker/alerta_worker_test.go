package worker

import (
	"context"
	"encoding/json"
	"testing"

	"puntoventa/internal/config"
	"puntoventa/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertaWorker_SinDestinoDescarta(t *testing.T) {
	mailer := infra.NewMailer(&config.Config{})
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	w := NewAlertaWorker(mailer, cb, "")

	raw, err := json.Marshal(AlertaStockPayload{
		ProductoID: "x", Codigo: "P001", Nombre: "Cafe", Stock: 2, Minimo: 10,
	})
	require.NoError(t, err)

	// No recipient configured: logged and dropped, never an error (a retry
	// loop would never succeed).
	assert.NoError(t, w.Handle(context.Background(), raw))
}

func TestAlertaWorker_PayloadInvalido(t *testing.T) {
	mailer := infra.NewMailer(&config.Config{})
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	w := NewAlertaWorker(mailer, cb, "deposito@ejemplo.com")

	assert.Error(t, w.Handle(context.Background(), json.RawMessage("{not json")))
}
