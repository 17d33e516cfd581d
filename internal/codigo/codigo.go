// Package codigo assigns the human-readable correlative codes used across the
// system: P001, P002… for productos and V001, V002… for ventas.
package codigo

import (
	"fmt"
	"strconv"
	"strings"
)

// Numero extracts the numeric suffix of a code ("P087" → 87). Returns false
// for empty, prefix-less or non-numeric codes, which callers simply skip.
func Numero(c string) (int, bool) {
	if len(c) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(c[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Siguiente returns the next code for the given prefix: the highest numeric
// suffix among the existing codes plus one, zero-padded to 3 digits. Codes
// that do not parse are ignored; deleted records leave gaps that are never
// re-filled ({P001, P003} → P004). An empty collection yields prefix + "001".
// Numbers beyond 999 simply outgrow the padding (P1000).
func Siguiente(prefix string, existentes []string) string {
	max := 0
	for _, c := range existentes {
		if !strings.HasPrefix(c, prefix) {
			continue
		}
		n, ok := Numero(c)
		if ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}
