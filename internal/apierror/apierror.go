// Package apierror provides standardized error response structures for the API
// and the typed error taxonomy used by the service layer. All errors returned
// to clients go through this package to ensure consistency and to prevent
// leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ── Domain error taxonomy ─────────────────────────────────────────────────────
// The venta engine returns one of these; the handler layer maps them to HTTP
// status codes with Status(). Messages carry ids and quantities but never
// internal detail beyond that.

// InvalidError signals a malformed or missing required field in a request
// (user-correctable).
type InvalidError struct {
	Detail string
}

func (e *InvalidError) Error() string { return e.Detail }

func Invalidf(format string, args ...any) *InvalidError {
	return &InvalidError{Detail: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced record does not exist.
type NotFoundError struct {
	Recurso string // "producto" | "venta" | "usuario"
	ID      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Recurso, e.ID)
}

func NotFound(recurso, id string) *NotFoundError {
	return &NotFoundError{Recurso: recurso, ID: id}
}

// StockInsuficienteError carries the product and the quantities involved so
// the client can correct the cart.
type StockInsuficienteError struct {
	ProductoID string
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, solicitado %d",
		e.ProductoID, e.Disponible, e.Solicitado)
}

// StorageError wraps a failure of the underlying store. Never retried
// automatically; the caller decides.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("error de almacenamiento en %s", e.Op) }
func (e *StorageError) Unwrap() error { return e.Err }

func Storage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// Status maps a domain error to its HTTP status code.
// Unknown errors default to 500 so nothing internal leaks as a 4xx detail.
func Status(err error) int {
	var (
		invalid  *InvalidError
		notFound *NotFoundError
		stock    *StockInsuficienteError
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &stock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromErr builds the response envelope for a domain error. Storage and unknown
// errors get a generic message; the real cause stays in the server log.
func FromErr(err error) *APIError {
	if Status(err) == http.StatusInternalServerError {
		return New("Error interno del servidor")
	}
	return New(err.Error())
}
