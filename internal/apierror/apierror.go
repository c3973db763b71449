// Package apierror provides standardized error response structures for the API
// and the error taxonomy the services report through.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ── Taxonomy ─────────────────────────────────────────────────────────────────

// Kind classifies a service error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindIntegrity:
		return "integrity"
	default:
		return "internal"
	}
}

// Error is a classified service error. Msg is safe to show to clients; Err,
// when present, is the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error

	// enCuerpo marks a missing reference named in the request body rather
	// than in the path; it is answered with 400 instead of 404.
	enCuerpo bool
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validacion reports malformed or missing input. No state was changed.
func Validacion(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// Validacionf is Validacion with formatting.
func Validacionf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NoEncontrado reports a referenced entity (sale, product, date-key…) that does not exist.
func NoEncontrado(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// ReferenciaInvalida reports a missing entity referenced from a request body
// (a client id, a product id, a date). Its kind is KindNotFound.
func ReferenciaInvalida(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg, enCuerpo: true}
}

// Integridad reports a write rejected by a store constraint.
func Integridad(msg string, err error) error {
	return &Error{Kind: KindIntegrity, Msg: msg, Err: err}
}

// KindOf classifies err. Translated GORM errors map onto the taxonomy so that
// constraint violations surfaced by the store are reported as integrity errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return KindIntegrity
	}
	return KindInternal
}

// Is reports whether err is classified as k.
func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }

// Status maps err to its HTTP status code.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) && e.enCuerpo {
		return http.StatusBadRequest
	}
	switch KindOf(err) {
	case KindValidation, KindIntegrity:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Internal errors get a
// generic message unless debug is set.
func Message(err error, debug bool) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	switch KindOf(err) {
	case KindIntegrity:
		return "Violación de integridad: " + err.Error()
	case KindNotFound:
		return "Registro no encontrado"
	}
	if debug {
		return err.Error()
	}
	return "Error interno del servidor"
}
