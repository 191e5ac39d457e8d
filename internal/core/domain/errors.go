package domain

import "errors"

var (
	// ErrInvalidInput is the parent of every *InputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreFailure marks errors coming out of a persistence backend.
	ErrStoreFailure = errors.New("store failure")
	// ErrBadRequest covers requests that could not be decoded at all.
	ErrBadRequest = errors.New("bad request")
)

// InputError describes a rejected request field. Message is safe to return
// to the caller.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

var (
	ErrTextNotString    = &InputError{Field: "texto", Message: "Texto debe ser una cadena"}
	ErrInvalidText      = &InputError{Field: "texto", Message: "Texto inválido"}
	ErrInvalidResult    = &InputError{Field: "resultado", Message: "Resultado inválido"}
	ErrInvalidSucceeded = &InputError{Field: "exito", Message: "El valor de éxito debe ser un booleano"}
)
