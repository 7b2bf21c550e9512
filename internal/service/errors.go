package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no receipt exists for the given
	// number or share identifier
	ErrNotFound = errors.New("recibo not found")

	// ErrHashMissing is returned when a stored receipt has no fingerprint.
	// That is corrupt data, surfaced as an internal error rather than a
	// failed verification.
	ErrHashMissing = errors.New("stored recibo has no hash")
)

// FieldError describes a single invalid field
type FieldError struct {
	Campo    string `json:"campo"`
	Mensagem string `json:"mensagem"`
}

// ValidationError aggregates field-level validation failures. Validation
// always reports every invalid field, never a single generic message.
type ValidationError struct {
	Campos []FieldError `json:"campos"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Campos))
	for _, c := range e.Campos {
		msgs = append(msgs, fmt.Sprintf("%s: %s", c.Campo, c.Mensagem))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(campo, mensagem string) {
	e.Campos = append(e.Campos, FieldError{Campo: campo, Mensagem: mensagem})
}
