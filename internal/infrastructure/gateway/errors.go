package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
)

// MsgConnection aviso para fallos de transporte.
const MsgConnection = "Error de conexión con el servidor"

// ErrNetwork sentinel para errors.Is sobre fallos de transporte.
var ErrNetwork = errors.New("gateway: sin respuesta del servidor")

// ErrInvalidPayload sentinel para payloads rechazados localmente.
var ErrInvalidPayload = errors.New("gateway: payload inválido")

// APIError el servidor respondió y rechazó la petición (no-2xx o error:true en el sobre).
type APIError struct {
	StatusCode int
	Status     string // nombre del HttpStatus del sobre, si vino
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway: HTTP %d", e.StatusCode)
}

// UserMessage mensaje del backend para mostrar al usuario.
func (e *APIError) UserMessage() string { return e.Message }

// Is permite errors.Is(err, domain.ErrNotFound) y similares según el código HTTP.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case domain.ErrConflict:
		return e.StatusCode == http.StatusConflict
	case domain.ErrRejected:
		return e.StatusCode < http.StatusInternalServerError
	}
	return false
}

// NetworkError no hubo respuesta del servidor (DNS, conexión, timeout, cancelación).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return "gateway: " + e.Op + ": " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// Is hace que errors.Is(err, ErrNetwork) y errors.Is(err, domain.ErrBackendUnavailable) sean ciertos.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork || target == domain.ErrBackendUnavailable
}

// UserMessage aviso genérico de conexión.
func (e *NetworkError) UserMessage() string { return MsgConnection }

// PayloadError el payload no pasó el motor de reglas; nunca llegó a la red.
type PayloadError struct {
	Fields []rules.FieldError
}

func (e *PayloadError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidPayload.Error()
	}
	return fmt.Sprintf("%s: %s (%s)", ErrInvalidPayload.Error(), e.Fields[0].Field, e.Fields[0].Reason)
}

// Is hace que errors.Is(err, ErrInvalidPayload) y errors.Is(err, domain.ErrInvalidInput) sean ciertos.
func (e *PayloadError) Is(target error) bool {
	return target == ErrInvalidPayload || target == domain.ErrInvalidInput
}

// FieldErrors errores por campo (nombre json) para adjuntarlos al formulario.
func (e *PayloadError) FieldErrors() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, seen := out[f.Field]; !seen {
			out[f.Field] = f.Reason
		}
	}
	return out
}
