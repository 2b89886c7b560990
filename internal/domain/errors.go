package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrNoSession      = errors.New("no hay sesión activa")
	ErrSessionExpired = errors.New("la sesión expiró")
	ErrRoleNotAllowed = errors.New("rol no autorizado para la consola")
	ErrFormNotFound   = errors.New("formulario no encontrado")
	ErrUnknownField   = errors.New("campo desconocido")
	ErrLockedField    = errors.New("el campo no es editable")
	ErrSubmitInFlight = errors.New("ya hay un envío en curso")
	ErrFormClosed     = errors.New("el formulario ya fue enviado o cancelado")
	ErrUnknownForm    = errors.New("tipo de formulario desconocido")

	ErrBackendUnavailable = errors.New("el backend no responde")
	ErrRejected           = errors.New("el backend rechazó la petición")
)
