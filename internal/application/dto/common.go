package dto

import "encoding/json"

// APIResponse sobre estándar del backend SINV: {data, status, error, message}.
// status es el nombre del HttpStatus ("OK", "CREATED", "BAD_REQUEST"...).
type APIResponse struct {
	Data    json.RawMessage `json:"data,omitempty"`
	Status  string          `json:"status"`
	Error   bool            `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ErrorResponse cuerpo de error HTTP de la consola.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RoleWire rol embebido en usuarios y en la respuesta de signin.
type RoleWire struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryRef referencia a categoría embebida en almacenes y artículos.
type CategoryRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status *bool  `json:"status,omitempty"`
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
