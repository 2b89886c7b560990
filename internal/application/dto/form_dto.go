package dto

import (
	"encoding/json"
	"strings"
)

// OpenFormRequest entrada de POST /api/forms.
type OpenFormRequest struct {
	Kind     string `json:"kind" validate:"required"`
	EntityID *int64 `json:"entity_id,omitempty" validate:"omitempty,gt=0"`
}

// ChangeFieldRequest entrada de PATCH /api/forms/:id. Value admite string, número, bool o lista.
type ChangeFieldRequest struct {
	Field string          `json:"field" validate:"required"`
	Value json.RawMessage `json:"value"`
}

// Text devuelve el valor como texto: strings sin comillas, el resto en su forma JSON.
func (r ChangeFieldRequest) Text() string {
	raw := strings.TrimSpace(string(r.Value))
	if raw == "" || raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return s
	}
	return raw
}

// BlurRequest entrada de POST /api/forms/:id/blur.
type BlurRequest struct {
	Field string `json:"field" validate:"required"`
}
