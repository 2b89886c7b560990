package form

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/consistency"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
)

// MsgSelect rechazo de selectores obligatorios (categoría, almacén...).
const MsgSelect = "Selecciona una opción"

// Schema configura un formulario: qué campos son editables, qué reglas aplican y qué
// llamada al gateway se hace al enviar. Una Schema por tipo de entidad y modo (alta/edición).
type Schema[D any] struct {
	Kind    string
	Initial D
	Fields  []FieldSpec[D]

	// Cross reglas entre campos del mismo borrador.
	Cross func(d D) consistency.Violations

	// Consistency reglas contra la instantánea de entidades; Needs indica qué listados pedir.
	Needs       ports.SnapshotNeeds
	Consistency func(d D, snap consistency.Snapshot) consistency.Violations

	Submit func(ctx context.Context, d D) (any, error)

	// FailureMessage aviso cuando el gateway falla sin mensaje propio.
	FailureMessage string
}

// FieldSpec un campo editable del borrador.
type FieldSpec[D any] struct {
	Name   string
	Set    func(d *D, value string) error
	Check  func(d D) rules.Result // nil: siempre válido
	Locked bool
}

func (s Schema[D]) field(name string) (FieldSpec[D], bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec[D]{}, false
}

// Text campo de texto con su regla.
func Text[D any](name string, ptr func(d *D) *string, rule rules.Rule) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value string) error {
			*ptr(d) = value
			return nil
		},
		Check: func(d D) rules.Result {
			if rule == nil {
				return rules.OK
			}
			return rule(*ptr(&d))
		},
	}
}

// Confirm campo de confirmación que debe coincidir con other.
func Confirm[D any](name string, ptr func(d *D) *string, other func(d D) string) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value string) error {
			*ptr(d) = value
			return nil
		},
		Check: func(d D) rules.Result {
			return rules.Matches(other(d))(*ptr(&d))
		},
	}
}

// ID selector obligatorio de una entidad (categoría, etc.).
func ID[D any](name string, ptr func(d *D) *int64) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value string) error {
			id, err := parseID(value)
			if err != nil {
				return err
			}
			*ptr(d) = id
			return nil
		},
		Check: func(d D) rules.Result {
			if *ptr(&d) <= 0 {
				return rules.Fail(MsgSelect)
			}
			return rules.OK
		},
	}
}

// OptionalID selector opcional (responsable de almacén). Valor vacío o 0 lo limpia.
func OptionalID[D any](name string, ptr func(d *D) **int64) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value string) error {
			id, err := parseID(value)
			if err != nil {
				return err
			}
			if id == 0 {
				*ptr(d) = nil
				return nil
			}
			*ptr(d) = &id
			return nil
		},
	}
}

// IDs selección múltiple (almacenes de un artículo). Acepta `[1,2]` o `1,2`.
func IDs[D any](name string, ptr func(d *D) *[]int64, required bool) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value string) error {
			ids, err := parseIDs(value)
			if err != nil {
				return err
			}
			*ptr(d) = ids
			return nil
		},
		Check: func(d D) rules.Result {
			if required && len(*ptr(&d)) == 0 {
				return rules.Fail(MsgSelect)
			}
			return rules.OK
		},
	}
}

// Bool interruptor (estado activo/inactivo).
func Bool[D any](name string, ptr func(d *D) *bool) FieldSpec[D] {
	return FieldSpec[D]{
		Name: name,
		Set: func(d *D, value string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%w: %s debe ser true o false", domain.ErrInvalidInput, name)
			}
			*ptr(d) = b
			return nil
		},
	}
}

// Lock marca el campo como no editable.
func Lock[D any](f FieldSpec[D]) FieldSpec[D] {
	f.Locked = true
	return f
}

func parseID(value string) (int64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: identificador no numérico %q", domain.ErrInvalidInput, value)
	}
	return id, nil
}

func parseIDs(value string) ([]int64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return []int64{}, nil
	}
	if strings.HasPrefix(v, "[") {
		var ids []int64
		if err := json.Unmarshal([]byte(v), &ids); err != nil {
			return nil, fmt.Errorf("%w: lista de identificadores inválida", domain.ErrInvalidInput)
		}
		return dedupe(ids), nil
	}
	parts := strings.Split(v, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := parseID(p)
		if err != nil {
			return nil, err
		}
		if id > 0 {
			ids = append(ids, id)
		}
	}
	return dedupe(ids), nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
