package rules

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError rechazo de un campo de estructura (nombre tomado del tag json).
type FieldError struct {
	Field  string
	Tag    string
	Reason string
}

// Engine adapta go-playground/validator a las reglas del paquete: los payloads del gateway
// declaran `validate:"sinv_name"` y similares y se comprueban antes de salir a la red.
type Engine struct {
	v *validator.Validate
}

// Tags propios registrados en el motor.
var customTags = map[string]Rule{
	"sinv_name":       Name,
	"sinv_email":      Email,
	"sinv_phone":      Phone,
	"sinv_password":   Password,
	"sinv_identifier": Identifier,
	"sinv_category":   CategoryName,
	"sinv_article":    ArticleName,
	"sinv_username":   Username,
}

// NewEngine crea el motor con los tags sinv_* registrados.
func NewEngine() *Engine {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	for tag, rule := range customTags {
		rule := rule
		// RegisterValidation solo falla con tag vacío o reservado
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String()).Valid()
		})
	}
	return &Engine{v: v}
}

// Struct valida target y devuelve los campos rechazados; nil si todo es válido.
func (e *Engine) Struct(target any) []FieldError {
	err := e.v.Struct(target)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Tag: "struct", Reason: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:  fe.Field(),
			Tag:    fe.Tag(),
			Reason: reasonFor(fe),
		})
	}
	return out
}

// Var valida un valor suelto contra una expresión de tags.
func (e *Engine) Var(value any, tag string) error {
	return e.v.Var(value, tag)
}

func reasonFor(fe validator.FieldError) string {
	if rule, ok := customTags[fe.Tag()]; ok {
		if s, isStr := fe.Value().(string); isStr {
			if r := rule(s); !r.Valid() {
				return r.Reason()
			}
		}
	}
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgEmailInvalid
	case "max":
		return "Excede la longitud máxima (" + fe.Param() + ")"
	case "min", "gt", "gte":
		return "Valor por debajo del mínimo (" + fe.Param() + ")"
	case "oneof":
		return "Valor no permitido"
	default:
		return "Valor inválido"
	}
}
