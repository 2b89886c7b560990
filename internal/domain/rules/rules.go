// Package rules contiene las reglas de forma de cada campo editable (nombre, correo,
// teléfono, contraseña, identificador...). Son funciones puras: no consultan red ni estado.
package rules

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Result es Valid o Invalid con un motivo legible.
type Result struct {
	reason string
}

// OK resultado válido.
var OK = Result{}

// Fail construye un resultado inválido.
func Fail(reason string) Result {
	return Result{reason: reason}
}

// Valid indica si el valor cumple la regla.
func (r Result) Valid() bool { return r.reason == "" }

// Reason motivo del rechazo; vacío si es válido.
func (r Result) Reason() string { return r.reason }

// Rule valida un único valor de campo.
type Rule func(value string) Result

// Mensajes de rechazo.
const (
	MsgRequired         = "Campo obligatorio"
	MsgNameChars        = "Solo se permiten letras y espacios"
	MsgForbiddenChars   = "Contiene caracteres no permitidos"
	MsgDoubleSpace      = "No se permiten espacios dobles"
	MsgEmailInvalid     = "Correo electrónico inválido"
	MsgEmailUnsafe      = "El correo contiene caracteres no permitidos"
	MsgPhoneDigits      = "Debe tener 10 dígitos"
	MsgPhoneZeros       = "El número no puede ser todos ceros"
	MsgPhoneRepeated    = "El número no puede ser una secuencia repetida"
	MsgPasswordMin      = "Mínimo 8 caracteres"
	MsgPasswordMax      = "Máximo 20 caracteres"
	MsgPasswordStrength = "Debe contener mayúscula, minúscula, número y carácter especial (!@#$%^&*?)"
	MsgPasswordChars    = "Solo se permiten letras, números y los caracteres !@#$%^&*?"
	MsgPasswordMismatch = "Las contraseñas no coinciden"
	MsgIdentifier       = "Solo se permiten letras, números y guiones"
	MsgCategoryMin      = "Mínimo 3 caracteres"
	MsgUsernameMin      = "Mínimo 4 caracteres"
)

// MsgMax mensaje de longitud máxima.
func MsgMax(n int) string {
	return "Máximo " + strconv.Itoa(n) + " caracteres"
}

const (
	nameMax        = 50
	emailMax       = 100
	phoneLen       = 10
	phoneRepeatRun = 8
	passwordMin    = 8
	passwordMax    = 20
	categoryMin    = 3
	categoryMax    = 100
	articleNameMax = 100
	descriptionMax = 500
	usernameMin    = 4
	usernameMax    = 50
	fullNameMax    = 100
)

// PasswordSpecials caracteres especiales aceptados en contraseñas.
const PasswordSpecials = "!@#$%^&*?"

var (
	nameLetters  = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñ ]+$`)
	identifierRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

	nameDeny     = `<>$=()/\{}[]*+!@#%^&`
	emailDeny    = `<>$=()/\{}[]`
	passwordDeny = `<>=()/\{}[]`

	shape = validator.New()
)

// Required rechaza valores vacíos tras recortar espacios.
func Required(value string) Result {
	if strings.TrimSpace(value) == "" {
		return Fail(MsgRequired)
	}
	return OK
}

// Name nombre o apellido: letras latinas (con acentos y ñ) separadas por un solo espacio, máx. 50.
func Name(value string) Result {
	v := strings.TrimSpace(value)
	if v == "" {
		return Fail(MsgRequired)
	}
	if utf8.RuneCountInString(v) > nameMax {
		return Fail(MsgMax(nameMax))
	}
	if strings.ContainsAny(v, nameDeny) {
		return Fail(MsgForbiddenChars)
	}
	if onlyPunctuation(v) || !nameLetters.MatchString(v) {
		return Fail(MsgNameChars)
	}
	if strings.Contains(v, "  ") {
		return Fail(MsgDoubleSpace)
	}
	return OK
}

// Email forma estándar, máx. 100, sin marcado ni esquemas ejecutables.
func Email(value string) Result {
	v := strings.TrimSpace(value)
	if v == "" {
		return Fail(MsgRequired)
	}
	if utf8.RuneCountInString(v) > emailMax {
		return Fail(MsgMax(emailMax))
	}
	lower := strings.ToLower(v)
	if strings.ContainsAny(v, emailDeny) || strings.Contains(lower, "javascript:") {
		return Fail(MsgEmailUnsafe)
	}
	if err := shape.Var(v, "email"); err != nil {
		return Fail(MsgEmailInvalid)
	}
	return OK
}

// Phone exactamente 10 dígitos, no todos cero y sin 8 dígitos iguales seguidos.
func Phone(value string) Result {
	v := strings.TrimSpace(value)
	if v == "" {
		return Fail(MsgRequired)
	}
	if len(v) != phoneLen || !allDigits(v) {
		return Fail(MsgPhoneDigits)
	}
	if strings.Trim(v, "0") == "" {
		return Fail(MsgPhoneZeros)
	}
	if longestRun(v) >= phoneRepeatRun {
		return Fail(MsgPhoneRepeated)
	}
	return OK
}

// Password 8 a 20 caracteres con minúscula, mayúscula, dígito y un especial de PasswordSpecials.
func Password(value string) Result {
	if value == "" {
		return Fail(MsgRequired)
	}
	n := utf8.RuneCountInString(value)
	if n < passwordMin {
		return Fail(MsgPasswordMin)
	}
	if n > passwordMax {
		return Fail(MsgPasswordMax)
	}
	if strings.ContainsAny(value, passwordDeny) {
		return Fail(MsgForbiddenChars)
	}
	var lower, upper, digit, special bool
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSpecials, r):
			special = true
		default:
			return Fail(MsgPasswordChars)
		}
	}
	if !lower || !upper || !digit || !special {
		return Fail(MsgPasswordStrength)
	}
	return OK
}

// Matches exige que el valor sea idéntico a other (confirmación de contraseña).
func Matches(other string) Rule {
	return func(value string) Result {
		if value == "" {
			return Fail(MsgRequired)
		}
		if value != other {
			return Fail(MsgPasswordMismatch)
		}
		return OK
	}
}

// Optional aplica rule solo si el valor no está vacío.
func Optional(rule Rule) Rule {
	return func(value string) Result {
		if strings.TrimSpace(value) == "" {
			return OK
		}
		return rule(value)
	}
}

// Identifier identificador de almacén: letras, dígitos y guiones.
func Identifier(value string) Result {
	v := strings.TrimSpace(value)
	if v == "" {
		return Fail(MsgRequired)
	}
	if !identifierRe.MatchString(v) {
		return Fail(MsgIdentifier)
	}
	return OK
}

// CategoryName nombre de categoría, 3 a 100 caracteres.
func CategoryName(value string) Result {
	return between(value, categoryMin, categoryMax, MsgCategoryMin)
}

// ArticleName nombre de artículo, máx. 100.
func ArticleName(value string) Result {
	return between(value, 1, articleNameMax, MsgRequired)
}

// Description opcional, máx. 500.
func Description(value string) Result {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > descriptionMax {
		return Fail(MsgMax(descriptionMax))
	}
	return OK
}

// Username nombre de usuario, 4 a 50.
func Username(value string) Result {
	return between(value, usernameMin, usernameMax, MsgUsernameMin)
}

// FullName nombre completo, máx. 100.
func FullName(value string) Result {
	return between(value, 1, fullNameMax, MsgRequired)
}

// ByField registro de reglas por nombre de campo.
var ByField = map[string]Rule{
	"name":         Name,
	"lastname":     Name,
	"email":        Email,
	"phone":        Phone,
	"password":     Password,
	"newPassword":  Password,
	"identifier":   Identifier,
	"categoryName": CategoryName,
	"articleName":  ArticleName,
	"description":  Description,
	"username":     Username,
	"fullName":     FullName,
	"token":        Required,
}

// Lookup devuelve la regla registrada para field.
func Lookup(field string) (Rule, bool) {
	r, ok := ByField[field]
	return r, ok
}

func between(value string, min, max int, minMsg string) Result {
	v := strings.TrimSpace(value)
	if v == "" {
		return Fail(MsgRequired)
	}
	n := utf8.RuneCountInString(v)
	if n < min {
		return Fail(minMsg)
	}
	if n > max {
		return Fail(MsgMax(max))
	}
	return OK
}

func onlyPunctuation(v string) bool {
	for _, r := range v {
		if !unicode.IsSpace(r) && r != '.' && r != '-' {
			return false
		}
	}
	return true
}

func allDigits(v string) bool {
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

func longestRun(v string) int {
	best, run := 0, 0
	for i := 0; i < len(v); i++ {
		if i > 0 && v[i] == v[i-1] {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
