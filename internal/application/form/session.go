// Package form implementa la sesión de formulario: borrador, campos tocados, errores por
// campo y una máquina de estados explícita Editing → Validating → Submitting → Succeeded.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/consistency"
	"github.com/jhoicas/sinv-console/pkg/logger"
)

// State estado de la sesión.
type State string

const (
	Editing    State = "editing"
	Validating State = "validating"
	Submitting State = "submitting"
	Succeeded  State = "succeeded"
)

// OutcomeStatus resultado de un envío.
type OutcomeStatus string

const (
	// Invalid reglas de campo o de consistencia rechazaron el borrador; no hubo llamada al gateway.
	Invalid OutcomeStatus = "invalid"
	// Rejected el gateway rechazó el envío (servidor o red); el borrador se conserva.
	Rejected OutcomeStatus = "rejected"
	// Accepted el gateway confirmó el envío.
	Accepted OutcomeStatus = "accepted"
)

// DefaultFailureMessage aviso genérico cuando el error no trae mensaje.
const DefaultFailureMessage = "No se pudo completar la operación. Intenta nuevamente."

// UserMessager errores que traen un mensaje apto para el usuario (p. ej. message del backend).
type UserMessager interface {
	UserMessage() string
}

// FieldErrorer errores que se adjuntan a campos concretos del formulario.
type FieldErrorer interface {
	FieldErrors() map[string]string
}

// FieldError rechazo de un campo descubierto al enviar (p. ej. contraseña actual incorrecta).
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// FieldErrors implementa FieldErrorer.
func (e *FieldError) FieldErrors() map[string]string {
	return map[string]string{e.Field: e.Message}
}

// View foto de la sesión para el cliente.
type View struct {
	ID      string            `json:"id"`
	Kind    string            `json:"kind"`
	State   State             `json:"state"`
	Values  any               `json:"values"`
	Touched map[string]bool   `json:"touched"`
	Errors  map[string]string `json:"errors"`
	Notice  string            `json:"notice,omitempty"`
	Locked  []string          `json:"locked,omitempty"`
	Result  any               `json:"result,omitempty"`
}

// Outcome resultado de Submit.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	View   View          `json:"form"`
}

// Controller vista sin tipo de una Session, para el registro y la capa HTTP.
type Controller interface {
	ID() string
	Kind() string
	Change(field, value string) (View, error)
	Blur(field string) (View, error)
	Submit(ctx context.Context) (Outcome, error)
	Cancel()
	View() View
	LastActive() time.Time
}

// Session sesión de formulario sobre un borrador D.
type Session[D any] struct {
	mu sync.Mutex

	id        string
	schema    Schema[D]
	snapshots ports.SnapshotSource
	log       *logger.Logger
	now       func() time.Time

	draft     D
	touched   map[string]bool
	errors    map[string]string
	parseErrs map[string]string // valores que no se pudieron asignar; persisten hasta asignar el campo
	notice    string
	state     State
	result    any
	closed    bool
	gen       uint64
	last      time.Time
}

// Option ajusta una Session al crearla.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New abre una sesión en estado Editing con el borrador inicial de la schema.
func New[D any](schema Schema[D], snapshots ports.SnapshotSource, log *logger.Logger, opts ...Option) *Session[D] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Session[D]{
		id:        uuid.NewString(),
		schema:    schema,
		snapshots: snapshots,
		log:       log,
		now:       o.now,
		draft:     schema.Initial,
		touched:   make(map[string]bool),
		errors:    make(map[string]string),
		parseErrs: make(map[string]string),
		state:     Editing,
	}
	s.last = s.now()
	return s
}

func (s *Session[D]) ID() string   { return s.id }
func (s *Session[D]) Kind() string { return s.schema.Kind }

// LastActive momento de la última interacción.
func (s *Session[D]) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Draft copia del borrador actual.
func (s *Session[D]) Draft() D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// State estado actual.
func (s *Session[D]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Change actualiza un campo, lo marca tocado y revalida los campos tocados.
func (s *Session[D]) Change(field, value string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return s.viewLocked(), err
	}
	spec, ok := s.schema.field(field)
	if !ok {
		return s.viewLocked(), fmt.Errorf("%w: %s", domain.ErrUnknownField, field)
	}
	if spec.Locked {
		return s.viewLocked(), fmt.Errorf("%w: %s", domain.ErrLockedField, field)
	}
	s.touched[field] = true
	s.last = s.now()
	if err := spec.Set(&s.draft, value); err != nil {
		s.parseErrs[field] = errText(err)
		s.revalidateTouchedLocked()
		return s.viewLocked(), nil
	}
	delete(s.parseErrs, field)
	s.notice = ""
	s.revalidateTouchedLocked()

	s.log.Debug().Str("form", s.id).Str("kind", s.schema.Kind).Str("field", field).Msg("campo actualizado")
	return s.viewLocked(), nil
}

// Blur marca el campo como tocado y ejecuta su regla.
func (s *Session[D]) Blur(field string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return s.viewLocked(), err
	}
	if _, ok := s.schema.field(field); !ok {
		return s.viewLocked(), fmt.Errorf("%w: %s", domain.ErrUnknownField, field)
	}
	s.touched[field] = true
	s.last = s.now()
	s.revalidateTouchedLocked()
	return s.viewLocked(), nil
}

// Submit valida todo el borrador y, si es válido, lo entrega al gateway.
// Un borrador inválido nunca llega a la red; repetir el envío sin cambios repite el rechazo.
func (s *Session[D]) Submit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		v := s.viewLocked()
		s.mu.Unlock()
		return Outcome{View: v}, err
	}
	s.state = Validating
	s.last = s.now()
	s.notice = ""
	for _, f := range s.schema.Fields {
		s.touched[f.Name] = true
	}
	s.errors = s.fieldErrorsLocked()
	if len(s.errors) > 0 {
		return s.finishLocked(Invalid, "validación local rechazada")
	}
	draft := s.draft
	gen := s.gen
	s.mu.Unlock()

	violations := s.checkConsistency(ctx, draft)

	s.mu.Lock()
	if gen != s.gen {
		v := s.viewLocked()
		s.mu.Unlock()
		return Outcome{View: v}, domain.ErrFormClosed
	}
	if !violations.Empty() {
		s.errors = violations.ByField()
		return s.finishLocked(Invalid, "consistencia rechazada")
	}
	s.state = Submitting
	s.mu.Unlock()

	result, err := s.schema.Submit(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug().Str("form", s.id).Str("kind", s.schema.Kind).Msg("envío completado tras cancelar; resultado descartado")
		return Outcome{View: s.viewLocked()}, domain.ErrFormClosed
	}
	s.last = s.now()
	if err != nil {
		s.state = Editing
		var fe FieldErrorer
		if errors.As(err, &fe) && len(fe.FieldErrors()) > 0 {
			for k, v := range fe.FieldErrors() {
				s.errors[k] = v
			}
			s.log.Debug().Str("form", s.id).Str("kind", s.schema.Kind).Err(err).Msg("envío rechazado por campo")
			return Outcome{Status: Invalid, View: s.viewLocked()}, nil
		}
		s.notice = s.failureMessage(err)
		s.log.Warn().Str("form", s.id).Str("kind", s.schema.Kind).Err(err).Msg("envío rechazado por el gateway")
		return Outcome{Status: Rejected, View: s.viewLocked()}, nil
	}
	s.state = Succeeded
	s.result = result
	s.log.Info().Str("form", s.id).Str("kind", s.schema.Kind).Msg("formulario enviado")
	return Outcome{Status: Accepted, View: s.viewLocked()}, nil
}

// Cancel descarta el borrador. Un envío en curso sigue hasta el backend pero su resultado se ignora.
func (s *Session[D]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.closed = true
	s.draft = s.schema.Initial
	s.touched = make(map[string]bool)
	s.errors = make(map[string]string)
	s.parseErrs = make(map[string]string)
	s.notice = ""
	s.log.Debug().Str("form", s.id).Str("kind", s.schema.Kind).Str("state", string(s.state)).Msg("formulario cancelado")
}

// View foto actual.
func (s *Session[D]) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session[D]) editableLocked() error {
	switch {
	case s.closed, s.state == Succeeded:
		return domain.ErrFormClosed
	case s.state == Validating, s.state == Submitting:
		return domain.ErrSubmitInFlight
	}
	return nil
}

// finishLocked vuelve a Editing con los errores actuales y libera el lock.
func (s *Session[D]) finishLocked(status OutcomeStatus, msg string) (Outcome, error) {
	s.state = Editing
	v := s.viewLocked()
	s.mu.Unlock()
	s.log.Debug().Str("form", s.id).Str("kind", s.schema.Kind).Int("errors", len(v.Errors)).Msg(msg)
	return Outcome{Status: status, View: v}, nil
}

func (s *Session[D]) checkConsistency(ctx context.Context, draft D) consistency.Violations {
	if s.schema.Consistency == nil {
		return nil
	}
	var snap consistency.Snapshot
	if s.schema.Needs.Any() {
		if s.snapshots == nil {
			return nil
		}
		var err error
		snap, err = s.snapshots.Snapshot(ctx, s.schema.Needs)
		if err != nil {
			// el backend sigue siendo la autoridad; sin instantánea se envía igual
			s.log.Warn().Str("form", s.id).Str("kind", s.schema.Kind).Err(err).Msg("instantánea no disponible; se omite la consistencia")
			return nil
		}
	}
	return s.schema.Consistency(draft, snap)
}

func (s *Session[D]) fieldErrorsLocked() map[string]string {
	errs := make(map[string]string, len(s.parseErrs))
	for k, v := range s.parseErrs {
		errs[k] = v
	}
	for _, f := range s.schema.Fields {
		if _, bad := errs[f.Name]; bad {
			continue
		}
		if f.Check == nil {
			continue
		}
		if r := f.Check(s.draft); !r.Valid() {
			errs[f.Name] = r.Reason()
		}
	}
	if s.schema.Cross != nil {
		for k, v := range s.schema.Cross(s.draft).ByField() {
			if _, seen := errs[k]; !seen {
				errs[k] = v
			}
		}
	}
	return errs
}

func (s *Session[D]) revalidateTouchedLocked() {
	all := s.fieldErrorsLocked()
	next := make(map[string]string)
	for field := range s.touched {
		if msg, ok := all[field]; ok {
			next[field] = msg
		}
	}
	s.errors = next
}

func (s *Session[D]) failureMessage(err error) string {
	var um UserMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	if s.schema.FailureMessage != "" {
		return s.schema.FailureMessage
	}
	return DefaultFailureMessage
}

func (s *Session[D]) viewLocked() View {
	touched := make(map[string]bool, len(s.touched))
	for k, v := range s.touched {
		touched[k] = v
	}
	errs := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		errs[k] = v
	}
	var locked []string
	for _, f := range s.schema.Fields {
		if f.Locked {
			locked = append(locked, f.Name)
		}
	}
	return View{
		ID:      s.id,
		Kind:    s.schema.Kind,
		State:   s.state,
		Values:  s.draft,
		Touched: touched,
		Errors:  errs,
		Notice:  s.notice,
		Locked:  locked,
		Result:  s.result,
	}
}

func errText(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return "Valor inválido"
	}
	return err.Error()
}
