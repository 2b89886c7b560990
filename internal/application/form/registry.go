package form

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/pkg/logger"
)

// Owner usuario que abrió el formulario. Cero en formularios públicos.
type Owner struct {
	UserID int64
	Role   entity.Role
}

// IsZero indica un formulario público.
func (o Owner) IsZero() bool { return o == Owner{} }

type entry struct {
	c     Controller
	owner Owner
}

// Registry sesiones de formulario abiertas, indexadas por id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]entry
	idle     time.Duration
	now      func() time.Time
	log      *logger.Logger
}

// NewRegistry crea un registro; las sesiones sin actividad durante idle se descartan en Sweep.
func NewRegistry(idle time.Duration, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		sessions: make(map[string]entry),
		idle:     idle,
		now:      time.Now,
		log:      log,
	}
}

// Add registra una sesión pública.
func (r *Registry) Add(c Controller) {
	r.AddOwned(c, Owner{})
}

// AddOwned registra la sesión a nombre de owner.
func (r *Registry) AddOwned(c Controller, owner Owner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[c.ID()] = entry{c: c, owner: owner}
}

// Get busca una sesión abierta.
func (r *Registry) Get(id string) (Controller, error) {
	c, _, err := r.Lookup(id)
	return c, err
}

// Lookup busca una sesión abierta y su dueño.
func (r *Registry) Lookup(id string) (Controller, Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, Owner{}, domain.ErrFormNotFound
	}
	return e.c, e.owner, nil
}

// Discard cancela y elimina la sesión.
func (r *Registry) Discard(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return domain.ErrFormNotFound
	}
	e.c.Cancel()
	return nil
}

// Len número de sesiones abiertas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Clear cancela todas las sesiones.
func (r *Registry) Clear() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]entry)
	r.mu.Unlock()
	for _, e := range sessions {
		e.c.Cancel()
	}
}

// DiscardOwned cancela las sesiones con dueño y conserva las públicas (inicio de sesión,
// registro, recuperación de contraseña). Se usa al cerrar o cambiar la sesión del operador.
func (r *Registry) DiscardOwned() int {
	var owned []Controller
	r.mu.Lock()
	for id, e := range r.sessions {
		if !e.owner.IsZero() {
			owned = append(owned, e.c)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, c := range owned {
		c.Cancel()
	}
	if len(owned) > 0 {
		r.log.Debug().Int("count", len(owned)).Msg("formularios del usuario anterior descartados")
	}
	return len(owned)
}

// Sweep descarta las sesiones inactivas y devuelve cuántas eliminó.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idle)
	var stale []Controller

	r.mu.Lock()
	for id, e := range r.sessions {
		if e.c.LastActive().Before(cutoff) {
			stale = append(stale, e.c)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Cancel()
	}
	if len(stale) > 0 {
		r.log.Debug().Int("count", len(stale)).Msg("formularios inactivos descartados")
	}
	return len(stale)
}

// Run barre periódicamente hasta que ctx termine.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}
