// Package auth mantiene la sesión autenticada del proceso: token del backend, usuario y rol.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/pkg/jwt"
	"github.com/jhoicas/sinv-console/pkg/logger"
)

// Principal usuario autenticado.
type Principal struct {
	UserID    int64
	Username  string
	FullName  string
	Email     string
	Role      entity.Role
	ExpiresAt time.Time
}

// Session estado de autenticación compartido por el proceso. Se inyecta en los casos de uso
// y en el router; no hay estado global.
type Session struct {
	mu     sync.RWMutex
	gw     ports.AuthGateway
	store  ports.CredentialStore
	log    *logger.Logger
	now    func() time.Time
	cur    *ports.Credentials
	onExit []func()
}

// NewSession construye la sesión. store puede ser nil (sin persistencia).
func NewSession(gw ports.AuthGateway, store ports.CredentialStore, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{gw: gw, store: store, log: log, now: time.Now}
}

// SetClock reemplaza el reloj (tests).
func (s *Session) SetClock(now func() time.Time) { s.now = now }

// OnSignOut registra una función que se ejecuta al cerrar sesión y cuando un nuevo inicio de
// sesión reemplaza al usuario actual (p. ej. descartar formularios).
func (s *Session) OnSignOut(fn func()) {
	s.mu.Lock()
	s.onExit = append(s.onExit, fn)
	s.mu.Unlock()
}

// Restore recupera credenciales persistidas. Sin credenciales no es error; si vencieron se
// eliminan y devuelve ErrSessionExpired.
func (s *Session) Restore() error {
	if s.store == nil {
		return nil
	}
	rec, err := s.store.Load()
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("auth: restaurar credenciales: %w", err)
	}
	if !rec.ExpiresAt.IsZero() && !s.now().Before(rec.ExpiresAt) {
		if err := s.store.Delete(); err != nil {
			s.log.Warn().Err(err).Msg("no se pudieron eliminar credenciales vencidas")
		}
		s.log.Info().Str("email", rec.Email).Msg("credenciales vencidas descartadas")
		return domain.ErrSessionExpired
	}
	if _, ok := entity.ParseRole(rec.Role); !ok {
		_ = s.store.Delete()
		return fmt.Errorf("auth: rol persistido %q: %w", rec.Role, domain.ErrRoleNotAllowed)
	}

	s.mu.Lock()
	s.cur = &rec
	s.mu.Unlock()
	s.log.Info().Str("email", rec.Email).Str("role", rec.Role).Msg("sesión restaurada")
	return nil
}

// SignIn autentica contra el backend. Solo se aceptan los roles conocidos; cualquier otro
// rol deja la sesión sin cambios y devuelve ErrRoleNotAllowed.
func (s *Session) SignIn(ctx context.Context, email, password string) (Principal, error) {
	res, err := s.gw.SignIn(ctx, dto.SignInPayload{Email: email, Password: password})
	if err != nil {
		return Principal{}, err
	}

	roleName := res.Roles.Name
	if roleName == "" && res.User.Role != nil {
		roleName = res.User.Role.Name
	}
	role, ok := entity.ParseRole(roleName)
	if !ok {
		s.log.Warn().Str("email", email).Str("role", roleName).Msg("rol no autorizado")
		return Principal{}, domain.ErrRoleNotAllowed
	}

	rec := ports.Credentials{
		Token:     res.Token,
		TokenType: res.TokenType,
		UserID:    res.User.ID,
		Username:  res.User.Username,
		FullName:  res.User.FullName,
		Email:     res.User.Email,
		Role:      string(role),
		SavedAt:   s.now(),
	}
	if rec.Email == "" {
		rec.Email = email
	}
	if info, err := jwt.Inspect(res.Token); err == nil {
		rec.ExpiresAt = info.ExpiresAt
		if rec.UserID == 0 {
			rec.UserID, _ = strconv.ParseInt(info.Subject, 10, 64)
		}
	} else {
		s.log.Debug().Err(err).Msg("token sin claims legibles; sin expiración conocida")
	}

	if s.store != nil {
		if err := s.store.Save(rec); err != nil {
			s.log.Warn().Err(err).Msg("no se pudieron persistir las credenciales")
		}
	}
	s.mu.Lock()
	prev := s.cur
	s.cur = &rec
	hooks := append([]func(){}, s.onExit...)
	s.mu.Unlock()

	if prev != nil {
		s.log.Info().Str("previous", prev.Email).Str("email", rec.Email).Msg("sesión reemplazada")
		for _, fn := range hooks {
			fn()
		}
	}
	s.log.Info().Str("email", rec.Email).Str("role", rec.Role).Msg("sesión iniciada")
	return principalOf(rec), nil
}

// SignOut cierra la sesión, ejecuta los hooks registrados y borra las credenciales.
func (s *Session) SignOut() error {
	s.mu.Lock()
	s.cur = nil
	hooks := append([]func(){}, s.onExit...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	if s.store != nil {
		if err := s.store.Delete(); err != nil {
			return fmt.Errorf("auth: cerrar sesión: %w", err)
		}
	}
	s.log.Info().Msg("sesión cerrada")
	return nil
}

// Token implementa ports.TokenSource; vacío si no hay sesión o venció.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil || s.expired(*s.cur) {
		return ""
	}
	return s.cur.Token
}

// Current devuelve el usuario autenticado.
func (s *Session) Current() (Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return Principal{}, domain.ErrNoSession
	}
	if s.expired(*s.cur) {
		return Principal{}, domain.ErrSessionExpired
	}
	return principalOf(*s.cur), nil
}

func (s *Session) expired(rec ports.Credentials) bool {
	return !rec.ExpiresAt.IsZero() && !s.now().Before(rec.ExpiresAt)
}

func principalOf(rec ports.Credentials) Principal {
	role, _ := entity.ParseRole(rec.Role)
	return Principal{
		UserID:    rec.UserID,
		Username:  rec.Username,
		FullName:  rec.FullName,
		Email:     rec.Email,
		Role:      role,
		ExpiresAt: rec.ExpiresAt,
	}
}
