package ports

import "time"

// Credentials sesión autenticada persistida entre arranques.
type Credentials struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type,omitempty"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	SavedAt   time.Time `json:"saved_at"`
}

// CredentialStore almacén de credenciales. Load devuelve un error que cumple
// errors.Is(err, domain.ErrNotFound) cuando no hay nada guardado.
type CredentialStore interface {
	Save(c Credentials) error
	Load() (Credentials, error)
	Delete() error
}
