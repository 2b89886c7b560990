package dto

// SignInPayload cuerpo de POST /auth/signin.
type SignInPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResult data de la respuesta de signin.
type SignInResult struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	User      UserWire `json:"user"`
	Roles     RoleWire `json:"roles"`
}

// MenuEntry entrada de navegación según rol.
type MenuEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// MeResponse salida de GET /api/auth/me.
type MeResponse struct {
	User      UserResponse `json:"user"`
	Role      string       `json:"role"`
	Home      string       `json:"home"`
	Menu      []MenuEntry  `json:"menu"`
	ExpiresAt string       `json:"expires_at,omitempty"`
}
