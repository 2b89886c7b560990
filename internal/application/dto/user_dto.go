package dto

import "github.com/jhoicas/sinv-console/internal/domain/entity"

// UserWire usuario tal como lo serializa el backend (el hash de password se ignora).
type UserWire struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Status   *bool     `json:"status"`
	Role     *RoleWire `json:"role,omitempty"`
}

// ToEntity convierte al modelo de dominio.
func (w UserWire) ToEntity() entity.User {
	u := entity.User{
		ID:       w.ID,
		Username: w.Username,
		FullName: w.FullName,
		Email:    w.Email,
		Phone:    w.Phone,
		Status:   boolOr(w.Status, true),
	}
	if w.Role != nil {
		if r, ok := entity.ParseRole(w.Role.Name); ok {
			u.Role = r
		} else {
			u.Role = entity.Role(w.Role.Name)
		}
	}
	return u
}

// UserPayload cuerpo de POST /users/ y PUT /users/:id. Password vacío en PUT = sin cambio.
type UserPayload struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username" validate:"sinv_username"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"sinv_email,max=45"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,sinv_phone"`
	Password string `json:"password,omitempty" validate:"omitempty,sinv_password"`
	RoleID   int64  `json:"roleId" validate:"gt=0"`
	Status   *bool  `json:"status,omitempty"`
}

// VerifyPasswordPayload cuerpo de POST /users/verify-password.
type VerifyPasswordPayload struct {
	UserID   int64  `json:"userId" validate:"gt=0"`
	Password string `json:"password" validate:"required"`
}

// VerifyPasswordResult respuesta (sin sobre) de verify-password.
type VerifyPasswordResult struct {
	Valid bool `json:"valid"`
}

// PasswordResetRequest cuerpo de POST /users/request-password-reset.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"sinv_email"`
}

// PasswordResetTicket respuesta (sin sobre) de request-password-reset.
type PasswordResetTicket struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// ResetPasswordPayload cuerpo de POST /users/reset-password.
type ResetPasswordPayload struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"sinv_password"`
	UserID      int64  `json:"idUser,omitempty"`
}

// ResetPasswordResult respuesta (sin sobre) de reset-password; valid llega como "true"/"false".
type ResetPasswordResult struct {
	Valid string `json:"valid"`
	Error string `json:"error,omitempty"`
}

// UserResponse salida de un usuario en la API de la consola.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Status   bool   `json:"status"`
}

// NewUserResponse construye la salida desde el dominio.
func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     string(u.Role),
		Status:   u.Status,
	}
}
