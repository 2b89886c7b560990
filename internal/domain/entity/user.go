package entity

import "strings"

// Role nombre de rol tal como lo emite el backend SINV (roles.name).
type Role string

// Roles válidos para User.
const (
	RoleAdministrador  Role = "ADMINISTRADOR"
	RoleTrabajador     Role = "TRABAJADOR"
	RoleUsuarioRegular Role = "USUARIO_REGULAR"
)

// RoleIDs identificadores sembrados por el backend para cada rol.
var RoleIDs = map[Role]int64{
	RoleAdministrador:  1,
	RoleTrabajador:     2,
	RoleUsuarioRegular: 3,
}

// ParseRole normaliza un nombre de rol; ok=false si no es uno de los conocidos.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := RoleIDs[r]
	return r, ok
}

// User representa un usuario del sistema. El password nunca viaja de vuelta al cliente.
type User struct {
	ID       int64
	Username string
	FullName string
	Email    string
	Phone    string
	Role     Role
	Status   bool // true = activo
}

// IsResponsibleCandidate indica si el usuario puede custodiar un almacén (TRABAJADOR activo).
func (u User) IsResponsibleCandidate() bool {
	return u.Role == RoleTrabajador && u.Status
}
