package auth

import (
	"time"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
)

// Navigation ruta de inicio y menú según el rol.
func Navigation(role entity.Role) (home string, menu []dto.MenuEntry) {
	switch role {
	case entity.RoleAdministrador:
		return "/administrador/home", []dto.MenuEntry{
			{Label: "Inicio", Path: "/administrador/home"},
			{Label: "Responsables", Path: "/administrador/responsables"},
			{Label: "Categorías", Path: "/administrador/categories"},
			{Label: "Almacenes", Path: "/administrador/storages"},
			{Label: "Artículos", Path: "/administrador/articles"},
			{Label: "Perfil", Path: "/administrador/profile"},
		}
	case entity.RoleTrabajador:
		return "/trabajador/home", []dto.MenuEntry{
			{Label: "Inicio", Path: "/trabajador/home"},
			{Label: "Mi almacén", Path: "/trabajador/storage"},
			{Label: "Perfil", Path: "/trabajador/profile"},
		}
	case entity.RoleUsuarioRegular:
		return "/homeusuarioregular", nil
	}
	return "/login", nil
}

// Me respuesta de /api/auth/me para el usuario autenticado.
func Me(p Principal) dto.MeResponse {
	home, menu := Navigation(p.Role)
	out := dto.MeResponse{
		User: dto.UserResponse{
			ID:       p.UserID,
			Username: p.Username,
			FullName: p.FullName,
			Email:    p.Email,
			Role:     string(p.Role),
			Status:   true,
		},
		Role: string(p.Role),
		Home: home,
		Menu: menu,
	}
	if out.Menu == nil {
		out.Menu = []dto.MenuEntry{}
	}
	if !p.ExpiresAt.IsZero() {
		out.ExpiresAt = p.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return out
}
