package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/sinv-console/internal/application/analytics"
	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/application/usecase"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session     *auth.Session
	Engine      *rules.Engine
	FormUC      *usecase.FormUseCase
	UserUC      *usecase.UserUseCase
	StorageUC   *usecase.StorageUseCase
	CatalogUC   *usecase.CatalogUseCase
	DashboardUC *appanalytics.DashboardUseCase
}

// Router registra las rutas de la API de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	session := SessionMiddleware(deps.Session)
	admin := RequireRole(entity.RoleAdministrador)
	worker := RequireRole(entity.RoleTrabajador)

	// Auth: el inicio de sesión se hace con el formulario "signin"
	authHandler := NewAuthHandler(deps.Session)
	api.Post("/auth/signout", authHandler.SignOut)
	api.Get("/auth/me", session, authHandler.Me)

	// Formularios (la autorización por tipo la decide FormUseCase.Open)
	forms := api.Group("/forms")
	formHandler := NewFormHandler(deps.FormUC, deps.Engine)
	forms.Post("/", formHandler.Open)
	forms.Get("/:id", formHandler.Get)
	forms.Patch("/:id", formHandler.Change)
	forms.Delete("/:id", formHandler.Cancel)
	forms.Post("/:id/blur", formHandler.Blur)
	forms.Post("/:id/submit", formHandler.Submit)

	entities := NewEntityHandler(deps.UserUC, deps.StorageUC, deps.CatalogUC)

	// Usuarios (administrador)
	users := api.Group("/users", session, admin)
	users.Get("/", entities.ListUsers)
	users.Patch("/:id/status", entities.ToggleUser)

	// Almacenes: /mine antes que /:id para que no lo capture el parámetro
	storages := api.Group("/storages", session)
	storages.Get("/mine", worker, entities.MyStorage)
	storages.Get("/", admin, entities.ListStorages)
	storages.Patch("/:id/status", admin, entities.ToggleStorage)
	storages.Get("/:id/responsibles", admin, entities.Responsibles)

	// Catálogo
	categories := api.Group("/categories", session)
	categories.Get("/", entities.ListCategories)
	categories.Get("/:id/storages", entities.CategoryStorages)

	articles := api.Group("/articles", session)
	articles.Get("/", entities.ListArticles)
	articles.Delete("/:id", admin, entities.DeleteArticle)

	// Tableros
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", session, admin, dashboardHandler.Admin)
	api.Get("/dashboard/worker", session, worker, dashboardHandler.Worker)
}
