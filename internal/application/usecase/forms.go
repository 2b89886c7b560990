package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/application/form"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/pkg/logger"
)

// Gateways puertos del backend que usan los casos de uso.
type Gateways struct {
	Users      ports.UserGateway
	Storages   ports.StorageGateway
	Categories ports.CategoryGateway
	Articles   ports.ArticleGateway
}

// opener construye la sesión de un tipo de formulario. p es nil en formularios públicos.
type opener func(ctx context.Context, uc *FormUseCase, p *auth.Principal, entityID *int64) (form.Controller, error)

type kindSpec struct {
	public bool
	roles  []entity.Role // vacío: cualquier rol autenticado
	open   opener
}

var admin = []entity.Role{entity.RoleAdministrador}

var kinds = map[string]kindSpec{
	"signin":                 {public: true, open: openSignIn},
	"user.register":          {public: true, open: openRegister},
	"password.reset.request": {public: true, open: openResetRequest},
	"password.reset.confirm": {public: true, open: openResetConfirm},
	"profile.edit":           {open: openProfileEdit},
	"password.change":        {open: openPasswordChange},
	"user.create":            {roles: admin, open: openUserCreate},
	"user.edit":              {roles: admin, open: openUserEdit},
	"category.create":        {roles: admin, open: openCategoryCreate},
	"storage.create":         {roles: admin, open: openStorageCreate},
	"storage.edit":           {roles: admin, open: openStorageEdit},
	"article.create":         {roles: admin, open: openArticleCreate},
	"article.edit":           {roles: admin, open: openArticleEdit},
	"storage.article.create": {roles: []entity.Role{entity.RoleTrabajador}, open: openStorageArticleCreate},
}

// IsPublicForm indica si kind se puede abrir sin sesión.
func IsPublicForm(kind string) bool {
	return kinds[kind].public
}

// FormUseCase abre sesiones de formulario y las registra.
type FormUseCase struct {
	gw        Gateways
	snapshots ports.SnapshotSource
	session   *auth.Session
	registry  *form.Registry
	log       *logger.Logger
}

// NewFormUseCase construye el caso de uso.
func NewFormUseCase(gw Gateways, snapshots ports.SnapshotSource, session *auth.Session, registry *form.Registry, log *logger.Logger) *FormUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &FormUseCase{gw: gw, snapshots: snapshots, session: session, registry: registry, log: log.Named("forms")}
}

// Open abre un formulario de tipo kind. entityID identifica la entidad en los formularios de edición.
func (uc *FormUseCase) Open(ctx context.Context, kind string, entityID *int64) (form.View, error) {
	spec, ok := kinds[kind]
	if !ok {
		return form.View{}, fmt.Errorf("%w: %s", domain.ErrUnknownForm, kind)
	}

	var principal *auth.Principal
	if !spec.public {
		p, err := uc.session.Current()
		if err != nil {
			return form.View{}, err
		}
		if !roleIn(p.Role, spec.roles) {
			return form.View{}, fmt.Errorf("%w: %s requiere otro rol", domain.ErrForbidden, kind)
		}
		principal = &p
	}

	ctrl, err := spec.open(ctx, uc, principal, entityID)
	if err != nil {
		return form.View{}, err
	}
	var owner form.Owner
	if principal != nil {
		owner = form.Owner{UserID: principal.UserID, Role: principal.Role}
	}
	uc.registry.AddOwned(ctrl, owner)
	uc.log.Debug().Str("form", ctrl.ID()).Str("kind", kind).Msg("formulario abierto")
	return ctrl.View(), nil
}

// Get devuelve la vista actual del formulario.
func (uc *FormUseCase) Get(id string) (form.View, error) {
	ctrl, err := uc.lookup(id)
	if err != nil {
		return form.View{}, err
	}
	return ctrl.View(), nil
}

// Change actualiza un campo.
func (uc *FormUseCase) Change(id, field, value string) (form.View, error) {
	ctrl, err := uc.lookup(id)
	if err != nil {
		return form.View{}, err
	}
	return ctrl.Change(field, value)
}

// Blur marca un campo como tocado.
func (uc *FormUseCase) Blur(id, field string) (form.View, error) {
	ctrl, err := uc.lookup(id)
	if err != nil {
		return form.View{}, err
	}
	return ctrl.Blur(field)
}

// Submit envía el formulario.
func (uc *FormUseCase) Submit(ctx context.Context, id string) (form.Outcome, error) {
	ctrl, err := uc.lookup(id)
	if err != nil {
		return form.Outcome{}, err
	}
	return ctrl.Submit(ctx)
}

// Cancel descarta el formulario y su borrador.
func (uc *FormUseCase) Cancel(id string) error {
	if _, err := uc.lookup(id); err != nil {
		return err
	}
	return uc.registry.Discard(id)
}

// lookup busca el formulario y exige que la sesión actual sea la de quien lo abrió.
// Los formularios públicos no tienen dueño.
func (uc *FormUseCase) lookup(id string) (form.Controller, error) {
	ctrl, owner, err := uc.registry.Lookup(id)
	if err != nil || owner.IsZero() {
		return ctrl, err
	}
	p, err := uc.session.Current()
	if err != nil {
		return nil, err
	}
	if p.UserID != owner.UserID || p.Role != owner.Role {
		uc.log.Warn().Str("form", id).Int64("owner", owner.UserID).Int64("user", p.UserID).Msg("formulario de otro usuario")
		return nil, fmt.Errorf("%w: el formulario pertenece a otra sesión", domain.ErrForbidden)
	}
	return ctrl, nil
}

func newSession[D any](uc *FormUseCase, schema form.Schema[D]) form.Controller {
	return form.New(schema, uc.snapshots, uc.log)
}

func roleIn(r entity.Role, roles []entity.Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

func requireID(kind string, entityID *int64) (int64, error) {
	if entityID == nil || *entityID <= 0 {
		return 0, fmt.Errorf("%w: %s requiere entity_id", domain.ErrInvalidInput, kind)
	}
	return *entityID, nil
}

// noticeError adjunta un aviso para el usuario a un error que no lo trae.
type noticeError struct {
	err error
	msg string
}

func (e *noticeError) Error() string       { return e.err.Error() }
func (e *noticeError) Unwrap() error       { return e.err }
func (e *noticeError) UserMessage() string { return e.msg }

func boolPtr(b bool) *bool { return &b }
