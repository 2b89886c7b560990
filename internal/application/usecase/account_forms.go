package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/form"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/consistency"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ─────────────────────────────────────────────────────────────────────────────
// Inicio de sesión
// ─────────────────────────────────────────────────────────────────────────────

// SignInDraft borrador del inicio de sesión.
type SignInDraft struct {
	Email    string `json:"email"`
	Password string `json:"-"`
}

func openSignIn(_ context.Context, uc *FormUseCase, _ *auth.Principal, _ *int64) (form.Controller, error) {
	return newSession(uc, form.Schema[SignInDraft]{
		Kind: "signin",
		Fields: []form.FieldSpec[SignInDraft]{
			form.Text("email", func(d *SignInDraft) *string { return &d.Email }, rules.Email),
			form.Text("password", func(d *SignInDraft) *string { return &d.Password }, rules.Required),
		},
		Submit: func(ctx context.Context, d SignInDraft) (any, error) {
			p, err := uc.session.SignIn(ctx, strings.TrimSpace(d.Email), d.Password)
			if errors.Is(err, domain.ErrRoleNotAllowed) {
				return nil, &noticeError{err: err, msg: MsgAccessDenied}
			}
			if err != nil {
				return nil, err
			}
			return auth.Me(p), nil
		},
		FailureMessage: MsgSignInFailed,
	}), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Registro público de trabajadores
// ─────────────────────────────────────────────────────────────────────────────

// RegisterDraft borrador del registro público.
type RegisterDraft struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"-"`
	Confirm  string `json:"-"`
}

// RegisterUsername nombre de usuario derivado: nombre en minúsculas, punto y primer apellido.
func RegisterUsername(name, lastname string) string {
	lower := cases.Lower(language.Spanish)
	n := lower.String(strings.TrimSpace(name))
	parts := strings.Fields(lower.String(lastname))
	if len(parts) == 0 {
		return n
	}
	return n + "." + parts[0]
}

func openRegister(_ context.Context, uc *FormUseCase, _ *auth.Principal, _ *int64) (form.Controller, error) {
	return newSession(uc, form.Schema[RegisterDraft]{
		Kind: "user.register",
		Fields: []form.FieldSpec[RegisterDraft]{
			form.Text("name", func(d *RegisterDraft) *string { return &d.Name }, rules.Name),
			form.Text("lastname", func(d *RegisterDraft) *string { return &d.Lastname }, rules.Name),
			form.Text("email", func(d *RegisterDraft) *string { return &d.Email }, rules.Email),
			form.Text("phone", func(d *RegisterDraft) *string { return &d.Phone }, rules.Phone),
			form.Text("password", func(d *RegisterDraft) *string { return &d.Password }, rules.Password),
			form.Confirm("confirmPassword", func(d *RegisterDraft) *string { return &d.Confirm }, func(d RegisterDraft) string { return d.Password }),
		},
		Needs: ports.SnapshotNeeds{Users: true},
		Consistency: func(d RegisterDraft, snap consistency.Snapshot) consistency.Violations {
			return emailViolation(d.Email, snap.Users, nil)
		},
		Submit: func(ctx context.Context, d RegisterDraft) (any, error) {
			name := strings.TrimSpace(d.Name)
			lastname := strings.TrimSpace(d.Lastname)
			u, err := uc.gw.Users.Create(ctx, dto.UserPayload{
				Username: RegisterUsername(name, lastname),
				FullName: name + " " + lastname,
				Email:    strings.TrimSpace(d.Email),
				Phone:    strings.TrimSpace(d.Phone),
				Password: d.Password,
				RoleID:   entity.RoleIDs[entity.RoleTrabajador],
				Status:   boolPtr(true),
			})
			if err != nil {
				return nil, err
			}
			return dto.NewUserResponse(*u), nil
		},
		FailureMessage: MsgRegisterFailed,
	}), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Recuperación de contraseña
// ─────────────────────────────────────────────────────────────────────────────

// ResetRequestDraft borrador de la solicitud de recuperación.
type ResetRequestDraft struct {
	Email string `json:"email"`
}

func openResetRequest(_ context.Context, uc *FormUseCase, _ *auth.Principal, _ *int64) (form.Controller, error) {
	return newSession(uc, form.Schema[ResetRequestDraft]{
		Kind: "password.reset.request",
		Fields: []form.FieldSpec[ResetRequestDraft]{
			form.Text("email", func(d *ResetRequestDraft) *string { return &d.Email }, rules.Email),
		},
		Submit: func(ctx context.Context, d ResetRequestDraft) (any, error) {
			ticket, err := uc.gw.Users.RequestPasswordReset(ctx, strings.TrimSpace(d.Email))
			if err != nil {
				return nil, err
			}
			return ticket, nil
		},
		FailureMessage: MsgResetMailFailed,
	}), nil
}

// ResetConfirmDraft borrador del restablecimiento con token.
type ResetConfirmDraft struct {
	Token       string `json:"token"`
	UserID      *int64 `json:"userId,omitempty"`
	NewPassword string `json:"-"`
	Confirm     string `json:"-"`
}

func openResetConfirm(_ context.Context, uc *FormUseCase, _ *auth.Principal, entityID *int64) (form.Controller, error) {
	return newSession(uc, form.Schema[ResetConfirmDraft]{
		Kind:    "password.reset.confirm",
		Initial: ResetConfirmDraft{UserID: entityID},
		Fields: []form.FieldSpec[ResetConfirmDraft]{
			form.Text("token", func(d *ResetConfirmDraft) *string { return &d.Token }, rules.Required),
			form.OptionalID("userId", func(d *ResetConfirmDraft) **int64 { return &d.UserID }),
			form.Text("newPassword", func(d *ResetConfirmDraft) *string { return &d.NewPassword }, rules.Password),
			form.Confirm("confirmPassword", func(d *ResetConfirmDraft) *string { return &d.Confirm }, func(d ResetConfirmDraft) string { return d.NewPassword }),
		},
		Submit: func(ctx context.Context, d ResetConfirmDraft) (any, error) {
			in := dto.ResetPasswordPayload{Token: strings.TrimSpace(d.Token), NewPassword: d.NewPassword}
			if d.UserID != nil {
				in.UserID = *d.UserID
			}
			if err := uc.gw.Users.ResetPassword(ctx, in); err != nil {
				return nil, err
			}
			return map[string]string{"message": MsgResetDone}, nil
		},
		FailureMessage: MsgResetFailed,
	}), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Perfil y cambio de contraseña del usuario autenticado
// ─────────────────────────────────────────────────────────────────────────────

// ProfileDraft borrador del perfil propio.
type ProfileDraft struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`

	current entity.User
}

func openProfileEdit(ctx context.Context, uc *FormUseCase, p *auth.Principal, _ *int64) (form.Controller, error) {
	u, err := uc.gw.Users.Get(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	self := u.ID
	return newSession(uc, form.Schema[ProfileDraft]{
		Kind:    "profile.edit",
		Initial: ProfileDraft{FullName: u.FullName, Email: u.Email, current: *u},
		Fields: []form.FieldSpec[ProfileDraft]{
			form.Text("fullName", func(d *ProfileDraft) *string { return &d.FullName }, rules.FullName),
			form.Text("email", func(d *ProfileDraft) *string { return &d.Email }, rules.Email),
		},
		Needs: ports.SnapshotNeeds{Users: true},
		Consistency: func(d ProfileDraft, snap consistency.Snapshot) consistency.Violations {
			return emailViolation(d.Email, snap.Users, &self)
		},
		Submit: func(ctx context.Context, d ProfileDraft) (any, error) {
			in := payloadFor(d.current)
			in.FullName = strings.TrimSpace(d.FullName)
			in.Email = strings.TrimSpace(d.Email)
			updated, err := uc.gw.Users.Update(ctx, d.current.ID, in)
			if err != nil {
				return nil, err
			}
			return dto.NewUserResponse(*updated), nil
		},
		FailureMessage: MsgProfileFailed,
	}), nil
}

// PasswordChangeDraft borrador del cambio de contraseña propio.
type PasswordChangeDraft struct {
	Current     string `json:"-"`
	NewPassword string `json:"-"`
	Confirm     string `json:"-"`

	user entity.User
}

func openPasswordChange(ctx context.Context, uc *FormUseCase, p *auth.Principal, _ *int64) (form.Controller, error) {
	u, err := uc.gw.Users.Get(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return newSession(uc, form.Schema[PasswordChangeDraft]{
		Kind:    "password.change",
		Initial: PasswordChangeDraft{user: *u},
		Fields: []form.FieldSpec[PasswordChangeDraft]{
			form.Text("currentPassword", func(d *PasswordChangeDraft) *string { return &d.Current }, rules.Required),
			form.Text("newPassword", func(d *PasswordChangeDraft) *string { return &d.NewPassword }, rules.Password),
			form.Confirm("confirmPassword", func(d *PasswordChangeDraft) *string { return &d.Confirm }, func(d PasswordChangeDraft) string { return d.NewPassword }),
		},
		Submit: func(ctx context.Context, d PasswordChangeDraft) (any, error) {
			ok, err := uc.gw.Users.VerifyPassword(ctx, d.user.ID, d.Current)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &form.FieldError{Field: "currentPassword", Message: MsgWrongPassword}
			}
			in := payloadFor(d.user)
			in.Password = d.NewPassword
			if _, err := uc.gw.Users.Update(ctx, d.user.ID, in); err != nil {
				return nil, err
			}
			return map[string]string{"message": "La contraseña se actualizó correctamente."}, nil
		},
		FailureMessage: MsgPasswordFailed,
	}), nil
}

// payloadFor payload de actualización que conserva los datos actuales del usuario.
func payloadFor(u entity.User) dto.UserPayload {
	roleID, ok := entity.RoleIDs[u.Role]
	if !ok {
		roleID = entity.RoleIDs[entity.RoleTrabajador]
	}
	return dto.UserPayload{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		RoleID:   roleID,
		Status:   boolPtr(u.Status),
	}
}

func emailViolation(email string, users []entity.User, exclude *int64) consistency.Violations {
	if consistency.EmailUnique(email, users, exclude) {
		return nil
	}
	return consistency.Violations{{Field: "email", Code: consistency.CodeEmailTaken, Message: MsgEmailTaken}}
}
