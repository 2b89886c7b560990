package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/form"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/consistency"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
)

// UserDraft borrador de alta y edición de responsables.
type UserDraft struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Confirm  string `json:"-"`
	Status   bool   `json:"status"`

	current entity.User
}

func userFields(passwordRequired bool) []form.FieldSpec[UserDraft] {
	password := rules.Password
	if !passwordRequired {
		password = rules.Optional(rules.Password)
	}
	return []form.FieldSpec[UserDraft]{
		form.Text("username", func(d *UserDraft) *string { return &d.Username }, rules.Username),
		form.Text("fullName", func(d *UserDraft) *string { return &d.FullName }, rules.FullName),
		form.Text("email", func(d *UserDraft) *string { return &d.Email }, rules.Email),
		form.Text("password", func(d *UserDraft) *string { return &d.Password }, password),
		{
			Name: "confirmPassword",
			Set: func(d *UserDraft, v string) error {
				d.Confirm = v
				return nil
			},
			Check: func(d UserDraft) rules.Result {
				if !passwordRequired && d.Password == "" && d.Confirm == "" {
					return rules.OK
				}
				return rules.Matches(d.Password)(d.Confirm)
			},
		},
		form.Bool("status", func(d *UserDraft) *bool { return &d.Status }),
	}
}

func openUserCreate(_ context.Context, uc *FormUseCase, _ *auth.Principal, _ *int64) (form.Controller, error) {
	return newSession(uc, form.Schema[UserDraft]{
		Kind:    "user.create",
		Initial: UserDraft{Status: true},
		Fields:  userFields(true),
		Needs:   ports.SnapshotNeeds{Users: true},
		Consistency: func(d UserDraft, snap consistency.Snapshot) consistency.Violations {
			return emailViolation(d.Email, snap.Users, nil)
		},
		Submit: func(ctx context.Context, d UserDraft) (any, error) {
			u, err := uc.gw.Users.Create(ctx, dto.UserPayload{
				Username: strings.TrimSpace(d.Username),
				FullName: strings.TrimSpace(d.FullName),
				Email:    strings.TrimSpace(d.Email),
				Password: d.Password,
				RoleID:   entity.RoleIDs[entity.RoleTrabajador],
				Status:   boolPtr(d.Status),
			})
			if err != nil {
				return nil, err
			}
			return dto.NewUserResponse(*u), nil
		},
		FailureMessage: MsgUserCreateFailed,
	}), nil
}

func openUserEdit(ctx context.Context, uc *FormUseCase, _ *auth.Principal, entityID *int64) (form.Controller, error) {
	id, err := requireID("user.edit", entityID)
	if err != nil {
		return nil, err
	}
	u, err := uc.gw.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return newSession(uc, form.Schema[UserDraft]{
		Kind: "user.edit",
		Initial: UserDraft{
			ID:       u.ID,
			Username: u.Username,
			FullName: u.FullName,
			Email:    u.Email,
			Status:   u.Status,
			current:  *u,
		},
		Fields: userFields(false),
		Needs:  ports.SnapshotNeeds{Users: true},
		Consistency: func(d UserDraft, snap consistency.Snapshot) consistency.Violations {
			return emailViolation(d.Email, snap.Users, &d.ID)
		},
		Submit: func(ctx context.Context, d UserDraft) (any, error) {
			in := payloadFor(d.current)
			in.Username = strings.TrimSpace(d.Username)
			in.FullName = strings.TrimSpace(d.FullName)
			in.Email = strings.TrimSpace(d.Email)
			in.Password = d.Password
			in.Status = boolPtr(d.Status)
			updated, err := uc.gw.Users.Update(ctx, d.ID, in)
			if err != nil {
				return nil, err
			}
			return dto.NewUserResponse(*updated), nil
		},
		FailureMessage: MsgUserUpdateFailed,
	}), nil
}
