package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/internal/infrastructure/memory"
)

func userAccount(id, email string) *entity.Account {
	return &entity.Account{
		ID:    id,
		Email: email,
		Roles: []entity.Role{{ID: "r1", Name: entity.RoleUser, Group: entity.RoleGroupBusiness}},
	}
}

func TestStore_RunConfirmaSoloSinError(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Run(ctx, func(st repository.Stores) error {
		require.NoError(t, st.Accounts.Create(ctx, userAccount("a1", "user@acme.com")))
		require.NoError(t, st.Events.Append(ctx, &entity.AuditEvent{Action: entity.ActionCreateUser}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.Stores().Accounts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "un rollback no deja cuentas")
	evs, err := s.Stores().Events.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, evs, "un rollback no deja eventos")

	err = s.Run(ctx, func(st repository.Stores) error {
		return st.Accounts.Create(ctx, userAccount("a1", "user@acme.com"))
	})
	require.NoError(t, err)
	n, err = s.Stores().Accounts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_RunCanceladoNoEjecuta(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.Stores) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAccountRepo_EmailSinDistinguirMayusculas(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	repo := s.Stores().Accounts

	require.NoError(t, repo.Create(ctx, userAccount("a1", "user@acme.com")))
	err := repo.Create(ctx, userAccount("a2", "USER@acme.com"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	acc, err := repo.FindByEmail(ctx, "User@Acme.com")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, "a1", acc.ID)

	missing, err := repo.FindByEmail(ctx, "nadie@acme.com")
	require.NoError(t, err)
	assert.Nil(t, missing, "cuenta inexistente devuelve nil, nil")
}

func TestAccountRepo_UpdateNoTocaRoles(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	repo := s.Stores().Accounts
	require.NoError(t, repo.Create(ctx, userAccount("a1", "user@acme.com")))

	acc, err := repo.FindByEmail(ctx, "user@acme.com")
	require.NoError(t, err)
	acc.FailedAttempts = 3
	acc.Roles = nil
	require.NoError(t, repo.Update(ctx, acc))

	got, err := repo.FindByEmail(ctx, "user@acme.com")
	require.NoError(t, err)
	assert.Equal(t, 3, got.FailedAttempts)
	assert.Len(t, got.Roles, 1, "Update no modifica los roles")

	require.NoError(t, repo.SetRoles(ctx, "a1", []entity.Role{
		{Name: entity.RoleUser, Group: entity.RoleGroupBusiness},
		{Name: entity.RoleAuditor, Group: entity.RoleGroupBusiness},
	}))
	got, err = repo.FindByEmail(ctx, "user@acme.com")
	require.NoError(t, err)
	assert.Len(t, got.Roles, 2)
}

func TestAccountRepo_ListEnOrdenDeAlta(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	repo := s.Stores().Accounts
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Create(ctx, userAccount(id, id+"@acme.com")))
	}
	require.NoError(t, repo.Delete(ctx, "a"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestEventRepo_IDsCrecientes(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	repo := s.Stores().Events

	for _, a := range []entity.AuditAction{entity.ActionLoginFailed, entity.ActionBruteForce, entity.ActionLockUser} {
		ev := &entity.AuditEvent{Action: a, Subject: "user@acme.com"}
		require.NoError(t, repo.Append(ctx, ev))
		assert.NotZero(t, ev.ID)
		assert.False(t, ev.Date.IsZero())
	}
	evs, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, evs, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{evs[0].ID, evs[1].ID, evs[2].ID})
	assert.Equal(t, entity.ActionLockUser, evs[2].Action)
}
