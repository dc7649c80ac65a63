package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/infrastructure/postgres"
)

var accountCols = []string{"id", "name", "lastname", "email", "password_hash", "locked", "failed_attempts", "lock_time", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

// ──────────────────────────────────────────────────────────────────────────────
// FindByEmail
// ──────────────────────────────────────────────────────────────────────────────

func TestAccountRepo_FindByEmail_ConRoles(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewAccountRepository(mock)
	now := time.Now()
	var noLock *time.Time

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("user@acme.com").
		WillReturnRows(mock.NewRows(accountCols).
			AddRow("a1", "Ana", "Pérez", "user@acme.com", "hash", false, 2, noLock, now, now))
	mock.ExpectQuery(`FROM roles r JOIN account_roles`).
		WithArgs("a1").
		WillReturnRows(mock.NewRows([]string{"id", "name", "role_group"}).
			AddRow("r1", entity.RoleUser, "BUSINESS").
			AddRow("r2", entity.RoleAuditor, "BUSINESS"))

	acc, err := repo.FindByEmail(context.Background(), "user@acme.com")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, "a1", acc.ID)
	assert.Equal(t, 2, acc.FailedAttempts)
	assert.Nil(t, acc.LockTime)
	require.Len(t, acc.Roles, 2)
	assert.Equal(t, entity.RoleGroupBusiness, acc.Roles[0].Group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_FindByEmail_NoExiste(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewAccountRepository(mock)

	mock.ExpectQuery(`FROM accounts WHERE lower\(email\)`).
		WithArgs("nadie@acme.com").
		WillReturnError(pgx.ErrNoRows)

	acc, err := repo.FindByEmail(context.Background(), "nadie@acme.com")
	assert.NoError(t, err)
	assert.Nil(t, acc, "cuenta inexistente devuelve nil, nil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_FindByEmailForUpdate_BloqueaFila(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewAccountRepository(mock)

	mock.ExpectQuery(`FROM accounts WHERE lower\(email\) = lower\(\$1\) FOR UPDATE`).
		WithArgs("user@acme.com").
		WillReturnError(errors.New("conexión perdida"))

	_, err := repo.FindByEmailForUpdate(context.Background(), "user@acme.com")
	assert.Error(t, err, "un error de almacenamiento no se confunde con cuenta inexistente")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// Escrituras
// ──────────────────────────────────────────────────────────────────────────────

func TestAccountRepo_Create_EmailDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewAccountRepository(mock)

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs("a1", pgxmock.AnyArg(), pgxmock.AnyArg(), "user@acme.com", pgxmock.AnyArg(),
			false, 0, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &entity.Account{ID: "a1", Email: "user@acme.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Create_InsertaRoles(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewAccountRepository(mock)
	acc := &entity.Account{
		ID: "a1", Name: "Ana", Lastname: "Pérez", Email: "user@acme.com", PasswordHash: "hash",
		Roles: []entity.Role{{ID: "r1", Name: entity.RoleUser, Group: entity.RoleGroupBusiness}},
	}

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(acc.ID, acc.Name, acc.Lastname, acc.Email, acc.PasswordHash,
			false, 0, acc.LockTime, acc.CreatedAt, acc.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO account_roles").
		WithArgs("a1", "r1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), acc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Update_SinFilas(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewAccountRepository(mock)

	mock.ExpectExec("UPDATE accounts").
		WithArgs("a1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), false, 0, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &entity.Account{ID: "a1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_SetRoles_Reemplaza(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewAccountRepository(mock)

	mock.ExpectExec("DELETE FROM account_roles WHERE account_id").
		WithArgs("a1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO account_roles").
		WithArgs("a1", "r1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO account_roles").
		WithArgs("a1", "r2").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.SetRoles(context.Background(), "a1", []entity.Role{{ID: "r1"}, {ID: "r2"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_List_AgrupaRoles(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewAccountRepository(mock)
	now := time.Now()
	var noLock *time.Time

	mock.ExpectQuery(`FROM accounts ORDER BY created_at, id`).
		WillReturnRows(mock.NewRows(accountCols).
			AddRow("a1", "Ana", "Pérez", "admin@acme.com", "h", false, 0, noLock, now, now).
			AddRow("a2", "Luis", "Gómez", "user@acme.com", "h", true, 6, &now, now, now))
	mock.ExpectQuery(`FROM account_roles ar JOIN roles r`).
		WillReturnRows(mock.NewRows([]string{"account_id", "id", "name", "role_group"}).
			AddRow("a2", "r3", entity.RoleUser, "BUSINESS").
			AddRow("a1", "r1", entity.RoleAdministrator, "ADMINISTRATIVE"))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a1", list[0].ID)
	assert.True(t, list[0].IsAdministrator())
	assert.True(t, list[1].Locked)
	assert.Equal(t, []string{entity.RoleUser}, list[1].RoleNames())
	assert.NoError(t, mock.ExpectationsWereMet())
}
