package lockout_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/lockout"
)

func businessAccount() *entity.Account {
	return &entity.Account{
		Email: "user@acme.com",
		Roles: []entity.Role{{Name: entity.RoleUser, Group: entity.RoleGroupBusiness}},
	}
}

func adminAccount() *entity.Account {
	return &entity.Account{
		Email: "admin@acme.com",
		Roles: []entity.Role{{Name: entity.RoleAdministrator, Group: entity.RoleGroupAdministrative}},
	}
}

func TestRegisterFailure_BloqueaEnElSextoIntento(t *testing.T) {
	acc := businessAccount()
	now := time.Now()

	for i := 1; i <= lockout.MaxFailedAttempts; i++ {
		tr := lockout.RegisterFailure(acc, now)
		assert.Equal(t, i, tr.Attempts)
		assert.Equal(t, lockout.OutcomeCounted, tr.Outcome, "intento %d no debe bloquear", i)
		assert.False(t, acc.Locked)
	}

	tr := lockout.RegisterFailure(acc, now)
	assert.Equal(t, lockout.OutcomeLocked, tr.Outcome)
	assert.True(t, acc.Locked)
	require.NotNil(t, acc.LockTime)

	// Ya bloqueada: el contador sigue subiendo sin nueva transición.
	tr = lockout.RegisterFailure(acc, now)
	assert.Equal(t, 7, tr.Attempts)
	assert.Equal(t, lockout.OutcomeCounted, tr.Outcome)
}

func TestRegisterFailure_AdministradorNuncaSeBloquea(t *testing.T) {
	acc := adminAccount()
	for i := 0; i < 10; i++ {
		lockout.RegisterFailure(acc, time.Now())
	}
	assert.Equal(t, 10, acc.FailedAttempts)
	assert.False(t, acc.Locked)

	tr := lockout.RegisterFailure(acc, time.Now())
	assert.Equal(t, lockout.OutcomeLockRefused, tr.Outcome)
}

func TestLock_Manual(t *testing.T) {
	acc := businessAccount()
	require.NoError(t, lockout.Lock(acc, time.Now()))
	assert.True(t, acc.Locked)

	adm := adminAccount()
	assert.ErrorIs(t, lockout.Lock(adm, time.Now()), domain.ErrAdminCannotBeLocked)
	assert.False(t, adm.Locked)
}

func TestUnlock_ReiniciaSiempre(t *testing.T) {
	acc := businessAccount()
	for i := 0; i < 8; i++ {
		lockout.RegisterFailure(acc, time.Now())
	}
	lockout.Unlock(acc)
	assert.False(t, acc.Locked)
	assert.Equal(t, 0, acc.FailedAttempts)
	assert.Nil(t, acc.LockTime)

	// También sobre una cuenta nunca bloqueada.
	fresh := businessAccount()
	lockout.Unlock(fresh)
	assert.Equal(t, 0, fresh.FailedAttempts)
}
