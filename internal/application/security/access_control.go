package security

import (
	"context"
	"fmt"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/rbac"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/normalize"
)

// AccessControlEngine evalúa cambios de rol y borrados contra las reglas RBAC.
// No escribe auditoría: el llamador construye la descripción y la registra.
type AccessControlEngine struct {
	catalog *RoleCatalog
}

// NewAccessControlEngine construye el motor.
func NewAccessControlEngine(catalog *RoleCatalog) *AccessControlEngine {
	return &AccessControlEngine{catalog: catalog}
}

// ChangeRole concede o retira un rol y persiste el conjunto resultante.
func (e *AccessControlEngine) ChangeRole(ctx context.Context, s repository.Stores, email, roleName string, op rbac.Operation) (*entity.Account, error) {
	acc, err := lockedAccount(ctx, s.Accounts, email)
	if err != nil {
		return nil, err
	}
	role, err := e.catalog.FindByName(ctx, s.Roles, roleName)
	if err != nil {
		return nil, err
	}
	roles, err := rbac.Apply(acc.Roles, *role, op)
	if err != nil {
		return nil, err
	}
	if err := s.Accounts.SetRoles(ctx, acc.ID, roles); err != nil {
		return nil, fmt.Errorf("guardar roles: %w", err)
	}
	acc.Roles = roles
	return acc, nil
}

// DeleteAccount borra la cuenta salvo que tenga algún rol administrativo.
func (e *AccessControlEngine) DeleteAccount(ctx context.Context, s repository.Stores, email string) (*entity.Account, error) {
	acc, err := lockedAccount(ctx, s.Accounts, email)
	if err != nil {
		return nil, err
	}
	if err := rbac.CheckDeletion(acc); err != nil {
		return nil, err
	}
	if err := s.Accounts.Delete(ctx, acc.ID); err != nil {
		return nil, fmt.Errorf("borrar cuenta: %w", err)
	}
	return acc, nil
}

// lockedAccount lee la cuenta bloqueando la fila. ErrUserNotFound si no existe.
func lockedAccount(ctx context.Context, accounts repository.AccountRepository, email string) (*entity.Account, error) {
	acc, err := accounts.FindByEmailForUpdate(ctx, normalize.Email(email))
	if err != nil {
		return nil, fmt.Errorf("buscar cuenta: %w", err)
	}
	if acc == nil {
		return nil, domain.ErrUserNotFound
	}
	return acc, nil
}
