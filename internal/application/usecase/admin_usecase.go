package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Account-api/internal/application/auth"
	"github.com/jhoicas/Account-api/internal/application/dto"
	"github.com/jhoicas/Account-api/internal/application/security"
	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/rbac"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/logger"
	"github.com/jhoicas/Account-api/pkg/normalize"
)

// AdminUseCase operaciones de administración de cuentas. Cada cambio y su
// evento de auditoría se confirman en la misma transacción.
type AdminUseCase struct {
	tx      security.TxRunner
	pool    repository.Stores
	engine  *security.AccessControlEngine
	tracker *security.LockoutTracker
	audit   *security.AuditLog
	log     *logger.Logger
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(
	tx security.TxRunner,
	pool repository.Stores,
	engine *security.AccessControlEngine,
	tracker *security.LockoutTracker,
	audit *security.AuditLog,
	log *logger.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		tx:      tx,
		pool:    pool,
		engine:  engine,
		tracker: tracker,
		audit:   audit,
		log:     log.Component("admin"),
	}
}

// ListUsers todas las cuentas por orden de alta.
func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.pool.Accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar cuentas: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, acc := range list {
		out = append(out, *auth.ToUserResponse(acc))
	}
	return out, nil
}

// DeleteUser borra una cuenta sin roles administrativos y registra DELETE_USER.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, actor, email, path string) (*dto.StatusResponse, error) {
	var deleted *entity.Account
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		acc, err := uc.engine.DeleteAccount(ctx, s, email)
		if err != nil {
			return err
		}
		deleted = acc
		ev := security.NewEvent(entity.ActionDeleteUser, actor, acc.Email, path)
		return uc.audit.Append(ctx, s.Events, &ev)
	})
	if err != nil {
		return nil, domain.NewOpError("deleteUser", path, err)
	}
	uc.log.Info().Str("actor", normalize.Subject(actor)).Str("email", deleted.Email).Msg("cuenta eliminada")
	return &dto.StatusResponse{User: deleted.Email, Status: "Deleted successfully!"}, nil
}

// ChangeRole concede o retira un rol y registra GRANT_ROLE o REMOVE_ROLE.
func (uc *AdminUseCase) ChangeRole(ctx context.Context, actor string, in dto.RoleChangeRequest, path string) (*dto.UserResponse, error) {
	op := rbac.Operation(in.Operation)
	var (
		action entity.AuditAction
		object string
	)
	switch op {
	case rbac.OperationGrant:
		action, object = entity.ActionGrantRole, security.GrantDescription(in.Role, in.User)
	case rbac.OperationRemove:
		action, object = entity.ActionRemoveRole, security.RemoveDescription(in.Role, in.User)
	default:
		return nil, domain.NewOpError("changeUserRole", path, domain.ErrInvalidInput)
	}

	var updated *entity.Account
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		acc, err := uc.engine.ChangeRole(ctx, s, in.User, in.Role, op)
		if err != nil {
			return err
		}
		updated = acc
		ev := security.NewEvent(action, actor, object, path)
		return uc.audit.Append(ctx, s.Events, &ev)
	})
	if err != nil {
		return nil, domain.NewOpError("changeUserRole", path, err)
	}
	uc.log.Info().Str("actor", normalize.Subject(actor)).Str("change", object).Msg("roles actualizados")
	return auth.ToUserResponse(updated), nil
}

// SetAccess bloquea (LOCK) o desbloquea (UNLOCK) una cuenta.
func (uc *AdminUseCase) SetAccess(ctx context.Context, actor string, in dto.AccessRequest, path string) (*dto.StatusResponse, error) {
	const opName = "changeUserAccess"
	var (
		change func(context.Context, repository.AccountRepository, string) (*entity.Account, error)
		action entity.AuditAction
		status string
	)
	switch in.Operation {
	case "LOCK":
		change, action, status = uc.tracker.Lock, entity.ActionLockUser, "locked"
	case "UNLOCK":
		change, action, status = uc.tracker.Unlock, entity.ActionUnlockUser, "unlocked"
	default:
		return nil, domain.NewOpError(opName, path, domain.ErrInvalidInput)
	}

	var acc *entity.Account
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		a, err := change(ctx, s.Accounts, in.User)
		if err != nil {
			return err
		}
		acc = a
		object := security.LockDescription(a.Email)
		if action == entity.ActionUnlockUser {
			object = security.UnlockDescription(a.Email)
		}
		ev := security.NewEvent(action, actor, object, path)
		return uc.audit.Append(ctx, s.Events, &ev)
	})
	if err != nil {
		return nil, domain.NewOpError(opName, path, err)
	}
	uc.log.Info().Str("actor", normalize.Subject(actor)).Str("email", acc.Email).Str("status", status).Msg("acceso actualizado")
	return &dto.StatusResponse{Status: fmt.Sprintf("User %s %s!", acc.Email, status)}, nil
}
