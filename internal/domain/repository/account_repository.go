package repository

import (
	"context"

	"github.com/jhoicas/Account-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Las búsquedas devuelven (nil, nil) cuando la cuenta no existe.
type AccountRepository interface {
	Create(ctx context.Context, acc *entity.Account) error
	// FindByEmail busca sin distinguir mayúsculas.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	// FindByEmailForUpdate como FindByEmail pero bloquea la fila hasta el fin de la transacción.
	FindByEmailForUpdate(ctx context.Context, email string) (*entity.Account, error)
	// Update persiste contraseña, estado de bloqueo y contador; no toca los roles.
	Update(ctx context.Context, acc *entity.Account) error
	SetRoles(ctx context.Context, accountID string, roles []entity.Role) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List devuelve todas las cuentas por orden de alta.
	List(ctx context.Context) ([]*entity.Account, error)
}
