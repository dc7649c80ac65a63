package repository

import (
	"context"

	"github.com/jhoicas/Account-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	Create(ctx context.Context, role *entity.Role) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]entity.Role, error)
}
