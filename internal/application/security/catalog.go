package security

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/logger"
)

// RoleCatalog conjunto fijo de roles y su grupo.
type RoleCatalog struct {
	log *logger.Logger
}

// NewRoleCatalog construye el catálogo.
func NewRoleCatalog(log *logger.Logger) *RoleCatalog {
	return &RoleCatalog{log: log.Component("role_catalog")}
}

// EnsureSeeded inserta los roles por defecto si el catálogo está vacío. Idempotente.
// Un catálogo ya sembrado se valida: todo rol debe pertenecer a un grupo conocido.
func (c *RoleCatalog) EnsureSeeded(ctx context.Context, roles repository.RoleRepository) error {
	n, err := roles.Count(ctx)
	if err != nil {
		return fmt.Errorf("contar roles: %w", err)
	}
	if n > 0 {
		return c.validate(ctx, roles)
	}
	for _, r := range entity.DefaultRoles() {
		role := r
		role.ID = uuid.New().String()
		if err := roles.Create(ctx, &role); err != nil {
			return fmt.Errorf("sembrar rol %s: %w", role.Name, err)
		}
	}
	c.log.Info().Int("roles", len(entity.DefaultRoles())).Msg("catálogo de roles sembrado")
	return nil
}

// FindByName acepta el nombre con o sin prefijo ROLE_. ErrRoleNotFound si no existe.
func (c *RoleCatalog) FindByName(ctx context.Context, roles repository.RoleRepository, name string) (*entity.Role, error) {
	canonical := entity.CanonicalRoleName(name)
	if canonical == "" {
		return nil, domain.ErrRoleNotFound
	}
	role, err := roles.FindByName(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("buscar rol: %w", err)
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

func (c *RoleCatalog) validate(ctx context.Context, roles repository.RoleRepository) error {
	list, err := roles.List(ctx)
	if err != nil {
		return fmt.Errorf("listar roles: %w", err)
	}
	for _, r := range list {
		if !r.Group.Valid() {
			return fmt.Errorf("rol %s con grupo desconocido %q: %w", r.Name, r.Group, domain.ErrInvariantViolation)
		}
	}
	return nil
}
