package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// FindByName nil, nil si no existe.
func (r *RoleRepo) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	role, err := scanRole(r.q.QueryRow(ctx, `SELECT id, name, role_group FROM roles WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return &role, nil
}

// Create persiste un rol.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	_, err := r.q.Exec(ctx, `INSERT INTO roles (id, name, role_group) VALUES ($1, $2, $3)`,
		role.ID, role.Name, string(role.Group))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// Count número de roles.
func (r *RoleRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}
	return n, nil
}

// List todos los roles por nombre.
func (r *RoleRepo) List(ctx context.Context) ([]entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, role_group FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

// scanRole lee (id, name, role_group), precedidos por las columnas extra de prefix.
func scanRole(row pgx.Row, prefix ...any) (entity.Role, error) {
	var (
		role  entity.Role
		group string
	)
	dest := append(prefix, &role.ID, &role.Name, &group)
	if err := row.Scan(dest...); err != nil {
		return entity.Role{}, err
	}
	role.Group = entity.RoleGroup(group)
	return role, nil
}
