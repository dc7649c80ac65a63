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

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, name, lastname, email, password_hash, locked, failed_attempts, lock_time, created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador sobre un pool o una transacción.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste la cuenta y sus roles. Llamar dentro de una transacción.
func (r *AccountRepo) Create(ctx context.Context, acc *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		acc.ID, acc.Name, acc.Lastname, acc.Email, acc.PasswordHash,
		acc.Locked, acc.FailedAttempts, acc.LockTime, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return r.insertRoles(ctx, acc.ID, acc.Roles)
}

// FindByEmail obtiene una cuenta por email sin distinguir mayúsculas.
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`
	return r.findOne(ctx, query, email)
}

// FindByEmailForUpdate igual que FindByEmail con SELECT ... FOR UPDATE.
func (r *AccountRepo) FindByEmailForUpdate(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1) FOR UPDATE`
	return r.findOne(ctx, query, email)
}

func (r *AccountRepo) findOne(ctx context.Context, query, email string) (*entity.Account, error) {
	acc, err := scanAccount(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	roles, err := r.rolesOf(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	acc.Roles = roles
	return acc, nil
}

// Update actualiza contraseña, bloqueo y contador. Los roles van por SetRoles.
func (r *AccountRepo) Update(ctx context.Context, acc *entity.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, lastname = $3, password_hash = $4, locked = $5, failed_attempts = $6, lock_time = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		acc.ID, acc.Name, acc.Lastname, acc.PasswordHash, acc.Locked, acc.FailedAttempts, acc.LockTime, acc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetRoles reemplaza el conjunto de roles. Llamar dentro de una transacción.
func (r *AccountRepo) SetRoles(ctx context.Context, accountID string, roles []entity.Role) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM account_roles WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete account roles: %w", err)
	}
	return r.insertRoles(ctx, accountID, roles)
}

func (r *AccountRepo) insertRoles(ctx context.Context, accountID string, roles []entity.Role) error {
	for _, role := range roles {
		_, err := r.q.Exec(ctx, `INSERT INTO account_roles (account_id, role_id) VALUES ($1, $2)`, accountID, role.ID)
		if err != nil {
			return fmt.Errorf("insert account role %s: %w", role.Name, err)
		}
	}
	return nil
}

// Delete elimina una cuenta por ID (account_roles en cascada).
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// Count número total de cuentas.
func (r *AccountRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

// ExistsByEmail comprueba la unicidad del email sin distinguir mayúsculas.
func (r *AccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE lower(email) = lower($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists account: %w", err)
	}
	return exists, nil
}

// List todas las cuentas por orden de alta, con sus roles.
func (r *AccountRepo) List(ctx context.Context) ([]*entity.Account, error) {
	rows, err := r.q.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	var list []*entity.Account
	byID := make(map[string]*entity.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, acc)
		byID[acc.ID] = acc
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	roleRows, err := r.q.Query(ctx, `
		SELECT ar.account_id, r.id, r.name, r.role_group
		FROM account_roles ar JOIN roles r ON r.id = ar.role_id`)
	if err != nil {
		return nil, fmt.Errorf("list account roles: %w", err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var accountID string
		role, err := scanRole(roleRows, &accountID)
		if err != nil {
			return nil, fmt.Errorf("scan account role: %w", err)
		}
		if acc, ok := byID[accountID]; ok {
			acc.Roles = append(acc.Roles, role)
		}
	}
	return list, roleRows.Err()
}

func (r *AccountRepo) rolesOf(ctx context.Context, accountID string) ([]entity.Role, error) {
	rows, err := r.q.Query(ctx, `
		SELECT r.id, r.name, r.role_group
		FROM roles r JOIN account_roles ar ON ar.role_id = r.id
		WHERE ar.account_id = $1`, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account roles: %w", err)
	}
	defer rows.Close()
	var roles []entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID, &a.Name, &a.Lastname, &a.Email, &a.PasswordHash,
		&a.Locked, &a.FailedAttempts, &a.LockTime, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
