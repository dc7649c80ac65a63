// Package rbac contiene las reglas puras de asignación de roles: exclusividad de grupo,
// protección del rol administrador y mínimo de un rol por cuenta.
package rbac

import (
	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
)

// Operation tipo de cambio de rol.
type Operation string

const (
	OperationGrant  Operation = "GRANT"
	OperationRemove Operation = "REMOVE"
)

// Homogeneous informa si todos los roles pertenecen a un mismo grupo.
func Homogeneous(roles []entity.Role) bool {
	for i := 1; i < len(roles); i++ {
		if roles[i].Group != roles[0].Group {
			return false
		}
	}
	return true
}

// CheckGrant valida que el rol nuevo sea del mismo grupo que los actuales.
func CheckGrant(current []entity.Role, role entity.Role) error {
	for _, r := range current {
		if r.Group != role.Group {
			return domain.ErrRoleConflict
		}
	}
	return nil
}

// CheckRemoval valida la retirada en orden fijo: protección del administrador,
// posesión del rol y, por último, mínimo de un rol.
func CheckRemoval(current []entity.Role, role entity.Role) error {
	if role.Name == entity.RoleAdministrator {
		return domain.ErrAdminRoleRemoval
	}
	if !contains(current, role.Name) {
		return domain.ErrInvalidOperation
	}
	if len(current) <= 1 {
		return domain.ErrInvariantViolation
	}
	return nil
}

// Apply valida y aplica la operación, devolviendo el nuevo conjunto de roles.
// GRANT de un rol ya presente no modifica el conjunto.
func Apply(current []entity.Role, role entity.Role, op Operation) ([]entity.Role, error) {
	switch op {
	case OperationGrant:
		if err := CheckGrant(current, role); err != nil {
			return nil, err
		}
		if contains(current, role.Name) {
			return current, nil
		}
		return append(append([]entity.Role(nil), current...), role), nil
	case OperationRemove:
		if err := CheckRemoval(current, role); err != nil {
			return nil, err
		}
		out := make([]entity.Role, 0, len(current)-1)
		for _, r := range current {
			if r.Name != role.Name {
				out = append(out, r)
			}
		}
		return out, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

// CheckDeletion impide borrar cuentas con algún rol administrativo.
func CheckDeletion(acc *entity.Account) error {
	if acc.InGroup(entity.RoleGroupAdministrative) {
		return domain.ErrRoleConflict
	}
	return nil
}

func contains(roles []entity.Role, name string) bool {
	for _, r := range roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
