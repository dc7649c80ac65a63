package entity

import "strings"

// RoleGroup partición de roles: una cuenta no puede mezclar grupos.
type RoleGroup string

const (
	RoleGroupAdministrative RoleGroup = "ADMINISTRATIVE"
	RoleGroupBusiness       RoleGroup = "BUSINESS"
)

// Valid informa si el grupo es uno de los dos conocidos.
func (g RoleGroup) Valid() bool {
	return g == RoleGroupAdministrative || g == RoleGroupBusiness
}

// Nombres de los roles sembrados al arrancar.
const (
	RoleAdministrator = "ROLE_ADMINISTRATOR"
	RoleAccountant    = "ROLE_ACCOUNTANT"
	RoleUser          = "ROLE_USER"
	RoleAuditor       = "ROLE_AUDITOR"

	RolePrefix = "ROLE_"
)

// Role es dato de referencia inmutable después de creado.
type Role struct {
	ID    string
	Name  string // con prefijo ROLE_
	Group RoleGroup
}

// DefaultRoles catálogo mínimo: un rol administrativo y el resto de negocio.
func DefaultRoles() []Role {
	return []Role{
		{Name: RoleAdministrator, Group: RoleGroupAdministrative},
		{Name: RoleAccountant, Group: RoleGroupBusiness},
		{Name: RoleUser, Group: RoleGroupBusiness},
		{Name: RoleAuditor, Group: RoleGroupBusiness},
	}
}

// CanonicalRoleName acepta "accountant", "ACCOUNTANT" o "ROLE_ACCOUNTANT" y devuelve "ROLE_ACCOUNTANT".
func CanonicalRoleName(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if !strings.HasPrefix(n, RolePrefix) {
		n = RolePrefix + n
	}
	return n
}

// ShortRoleName quita el prefijo ROLE_ ("ROLE_USER" -> "USER").
func ShortRoleName(name string) string {
	return strings.TrimPrefix(name, RolePrefix)
}
