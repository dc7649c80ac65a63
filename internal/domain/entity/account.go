package entity

import (
	"sort"
	"time"
)

// Account representa una cuenta de usuario. El email es la clave única (siempre en minúsculas).
type Account struct {
	ID             string
	Name           string
	Lastname       string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Locked         bool
	FailedAttempts int
	LockTime       *time.Time // nil = nunca bloqueada o desbloqueada
	Roles          []Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasRole informa si la cuenta tiene el rol (por nombre).
func (a *Account) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// IsAdministrator informa si la cuenta tiene el rol ROLE_ADMINISTRATOR.
func (a *Account) IsAdministrator() bool {
	return a.HasRole(RoleAdministrator)
}

// InGroup informa si alguno de los roles pertenece al grupo.
func (a *Account) InGroup(g RoleGroup) bool {
	for _, r := range a.Roles {
		if r.Group == g {
			return true
		}
	}
	return false
}

// RoleNames devuelve los nombres de rol ordenados sin tener en cuenta el prefijo ROLE_.
func (a *Account) RoleNames() []string {
	names := make([]string, 0, len(a.Roles))
	for _, r := range a.Roles {
		names = append(names, r.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		return ShortRoleName(names[i]) < ShortRoleName(names[j])
	})
	return names
}

// Clone copia profunda (roles y LockTime incluidos).
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.Roles = append([]Role(nil), a.Roles...)
	if a.LockTime != nil {
		t := *a.LockTime
		c.LockTime = &t
	}
	return &c
}
