// Package authz matriz endpoint × rol evaluada con Casbin.
package authz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/jhoicas/Account-api/internal/domain/entity"
)

//go:embed model.conf
var modelContent string

// defaultRules (rol, ruta, método). Las rutas se comparan sin barra final.
var defaultRules = [][]string{
	{entity.RoleUser, "/api/auth/changepass", "POST"},
	{entity.RoleAccountant, "/api/auth/changepass", "POST"},
	{entity.RoleAdministrator, "/api/auth/changepass", "POST"},

	{entity.RoleAdministrator, "/api/admin/user", "GET"},
	{entity.RoleAdministrator, "/api/admin/user/:email", "DELETE"},
	{entity.RoleAdministrator, "/api/admin/user/role", "PUT"},
	{entity.RoleAdministrator, "/api/admin/user/access", "PUT"},

	{entity.RoleAuditor, "/api/security/events", "GET"},
	{entity.RoleAuditor, "/api/security/events/pdf", "GET"},
}

// Policy enforcer en memoria con la matriz por defecto.
type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

// NewPolicy carga el modelo embebido y la matriz de permisos.
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(modelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(defaultRules); err != nil {
		return nil, fmt.Errorf("load casbin policies: %w", err)
	}
	return &Policy{enforcer: enforcer}, nil
}

// Allowed true si alguno de los roles puede ejecutar method sobre path.
func (p *Policy) Allowed(roles []string, path, method string) (bool, error) {
	obj := trimSlash(path)
	act := strings.ToUpper(method)
	for _, role := range roles {
		ok, err := p.enforcer.Enforce(entity.CanonicalRoleName(role), obj, act)
		if err != nil {
			return false, fmt.Errorf("casbin enforce: %w", err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func trimSlash(path string) string {
	if len(path) > 1 {
		return strings.TrimRight(path, "/")
	}
	return path
}
