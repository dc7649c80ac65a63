package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/infrastructure/authz"
)

func TestPolicy_Matriz(t *testing.T) {
	p, err := authz.NewPolicy()
	require.NoError(t, err)

	cases := []struct {
		name   string
		roles  []string
		path   string
		method string
		want   bool
	}{
		{"usuario cambia contraseña", []string{entity.RoleUser}, "/api/auth/changepass", "POST", true},
		{"auditor no cambia contraseña", []string{entity.RoleAuditor}, "/api/auth/changepass", "POST", false},
		{"admin lista usuarios con barra final", []string{entity.RoleAdministrator}, "/api/admin/user/", "GET", true},
		{"admin borra usuario", []string{entity.RoleAdministrator}, "/api/admin/user/user@acme.com", "DELETE", true},
		{"contable no borra usuario", []string{entity.RoleAccountant}, "/api/admin/user/user@acme.com", "DELETE", false},
		{"admin cambia roles", []string{"ADMINISTRATOR"}, "/api/admin/user/role", "PUT", true},
		{"auditor lee eventos", []string{entity.RoleUser, entity.RoleAuditor}, "/api/security/events/", "GET", true},
		{"auditor exporta pdf", []string{entity.RoleAuditor}, "/api/security/events/pdf", "GET", true},
		{"admin no lee eventos", []string{entity.RoleAdministrator}, "/api/security/events", "GET", false},
		{"método no permitido", []string{entity.RoleAdministrator}, "/api/admin/user/role", "PATCH", false},
		{"DELETE sobre /role es borrar el usuario \"role\"", []string{entity.RoleAdministrator}, "/api/admin/user/role", "DELETE", true},
		{"sin roles", nil, "/api/admin/user", "GET", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := p.Allowed(tc.roles, tc.path, tc.method)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}
