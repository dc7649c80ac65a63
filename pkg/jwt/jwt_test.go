package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Account-api/pkg/jwt"
)

func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "id-1", "ana@acme.com", []string{"ROLE_USER", "ROLE_AUDITOR"}, "account-api", 5)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "id-1", claims.UserID)
	assert.Equal(t, "id-1", claims.Subject)
	assert.Equal(t, "ana@acme.com", claims.Email)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_AUDITOR"}, claims.Roles)
	assert.Equal(t, "account-api", claims.Issuer)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "id", "a@acme.com", nil, "iss", 5)
	assert.Error(t, err)
}

func TestParse_Rechazos(t *testing.T) {
	valid, err := pkgjwt.Generate("secreto", "id", "a@acme.com", nil, "iss", 5)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate("secreto", "id", "a@acme.com", nil, "iss", -1)
	require.NoError(t, err)

	cases := map[string]struct{ secret, token string }{
		"firma con otro secret": {"otro", valid},
		"token expirado":        {"secreto", expired},
		"token basura":          {"secreto", "no.es.jwt"},
		"secret vacío":          {"", valid},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pkgjwt.Parse(tc.secret, tc.token)
			assert.Error(t, err)
		})
	}
}
