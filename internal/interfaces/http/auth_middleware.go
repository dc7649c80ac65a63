package http

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Account-api/internal/application/dto"
	"github.com/jhoicas/Account-api/internal/application/security"
	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/pkg/jwt"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalEmail = "email"
	LocalRoles = "roles"
)

// CredentialVerifier lo implementa *security.AuthenticationGateway.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, credential, path string) (*security.Principal, error)
	Resolve(ctx context.Context, email string) (*security.Principal, error)
}

// AuthMiddleware acepta Bearer JWT o HTTP Basic. Las credenciales Basic pasan por
// el verificador con la ruta de la petición, así los fallos quedan auditados y
// cuentan para el bloqueo. Con Bearer la cuenta se recarga en cada petición:
// el token sólo prueba la identidad, estado y roles salen de la fila actual.
func AuthMiddleware(jwtSecret string, verifier CredentialVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido", Path: c.Path()})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token> o Basic <credenciales>", Path: c.Path()})
		}
		credentials := strings.TrimSpace(parts[1])

		switch {
		case strings.EqualFold(parts[0], "Bearer"):
			claims, err := jwt.Parse(jwtSecret, credentials)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado", Path: c.Path()})
			}
			p, err := verifier.Resolve(c.UserContext(), claims.Email)
			if err != nil {
				return authFailure(c, err)
			}
			setIdentity(c, p)
		case strings.EqualFold(parts[0], "Basic"):
			email, password, ok := parseBasic(credentials)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "credenciales Basic malformadas", Path: c.Path()})
			}
			p, err := verifier.Verify(c.UserContext(), email, password, c.Path())
			if err != nil {
				return authFailure(c, err)
			}
			setIdentity(c, p)
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "esquema de autorización no soportado", Path: c.Path()})
		}
		return c.Next()
	}
}

func parseBasic(encoded string) (email, password string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	email, password, ok = strings.Cut(string(raw), ":")
	return email, password, ok && email != ""
}

// authFailure 401 uniforme para credenciales rechazadas; el resto es error de infraestructura.
func authFailure(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrAuthenticationFailed) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: domain.ErrAuthenticationFailed.Error(), Path: c.Path()})
	}
	return writeError(c, err)
}

func setIdentity(c *fiber.Ctx, p *security.Principal) {
	c.Locals(LocalEmail, p.Email)
	c.Locals(LocalRoles, p.Roles)
}

// GetEmail devuelve el email autenticado; vacío en rutas públicas.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRoles devuelve los roles del usuario autenticado.
func GetRoles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalRoles).([]string)
	return roles
}
