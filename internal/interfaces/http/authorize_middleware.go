package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Account-api/internal/application/dto"
	"github.com/jhoicas/Account-api/pkg/logger"
)

// Authorizer decide si alguno de los roles puede ejecutar method sobre path.
type Authorizer interface {
	Allowed(roles []string, path, method string) (bool, error)
}

// AccessDeniedRecorder registra ACCESS_DENIED; lo implementa *usecase.SecurityEventUseCase.
type AccessDeniedRecorder interface {
	RecordAccessDenied(ctx context.Context, actor, path string) error
}

// Authorize aplica la matriz de permisos. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 Forbidden → ningún rol del usuario tiene permiso; se registra ACCESS_DENIED.
//   - 500 → fallo evaluando la política o registrando el evento.
func Authorize(authz Authorizer, recorder AccessDeniedRecorder, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := authz.Allowed(GetRoles(c), c.Path(), c.Method())
		if err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("evaluar política de acceso")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno", Path: c.Path()})
		}
		if allowed {
			return c.Next()
		}
		if err := recorder.RecordAccessDenied(c.UserContext(), GetEmail(c), c.Path()); err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("registrar acceso denegado")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno", Path: c.Path()})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Access Denied!", Path: c.Path()})
	}
}
