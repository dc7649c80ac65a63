package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Account-api/internal/application/dto"
	"github.com/jhoicas/Account-api/internal/domain"
)

// errorMapping el primer sentinel que coincide decide status y código; los
// específicos van antes que sus familias (ErrAdminRoleRemoval antes que ErrForbidden).
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrAuthenticationFailed, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrRoleNotFound, fiber.StatusNotFound, "ROLE_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrAdminRoleRemoval, fiber.StatusForbidden, "ADMIN_ROLE_PROTECTED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrRoleConflict, fiber.StatusConflict, "ROLE_CONFLICT"},
	{domain.ErrInvalidOperation, fiber.StatusBadRequest, "INVALID_OPERATION"},
	{domain.ErrInvariantViolation, fiber.StatusBadRequest, "INVARIANT_VIOLATION"},
	{domain.ErrAdminCannotBeLocked, fiber.StatusBadRequest, "ADMIN_LOCK_FORBIDDEN"},
	{domain.ErrPasswordTooShort, fiber.StatusBadRequest, "PASSWORD_TOO_SHORT"},
	{domain.ErrBreachedPassword, fiber.StatusBadRequest, "BREACHED_PASSWORD"},
	{domain.ErrPasswordReused, fiber.StatusBadRequest, "PASSWORD_REUSED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// writeError traduce errores de dominio a respuestas HTTP. Lo que no es de dominio es 500
// y su detalle sólo va al log (lo escribe el ErrorHandler de Fiber).
func writeError(c *fiber.Ctx, err error) error {
	path := domain.PathOf(err)
	if path == "" {
		path = c.Path()
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.err.Error(), Path: path})
		}
	}
	return err
}

// ErrorHandler handler de errores de Fiber: respuestas 500 sin filtrar detalles internos.
func ErrorHandler(onError func(c *fiber.Ctx, err error)) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message, Path: c.Path()})
		}
		if onError != nil {
			onError(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno", Path: c.Path()})
	}
}
