package http

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Account-api/internal/application/dto"
	"github.com/jhoicas/Account-api/internal/application/usecase"
)

// AdminHandler administración de cuentas: listado, borrado, roles y bloqueo.
type AdminHandler struct {
	uc       *usecase.AdminUseCase
	validate *validator.Validate
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(uc *usecase.AdminUseCase, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{uc: uc, validate: validate}
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/user [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

// DeleteUser godoc
// @Summary      Eliminar usuario
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        email  path  string  true  "email del usuario"
// @Success      200  {object}  dto.StatusResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/user/{email} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email inválido", Path: c.Path()})
	}
	out, err := h.uc.DeleteUser(c.UserContext(), GetEmail(c), email, c.Path())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeRole godoc
// @Summary      Conceder o retirar un rol
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RoleChangeRequest  true  "user, role, operation (GRANT|REMOVE)"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/user/role [put]
func (h *AdminHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.RoleChangeRequest
	if ok, err := bindAndValidate(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeRole(c.UserContext(), GetEmail(c), in, c.Path())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetAccess godoc
// @Summary      Bloquear o desbloquear una cuenta
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AccessRequest  true  "user, operation (LOCK|UNLOCK)"
// @Success      200  {object}  dto.StatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/user/access [put]
func (h *AdminHandler) SetAccess(c *fiber.Ctx) error {
	var in dto.AccessRequest
	if ok, err := bindAndValidate(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.uc.SetAccess(c.UserContext(), GetEmail(c), in, c.Path())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
