package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Account-api/internal/application/auth"
	"github.com/jhoicas/Account-api/internal/application/dto"
)

// AuthHandler maneja registro, login y cambio de contraseña.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	validate *validator.Validate
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{uc: uc, validate: validate}
}

// SignUp godoc
// @Summary      Registrar usuario
// @Description  El primer usuario registrado recibe ADMINISTRATOR; el resto USER.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "name, lastname, email (@acme.com), password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if ok, err := bindAndValidate(c, h.validate, &in); !ok {
		return err
	}
	user, err := h.uc.SignUp(c.UserContext(), GetEmail(c), in, c.Path())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bindAndValidate(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in, c.Path())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña del usuario autenticado
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     BasicAuth
// @Param        body  body  dto.ChangePasswordRequest  true  "new_password"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/changepass [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if ok, err := bindAndValidate(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.uc.ChangePassword(c.UserContext(), GetEmail(c), in, c.Path())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
