package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Account-api/internal/application/dto"
	"github.com/jhoicas/Account-api/pkg/normalize"
)

// corporateDomain dominio obligatorio de los emails de cuenta.
const corporateDomain = "@acme.com"

// NewValidator validador de DTOs con las reglas propias registradas.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// El registro sólo falla con tags vacíos o funciones nil.
	_ = v.RegisterValidation("acme_email", validateCorporateEmail)
	return v
}

// validateCorporateEmail exige el dominio corporativo sin distinguir mayúsculas.
func validateCorporateEmail(fl validator.FieldLevel) bool {
	email := normalize.Email(fl.Field().String())
	local, ok := strings.CutSuffix(email, corporateDomain)
	return ok && local != ""
}

// bindAndValidate parsea el body en dst y lo valida; si falla escribe la respuesta 400
// y devuelve false.
func bindAndValidate(c *fiber.Ctx, v *validator.Validate, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido", Path: c.Path()})
	}
	if err := v.Struct(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err), Path: c.Path()})
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" es requerido")
		case "min":
			msgs = append(msgs, field+" debe tener al menos "+fe.Param()+" caracteres")
		case "email":
			msgs = append(msgs, field+" no es un email válido")
		case "acme_email":
			msgs = append(msgs, field+" debe pertenecer a "+corporateDomain)
		case "oneof":
			msgs = append(msgs, field+" debe ser uno de: "+fe.Param())
		default:
			msgs = append(msgs, field+" inválido ("+fe.Tag()+")")
		}
	}
	return strings.Join(msgs, "; ")
}
