package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Account-api/internal/application/auth"
	"github.com/jhoicas/Account-api/internal/application/usecase"
	"github.com/jhoicas/Account-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	AdminUC   *usecase.AdminUseCase
	EventsUC  *usecase.SecurityEventUseCase
	Verifier  CredentialVerifier
	Policy    Authorizer
	Validator *validator.Validate
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	validate := deps.Validator
	if validate == nil {
		validate = NewValidator()
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	authn := AuthMiddleware(deps.JWTSecret, deps.Verifier)
	authz := Authorize(deps.Policy, deps.EventsUC, log.Component("authz"))

	api := app.Group("/api")

	// Auth: signup y login públicos; changepass requiere identidad
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, validate)
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/changepass", authn, authz, authHandler.ChangePassword)

	// Administración (ADMINISTRATOR)
	admin := api.Group("/admin", authn, authz)
	adminHandler := NewAdminHandler(deps.AdminUC, validate)
	admin.Get("/user", adminHandler.ListUsers)
	admin.Put("/user/role", adminHandler.ChangeRole)
	admin.Put("/user/access", adminHandler.SetAccess)
	admin.Delete("/user/:email", adminHandler.DeleteUser)

	// Eventos de seguridad (AUDITOR)
	sec := api.Group("/security", authn, authz)
	securityHandler := NewSecurityHandler(deps.EventsUC)
	sec.Get("/events", securityHandler.ListEvents)
	sec.Get("/events/pdf", securityHandler.ExportPDF)
}
