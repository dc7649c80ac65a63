package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// NewConfig configuración de Fiber para la API. onError recibe los errores no controlados.
//
// Immutable es obligatorio: c.Path() y c.Params() terminan en eventos de auditoría
// que viven más que la petición, y sin copia apuntan a buffers que Fiber reutiliza.
func NewConfig(appName string, onError func(c *fiber.Ctx, err error)) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(onError),
	}
}
