package handlers

import (
	"errors"

	"recruiter/internal/app"
	"recruiter/internal/backend"
	templateController "recruiter/internal/controllers/templates"
	"recruiter/internal/handlers/middleware"
	"recruiter/internal/logger"
	"recruiter/internal/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	router.Use(app.Middleware.Attach)

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewUserHandler(*app, api).Register()
	NewTemplateHandler(*app, api).Register()
	NewApplicationHandler(*app, api).Register()

	NewPublicHandler(*app, router).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

// respondError maps controller errors onto a JSON body carrying both the
// machine-readable error and the toast notice the dashboard shows for it.
func respondError(c *fiber.Ctx, err error) error {
	var fieldErrors templateController.FieldErrors
	if errors.As(err, &fieldErrors) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "error",
			"errors":  fieldErrors,
		})
	}

	status := fiber.StatusInternalServerError
	var requestErr *backend.RequestError
	if errors.As(err, &requestErr) && requestErr.Status >= 400 {
		status = requestErr.Status
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "error",
		"notice":  notify.FromError(err),
	})
}
