package handlers

import (
	"recruiter/internal/app"
	templateController "recruiter/internal/controllers/templates"
	"recruiter/internal/logger"
	. "recruiter/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TemplateHandler struct {
	Handler
	controller *templateController.TemplateController
}

func NewTemplateHandler(app app.App, router fiber.Router) *TemplateHandler {
	log := logger.New("handlers").File("template_handler")
	return &TemplateHandler{
		controller: app.TemplateController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *TemplateHandler) Register() {
	templates := h.router.Group("/application-types", h.middleware.RequireAuth)
	templates.Get("/", h.list)
	templates.Get("/:id", h.get)
	templates.Post("/", h.create)
	templates.Put("/:id", h.update)
	templates.Patch("/:id/status", h.toggleStatus)
	templates.Delete("/:id", h.delete)
}

func (h *TemplateHandler) list(c *fiber.Ctx) error {
	templates, err := h.controller.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "applicationTypes": templates})
}

func (h *TemplateHandler) get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid application type id"})
	}

	template, err := h.controller.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "applicationType": template})
}

func (h *TemplateHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var req CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse create template request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse request"})
	}

	template, err := h.controller.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "applicationType": template})
}

func (h *TemplateHandler) update(c *fiber.Ctx) error {
	log := h.log.Function("update")

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid application type id"})
	}

	var req CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse update template request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse request"})
	}

	template, err := h.controller.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "applicationType": template})
}

func (h *TemplateHandler) toggleStatus(c *fiber.Ctx) error {
	log := h.log.Function("toggleStatus")

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid application type id"})
	}

	var body struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.BodyParser(&body); err != nil {
		log.Er("failed to parse status request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse request"})
	}

	template, err := h.controller.ToggleStatus(c.UserContext(), id, body.IsActive)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "applicationType": template})
}

func (h *TemplateHandler) delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid application type id"})
	}

	if err := h.controller.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
