package handlers

import (
	"bytes"
	"fmt"
	"strconv"

	"recruiter/internal/app"
	"recruiter/internal/backend"
	applicationController "recruiter/internal/controllers/applications"
	"recruiter/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	Handler
	controller *applicationController.ApplicationController
}

func NewApplicationHandler(app app.App, router fiber.Router) *ApplicationHandler {
	log := logger.New("handlers").File("application_handler")
	return &ApplicationHandler{
		controller: app.ApplicationController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ApplicationHandler) Register() {
	applications := h.router.Group("/applications", h.middleware.RequireAuth)
	applications.Get("/", h.list)
	applications.Get("/export", h.export)
	applications.Get("/:id", h.get)
	applications.Post("/compare", h.compare)
}

func (h *ApplicationHandler) list(c *fiber.Ctx) error {
	params := backend.Params{}
	if companyID := c.Query("companyId"); companyID != "" {
		params["companyId"] = companyID
	}
	if typeID := c.Query("applicationTypeId"); typeID != "" {
		params["applicationTypeId"] = typeID
	}

	applications, err := h.controller.List(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "applications": applications})
}

func (h *ApplicationHandler) get(c *fiber.Ctx) error {
	application, err := h.controller.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "application": application})
}

func (h *ApplicationHandler) export(c *fiber.Ctx) error {
	typeID, err := strconv.Atoi(c.Query("applicationTypeId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "applicationTypeId is required"})
	}

	var buf bytes.Buffer
	if err := h.controller.ExportCSV(c.UserContext(), typeID, &buf); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=applications-%d.csv", typeID))
	return c.Send(buf.Bytes())
}

func (h *ApplicationHandler) compare(c *fiber.Ctx) error {
	log := h.log.Function("compare")

	var req struct {
		ApplicationIDs    []string `json:"applicationIds"`
		ApplicationTypeID string   `json:"applicationTypeId"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse compare request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse request"})
	}

	response, summary, err := h.controller.Compare(c.UserContext(), req.ApplicationIDs, req.ApplicationTypeID)
	if err != nil {
		return respondError(c, err)
	}

	// malformed ids are skipped quietly; the dashboard shows nothing
	if response == nil {
		return c.JSON(fiber.Map{"message": "success"})
	}

	return c.JSON(fiber.Map{
		"message":    "success",
		"applicants": response.Applicants,
		"summary":    summary,
	})
}
