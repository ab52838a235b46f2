package handlers

import (
	"context"
	"errors"
	"mime/multipart"

	"recruiter/internal/app"
	"recruiter/internal/backend"
	applicationController "recruiter/internal/controllers/applications"
	publicController "recruiter/internal/controllers/public"
	"recruiter/internal/forms"
	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/notify"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler serves the hosted application form: the one surface
// candidates see without logging in.
type PublicHandler struct {
	Handler
	public       *publicController.PublicController
	applications *applicationController.ApplicationController
}

func NewPublicHandler(app app.App, router fiber.Router) *PublicHandler {
	log := logger.New("handlers").File("public_handler")
	return &PublicHandler{
		public:       app.PublicController,
		applications: app.ApplicationController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PublicHandler) Register() {
	h.router.Get("/apply/:companyName/:applicationId", h.show)
	h.router.Post("/apply/:companyName/:applicationId", h.submit)
}

func (h *PublicHandler) show(c *fiber.Ctx) error {
	page, err := h.public.Load(c.UserContext(), c.Params("companyName"), c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			Render("errors/500", fiber.Map{"Notice": notify.FromError(err)})
	}
	if page == nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{})
	}

	controls, err := forms.ResolveControls(page.Template.FormFields)
	if err != nil {
		h.log.Function("show").Er("template has unrenderable field", err, "templateID", page.Template.ID)
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{})
	}

	return c.Render("public/apply", fiber.Map{
		"Company":  page.Company,
		"Template": page.Template,
		"Controls": controls,
		"Values":   map[string]string{},
		"Errors":   map[string]string{},
	})
}

func (h *PublicHandler) submit(c *fiber.Ctx) error {
	log := h.log.Function("submit")

	page, err := h.public.Load(c.UserContext(), c.Params("companyName"), c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			Render("errors/500", fiber.Map{"Notice": notify.FromError(err)})
	}
	if page == nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{})
	}

	controls, err := forms.ResolveControls(page.Template.FormFields)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{})
	}

	form := forms.NewController(h.submitFunc())
	form.Hydrate(*page.Template, c.Params("applicationId"))

	form.SetValue("fullName", c.FormValue("fullName"))
	for _, field := range page.Template.FormFields {
		name := "customFields." + field.FieldName
		if field.FieldType == FieldTypeFile {
			if header, err := c.FormFile(name); err == nil {
				form.SetValue(name, header)
			}
			continue
		}
		form.SetValue(name, c.FormValue(name))
	}

	err = form.Submit(c.UserContext())
	if errors.Is(err, forms.ErrValidationFailed) {
		return c.Status(fiber.StatusUnprocessableEntity).Render("public/apply", fiber.Map{
			"Company":  page.Company,
			"Template": page.Template,
			"Controls": controls,
			"Values":   currentValues(form, page.Template.FormFields),
			"Errors":   form.Errors(),
		})
	}
	if err != nil {
		log.Er("submission failed", err, "templateID", page.Template.ID)
		return c.Status(fiber.StatusBadGateway).Render("public/apply", fiber.Map{
			"Company":  page.Company,
			"Template": page.Template,
			"Controls": controls,
			"Values":   currentValues(form, page.Template.FormFields),
			"Errors":   map[string]string{},
			"Notice":   notify.FromError(err),
		})
	}

	return c.Render("public/submitted", fiber.Map{
		"Company":  page.Company,
		"Template": page.Template,
	})
}

// submitFunc bridges the form controller to the backend: file headers
// captured from the multipart request become streamed uploads.
func (h *PublicHandler) submitFunc() forms.SubmitFunc {
	return func(ctx context.Context, payload SubmissionPayload, files map[string]any) error {
		uploads := make(map[string]backend.Upload, len(files))
		var open []multipart.File

		defer func() {
			for _, f := range open {
				f.Close()
			}
		}()

		for name, value := range files {
			header, ok := value.(*multipart.FileHeader)
			if !ok {
				continue
			}

			file, err := header.Open()
			if err != nil {
				return err
			}
			open = append(open, file)

			uploads[name] = backend.Upload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Reader:      file,
			}
		}

		_, err := h.applications.Submit(ctx, payload, uploads)
		return err
	}
}

func currentValues(form *forms.Controller, fields []FieldDefinition) map[string]string {
	values := map[string]string{
		"fullName": stringOf(form.Value("fullName")),
	}
	for _, field := range fields {
		if field.FieldType == FieldTypeFile {
			continue
		}
		values[field.FieldName] = stringOf(form.Value("customFields." + field.FieldName))
	}
	return values
}

func stringOf(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}
