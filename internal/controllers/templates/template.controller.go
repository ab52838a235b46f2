package templateController

import (
	"context"
	"fmt"
	"strings"

	"recruiter/internal/forms"
	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/repositories"
)

// FieldErrors carries per-field validation messages back to the editor.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for path, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", path, msg))
	}
	return "invalid template: " + strings.Join(parts, "; ")
}

type TemplateController struct {
	templateRepo repositories.TemplateRepository
	log          logger.Logger
}

func New(templateRepo repositories.TemplateRepository) *TemplateController {
	return &TemplateController{
		templateRepo: templateRepo,
		log:          logger.New("TemplateController"),
	}
}

func (tc *TemplateController) List(ctx context.Context) ([]Template, error) {
	return tc.templateRepo.List(ctx)
}

func (tc *TemplateController) Get(ctx context.Context, id int) (*Template, error) {
	return tc.templateRepo.GetByID(ctx, id)
}

// Create validates the field list (identifier syntax, closed types, label,
// fieldName uniqueness), saves, and inserts the new template into the
// cached list so every list consumer sees it without a refetch.
func (tc *TemplateController) Create(ctx context.Context, req CreateTemplateRequest) (*Template, error) {
	log := tc.log.Function("Create")

	if req.Name == "" {
		return nil, FieldErrors{"name": "Template name cannot be empty"}
	}
	if errs := forms.ValidateDefinitions(req.FormFields); len(errs) > 0 {
		log.Debug("rejected template create", "errorCount", len(errs))
		return nil, FieldErrors(errs)
	}

	template, err := tc.templateRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	tc.templateRepo.MutateList(func(current []Template) []Template {
		return append(current, *template)
	})

	return template, nil
}

func (tc *TemplateController) Update(ctx context.Context, id int, req CreateTemplateRequest) (*Template, error) {
	if errs := forms.ValidateDefinitions(req.FormFields); len(errs) > 0 {
		return nil, FieldErrors(errs)
	}

	updates := map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"isActive":    req.IsActive,
		"formFields":  req.FormFields,
	}

	template, err := tc.templateRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	tc.templateRepo.MutateList(func(current []Template) []Template {
		for i := range current {
			if current[i].ID == id {
				current[i] = *template
			}
		}
		return current
	})

	return template, nil
}

// ToggleStatus flips isActive optimistically: the cached list changes
// before the PATCH goes out, and is explicitly reverted if the server
// refuses.
func (tc *TemplateController) ToggleStatus(ctx context.Context, id int, isActive bool) (*Template, error) {
	log := tc.log.Function("ToggleStatus")

	var previous *bool
	tc.templateRepo.MutateList(func(current []Template) []Template {
		for i := range current {
			if current[i].ID == id {
				was := current[i].IsActive
				previous = &was
				current[i].IsActive = isActive
			}
		}
		return current
	})

	template, err := tc.templateRepo.Patch(ctx, id, map[string]any{"isActive": isActive})
	if err != nil {
		if previous != nil {
			tc.templateRepo.MutateList(func(current []Template) []Template {
				for i := range current {
					if current[i].ID == id {
						current[i].IsActive = *previous
					}
				}
				return current
			})
		}
		return nil, log.Err("failed to toggle template status", err, "templateID", id, "isActive", isActive)
	}

	return template, nil
}

// Delete removes the template from the cached list first, then confirms
// with the server, restoring the entry if the delete fails.
func (tc *TemplateController) Delete(ctx context.Context, id int) error {
	log := tc.log.Function("Delete")

	var removed *Template
	var removedAt int
	tc.templateRepo.MutateList(func(current []Template) []Template {
		kept := current[:0]
		for i := range current {
			if current[i].ID == id {
				copied := current[i]
				removed = &copied
				removedAt = i
				continue
			}
			kept = append(kept, current[i])
		}
		return kept
	})

	if err := tc.templateRepo.Delete(ctx, id); err != nil {
		if removed != nil {
			tc.templateRepo.MutateList(func(current []Template) []Template {
				at := removedAt
				if at > len(current) {
					at = len(current)
				}
				restored := append(current[:at:at], *removed)
				return append(restored, current[at:]...)
			})
		}
		return log.Err("failed to delete template", err, "templateID", id)
	}

	return nil
}
