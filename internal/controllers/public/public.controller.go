package publicController

import (
	"context"
	"strconv"

	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// PublicPage is everything the hosted application form needs: the branded
// company shell plus the template driving the form.
type PublicPage struct {
	Company  *PublicCompany
	Template *Template
}

type PublicController struct {
	companyRepo  repositories.CompanyRepository
	templateRepo repositories.TemplateRepository
	log          logger.Logger
}

func New(companyRepo repositories.CompanyRepository, templateRepo repositories.TemplateRepository) *PublicController {
	return &PublicController{
		companyRepo:  companyRepo,
		templateRepo: templateRepo,
		log:          logger.New("PublicController"),
	}
}

// Load fetches the company and template behind a public form URL in
// parallel and verifies they belong together. A mismatch or a missing
// piece yields (nil, nil): callers render the not-found page rather than
// leaking which half failed.
func (pc *PublicController) Load(ctx context.Context, companyName, applicationID string) (*PublicPage, error) {
	log := pc.log.Function("Load")

	templateID, err := strconv.Atoi(applicationID)
	if err != nil {
		log.Debug("non-numeric application id on public url", "applicationID", applicationID)
		return nil, nil
	}

	var (
		company  *PublicCompany
		template *Template
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		company, err = pc.companyRepo.GetPublicByName(groupCtx, companyName)
		return err
	})
	group.Go(func() error {
		var err error
		template, err = pc.templateRepo.GetByID(groupCtx, templateID)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, log.Err("failed to load public application page", err,
			"companyName", companyName, "applicationID", applicationID)
	}

	if company == nil || template == nil {
		return nil, nil
	}

	if template.CompanyID != company.ID {
		log.Warn("template does not belong to company",
			"companyName", companyName, "templateID", templateID)
		return nil, nil
	}

	if !template.IsActive {
		return nil, nil
	}

	return &PublicPage{Company: company, Template: template}, nil
}
