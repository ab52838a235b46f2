package applicationController

import (
	"context"
	"math"
	"sort"
	"strconv"

	"recruiter/internal/backend"
	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/preview"
	"recruiter/internal/repositories"
)

type ApplicationController struct {
	applicationRepo repositories.ApplicationRepository
	templateRepo    repositories.TemplateRepository
	previews        *preview.Service
	log             logger.Logger
}

func New(
	applicationRepo repositories.ApplicationRepository,
	templateRepo repositories.TemplateRepository,
	previews *preview.Service,
) *ApplicationController {
	return &ApplicationController{
		applicationRepo: applicationRepo,
		templateRepo:    templateRepo,
		previews:        previews,
		log:             logger.New("ApplicationController"),
	}
}

func (ac *ApplicationController) List(ctx context.Context, params backend.Params) ([]Application, error) {
	return ac.applicationRepo.List(ctx, params)
}

// Get loads one application and fills in link previews for url-typed
// fields the backend left bare.
func (ac *ApplicationController) Get(ctx context.Context, id string) (*Application, error) {
	log := ac.log.Function("Get")

	application, err := ac.applicationRepo.GetByID(ctx, id)
	if err != nil || application == nil {
		return application, err
	}

	template, err := ac.templateRepo.GetByID(ctx, application.ApplicationTypeID)
	if err != nil {
		log.Warn("could not load template for previews", "applicationID", id, "error", err)
		return application, nil
	}

	ac.previews.Attach(ctx, application, template.FormFields)
	return application, nil
}

func (ac *ApplicationController) Submit(ctx context.Context, payload SubmissionPayload, uploads map[string]backend.Upload) (string, error) {
	return ac.applicationRepo.Submit(ctx, payload, uploads)
}

// Compare sends the selected applications to the AI comparison endpoint.
// Every ID must be numeric; otherwise the call is skipped entirely and the
// caller gets nil back, matching the silent-skip contract for malformed
// optional input.
func (ac *ApplicationController) Compare(ctx context.Context, applicationIDs []string, applicationTypeID string) (*CompareResponse, *ComparisonSummary, error) {
	log := ac.log.Function("Compare")

	typeID, err := strconv.Atoi(applicationTypeID)
	if err != nil {
		log.Debug("skipping comparison, non-numeric application type", "applicationTypeID", applicationTypeID)
		return nil, nil, nil
	}

	ids := make([]int, 0, len(applicationIDs))
	for _, raw := range applicationIDs {
		id, err := strconv.Atoi(raw)
		if err != nil {
			log.Debug("skipping comparison, non-numeric application id", "applicationID", raw)
			return nil, nil, nil
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, nil, nil
	}

	response, err := ac.applicationRepo.Compare(ctx, CompareRequest{
		ApplicationIDs:    ids,
		ApplicationTypeID: typeID,
	})
	if err != nil {
		return nil, nil, err
	}

	// highest score first; sort is stable so equal scores keep input order
	sort.SliceStable(response.Applicants, func(i, j int) bool {
		return response.Applicants[i].MatchPercentage > response.Applicants[j].MatchPercentage
	})

	return response, Summarize(response.Applicants), nil
}

// Summarize computes the display aggregate: candidate count, mean score
// rounded to two decimals, and the top candidate (first occurrence wins on
// ties).
func Summarize(applicants []Applicant) *ComparisonSummary {
	if len(applicants) == 0 {
		return &ComparisonSummary{}
	}

	sum := 0
	top := applicants[0]
	for _, applicant := range applicants {
		sum += applicant.MatchPercentage
		if applicant.MatchPercentage > top.MatchPercentage {
			top = applicant
		}
	}

	mean := float64(sum) / float64(len(applicants))

	return &ComparisonSummary{
		TotalCandidates: len(applicants),
		AverageScore:    math.Round(mean*100) / 100,
		TopCandidate:    top.PersonalInfo.FullName,
	}
}
