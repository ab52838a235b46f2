package repositories

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"recruiter/internal/backend"
	"recruiter/internal/database"
	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/resource"
)

const (
	applicationEndpoint      = "application"
	APPLICATION_CACHE_EXPIRY = 6 * time.Hour
)

type ApplicationRepository interface {
	List(ctx context.Context, params backend.Params) ([]Application, error)
	GetByID(ctx context.Context, id string) (*Application, error)
	Submit(ctx context.Context, payload SubmissionPayload, uploads map[string]backend.Upload) (string, error)
	Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error)
	InvalidateList()
}

type applicationRepository struct {
	db     database.DB
	client *backend.Client
	cache  *resource.Cache
	log    logger.Logger
}

func NewApplication(db database.DB, client *backend.Client, cache *resource.Cache) ApplicationRepository {
	return &applicationRepository{
		db:     db,
		client: client,
		cache:  cache,
		log:    logger.New("applicationRepository"),
	}
}

func (r *applicationRepository) List(ctx context.Context, params backend.Params) ([]Application, error) {
	key := resource.Key(applicationEndpoint, "", params)

	data, err := r.cache.Fetch(ctx, key, resource.Options{}, func(ctx context.Context) (any, error) {
		return r.fetchList(ctx, key, params)
	})
	if err != nil {
		return nil, err
	}

	applications, _ := data.([]Application)
	return applications, nil
}

func (r *applicationRepository) fetchList(ctx context.Context, key string, params backend.Params) ([]Application, error) {
	log := r.log.Function("fetchList")

	if !resource.Revalidating(ctx) {
		var cached []Application
		if found, err := database.NewCacheBuilder(r.db.Cache.Resource, key).WithContext(ctx).Get(&cached); err == nil && found {
			return cached, nil
		}
	}

	envelope, err := r.client.Get(ctx, applicationEndpoint, params)
	if err != nil {
		return nil, log.Err("failed to fetch applications", err)
	}

	var raws []RawApplication
	if err := json.Unmarshal(envelope.Data, &raws); err != nil {
		return nil, log.Err("failed to decode applications", err)
	}

	applications := SerializeApplications(raws)
	if err := database.NewCacheBuilder(r.db.Cache.Resource, key).
		WithStruct(applications).
		WithTTL(APPLICATION_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to snapshot application list", "error", err)
	}

	return applications, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*Application, error) {
	log := r.log.Function("GetByID")
	key := resource.Key(applicationEndpoint, id, nil)

	data, err := r.cache.Fetch(ctx, key, resource.Options{}, func(ctx context.Context) (any, error) {
		envelope, err := r.client.Get(ctx, applicationEndpoint+"/"+id, nil)
		if err != nil {
			return nil, log.Err("failed to fetch application", err, "applicationID", id)
		}

		var raw RawApplication
		if err := json.Unmarshal(envelope.Data, &raw); err != nil {
			return nil, log.Err("failed to decode application", err, "applicationID", id)
		}

		application := SerializeApplication(raw)
		return &application, nil
	})
	if err != nil {
		return nil, err
	}

	application, ok := data.(*Application)
	if !ok {
		return nil, nil
	}
	return application, nil
}

// Submit posts a validated application. The returned string is the
// backend's confirmation message.
func (r *applicationRepository) Submit(ctx context.Context, payload SubmissionPayload, uploads map[string]backend.Upload) (string, error) {
	log := r.log.Function("Submit")

	customFields, err := json.Marshal(payload.CustomFields)
	if err != nil {
		return "", log.Err("failed to encode custom fields", err)
	}

	fields := map[string]string{
		"fullName":          payload.FullName,
		"companyId":         strconv.Itoa(payload.CompanyID),
		"applicationTypeId": strconv.Itoa(payload.ApplicationTypeID),
		"customFields":      string(customFields),
	}

	envelope, err := r.client.PostMultipart(ctx, applicationEndpoint, fields, uploads)
	if err != nil {
		return "", log.Err("failed to submit application", err, "applicationTypeID", payload.ApplicationTypeID)
	}

	r.InvalidateList()

	var message string
	if err := json.Unmarshal(envelope.Data, &message); err != nil || message == "" {
		message = envelope.Meta.Message
	}
	return message, nil
}

// Compare calls the backend's AI comparison endpoint. The caller is
// responsible for the numeric-ID gate; this always issues the request.
func (r *applicationRepository) Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error) {
	log := r.log.Function("Compare")

	envelope, err := r.client.Post(ctx, applicationEndpoint+"/compare", req, nil)
	if err != nil {
		return nil, log.Err("failed to compare applications", err, "applicationTypeID", req.ApplicationTypeID)
	}

	var response CompareResponse
	if err := json.Unmarshal(envelope.Data, &response); err != nil {
		return nil, log.Err("failed to decode comparison", err)
	}

	return &response, nil
}

// InvalidateList stales every application list variant, filtered ones
// included, so a new submission shows up on the next fetch of any of them.
// The snapshot sweep escapes the "?" so the pattern cannot glob into the
// application-type keys.
func (r *applicationRepository) InvalidateList() {
	log := r.log.Function("InvalidateList")
	ctx := context.Background()

	r.cache.InvalidateEndpoint(applicationEndpoint)

	if err := database.NewCacheBuilder(r.db.Cache.Resource, applicationEndpoint).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to drop application snapshot", "error", err)
	}
	if err := database.DeleteMatching(ctx, r.db.Cache.Resource, applicationEndpoint+`\?*`); err != nil {
		log.Warn("failed to drop filtered application snapshots", "error", err)
	}
}
