package repositories

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"recruiter/internal/backend"
	"recruiter/internal/database"
	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/resource"
)

const (
	companyEndpoint      = "company"
	COMPANY_CACHE_EXPIRY = 24 * time.Hour
)

type CompanyRepository interface {
	List(ctx context.Context) ([]Company, error)
	GetPublicByName(ctx context.Context, name string) (*PublicCompany, error)
}

type companyRepository struct {
	db     database.DB
	client *backend.Client
	cache  *resource.Cache
	log    logger.Logger
}

func NewCompany(db database.DB, client *backend.Client, cache *resource.Cache) CompanyRepository {
	return &companyRepository{
		db:     db,
		client: client,
		cache:  cache,
		log:    logger.New("companyRepository"),
	}
}

func (r *companyRepository) List(ctx context.Context) ([]Company, error) {
	log := r.log.Function("List")
	key := resource.Key(companyEndpoint, "", nil)

	data, err := r.cache.Fetch(ctx, key, resource.Options{}, func(ctx context.Context) (any, error) {
		envelope, err := r.client.Get(ctx, companyEndpoint, nil)
		if err != nil {
			return nil, log.Err("failed to fetch companies", err)
		}

		var raws []RawCompany
		if err := json.Unmarshal(envelope.Data, &raws); err != nil {
			return nil, log.Err("failed to decode companies", err)
		}

		return SerializeCompanies(raws), nil
	})
	if err != nil {
		return nil, err
	}

	companies, _ := data.([]Company)
	return companies, nil
}

// GetPublicByName resolves a company through the unauthenticated public
// endpoint; the public form page depends on it.
func (r *companyRepository) GetPublicByName(ctx context.Context, name string) (*PublicCompany, error) {
	log := r.log.Function("GetPublicByName")
	key := resource.Key(companyEndpoint, "public/"+name, nil)

	data, err := r.cache.Fetch(ctx, key, resource.Options{MaxAge: COMPANY_CACHE_EXPIRY}, func(ctx context.Context) (any, error) {
		if !resource.Revalidating(ctx) {
			var cached PublicCompany
			if found, err := database.NewCacheBuilder(r.db.Cache.Resource, key).WithContext(ctx).Get(&cached); err == nil && found {
				return &cached, nil
			}
		}

		envelope, err := r.client.Get(ctx, companyEndpoint+"/public/"+url.PathEscape(name), nil)
		if err != nil {
			return nil, log.Err("failed to fetch public company", err, "company", name)
		}

		var raw RawCompany
		if err := json.Unmarshal(envelope.Data, &raw); err != nil {
			return nil, log.Err("failed to decode public company", err, "company", name)
		}

		company := SerializePublicCompany(raw)
		if err := database.NewCacheBuilder(r.db.Cache.Resource, key).
			WithStruct(&company).
			WithTTL(COMPANY_CACHE_EXPIRY).
			WithContext(ctx).
			Set(); err != nil {
			log.Warn("failed to snapshot public company", "company", name, "error", err)
		}

		return &company, nil
	})
	if err != nil {
		return nil, err
	}

	company, ok := data.(*PublicCompany)
	if !ok {
		return nil, nil
	}
	return company, nil
}
