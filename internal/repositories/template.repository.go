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
	templateEndpoint      = "application-type"
	TEMPLATE_CACHE_EXPIRY = 24 * time.Hour
)

type TemplateRepository interface {
	List(ctx context.Context) ([]Template, error)
	GetByID(ctx context.Context, id int) (*Template, error)
	Create(ctx context.Context, req CreateTemplateRequest) (*Template, error)
	Update(ctx context.Context, id int, updates map[string]any) (*Template, error)
	Patch(ctx context.Context, id int, updates map[string]any) (*Template, error)
	Delete(ctx context.Context, id int) error

	// ListKey exposes the list cache key so callers can subscribe to it,
	// and MutateList applies an optimistic in-place rewrite of the cached
	// list. InvalidateList forces the next List to revalidate.
	ListKey() string
	MutateList(transform func([]Template) []Template)
	InvalidateList()
}

type templateRepository struct {
	db      database.DB
	client  *backend.Client
	cache   *resource.Cache
	log     logger.Logger
}

func NewTemplate(db database.DB, client *backend.Client, cache *resource.Cache) TemplateRepository {
	return &templateRepository{
		db:      db,
		client:  client,
		cache:   cache,
		log:     logger.New("templateRepository"),
	}
}

func (r *templateRepository) ListKey() string {
	return resource.Key(templateEndpoint, "", nil)
}

func (r *templateRepository) List(ctx context.Context) ([]Template, error) {
	data, err := r.cache.Fetch(ctx, r.ListKey(), resource.Options{}, func(ctx context.Context) (any, error) {
		return r.fetchList(ctx)
	})
	if err != nil {
		return nil, err
	}

	templates, _ := data.([]Template)
	return templates, nil
}

func (r *templateRepository) fetchList(ctx context.Context) ([]Template, error) {
	log := r.log.Function("fetchList")

	var cached []Template
	if found, err := r.getCacheSnapshot(ctx, r.ListKey(), &cached); err == nil && found {
		return cached, nil
	}

	envelope, err := r.client.Get(ctx, templateEndpoint, nil)
	if err != nil {
		return nil, log.Err("failed to fetch templates", err)
	}

	var raws []RawTemplate
	if err := json.Unmarshal(envelope.Data, &raws); err != nil {
		return nil, log.Err("failed to decode templates", err)
	}

	templates := SerializeTemplates(raws)
	if err := r.setCacheSnapshot(ctx, r.ListKey(), templates); err != nil {
		log.Warn("failed to snapshot template list", "error", err)
	}

	return templates, nil
}

func (r *templateRepository) GetByID(ctx context.Context, id int) (*Template, error) {
	key := resource.Key(templateEndpoint, strconv.Itoa(id), nil)

	data, err := r.cache.Fetch(ctx, key, resource.Options{}, func(ctx context.Context) (any, error) {
		return r.fetchOne(ctx, id, key)
	})
	if err != nil {
		return nil, err
	}

	template, ok := data.(*Template)
	if !ok {
		return nil, nil
	}
	return template, nil
}

func (r *templateRepository) fetchOne(ctx context.Context, id int, key string) (*Template, error) {
	log := r.log.Function("fetchOne")

	var cached Template
	if found, err := r.getCacheSnapshot(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	envelope, err := r.client.Get(ctx, templateEndpoint+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, log.Err("failed to fetch template", err, "templateID", id)
	}

	template, err := decodeTemplate(envelope)
	if err != nil {
		return nil, log.Err("failed to decode template", err, "templateID", id)
	}

	if err := r.setCacheSnapshot(ctx, key, template); err != nil {
		log.Warn("failed to snapshot template", "templateID", id, "error", err)
	}

	return template, nil
}

func (r *templateRepository) Create(ctx context.Context, req CreateTemplateRequest) (*Template, error) {
	log := r.log.Function("Create")

	envelope, err := r.client.Post(ctx, templateEndpoint, req, nil)
	if err != nil {
		return nil, log.Err("failed to create template", err, "name", req.Name)
	}

	template, err := decodeTemplate(envelope)
	if err != nil {
		return nil, log.Err("failed to decode created template", err)
	}

	return template, nil
}

func (r *templateRepository) Update(ctx context.Context, id int, updates map[string]any) (*Template, error) {
	log := r.log.Function("Update")

	envelope, err := r.client.Put(ctx, templateEndpoint+"/"+strconv.Itoa(id), updates, nil)
	if err != nil {
		return nil, log.Err("failed to update template", err, "templateID", id)
	}

	template, err := decodeTemplate(envelope)
	if err != nil {
		return nil, log.Err("failed to decode updated template", err, "templateID", id)
	}

	return template, nil
}

// Patch applies a partial update, which the status-toggle flow uses for the
// isActive flag.
func (r *templateRepository) Patch(ctx context.Context, id int, updates map[string]any) (*Template, error) {
	log := r.log.Function("Patch")

	envelope, err := r.client.Patch(ctx, templateEndpoint+"/"+strconv.Itoa(id), updates, nil)
	if err != nil {
		return nil, log.Err("failed to patch template", err, "templateID", id)
	}

	template, err := decodeTemplate(envelope)
	if err != nil {
		return nil, log.Err("failed to decode patched template", err, "templateID", id)
	}

	return template, nil
}

func (r *templateRepository) Delete(ctx context.Context, id int) error {
	log := r.log.Function("Delete")

	if _, err := r.client.Delete(ctx, templateEndpoint+"/"+strconv.Itoa(id), nil); err != nil {
		return log.Err("failed to delete template", err, "templateID", id)
	}

	key := resource.Key(templateEndpoint, strconv.Itoa(id), nil)
	r.cache.Forget(key)
	if err := database.NewCacheBuilder(r.db.Cache.Resource, key).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to drop template snapshot", "templateID", id, "error", err)
	}

	return nil
}

func (r *templateRepository) MutateList(transform func([]Template) []Template) {
	r.cache.Mutate(r.ListKey(), func(current any) any {
		list, _ := current.([]Template)
		updated := transform(list)

		if err := r.setCacheSnapshot(context.Background(), r.ListKey(), updated); err != nil {
			r.log.Function("MutateList").Warn("failed to snapshot mutated list", "error", err)
		}
		return updated
	})
}

func (r *templateRepository) InvalidateList() {
	r.cache.Invalidate(r.ListKey())
	if err := database.NewCacheBuilder(r.db.Cache.Resource, r.ListKey()).Delete(); err != nil {
		r.log.Function("InvalidateList").Warn("failed to drop list snapshot", "error", err)
	}
}

// getCacheSnapshot reads the warm-start snapshot, except during a background
// revalidation, where serving the snapshot would keep the refresh from ever
// reaching the backend.
func (r *templateRepository) getCacheSnapshot(ctx context.Context, key string, dest any) (bool, error) {
	if resource.Revalidating(ctx) {
		return false, nil
	}
	return database.NewCacheBuilder(r.db.Cache.Resource, key).WithContext(ctx).Get(dest)
}

func (r *templateRepository) setCacheSnapshot(ctx context.Context, key string, value any) error {
	return database.NewCacheBuilder(r.db.Cache.Resource, key).
		WithStruct(value).
		WithTTL(TEMPLATE_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func decodeTemplate(envelope *backend.Envelope) (*Template, error) {
	var raw RawTemplate
	if err := json.Unmarshal(envelope.Data, &raw); err != nil {
		return nil, err
	}
	template := SerializeTemplate(raw)
	return &template, nil
}
