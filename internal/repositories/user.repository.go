package repositories

import (
	"context"
	"encoding/json"

	"recruiter/internal/backend"
	"recruiter/internal/database"
	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/resource"
)

const userEndpoint = "users"

type UserRepository interface {
	// Login exchanges credentials for a backend bearer token.
	Login(ctx context.Context, req LoginRequest) (string, error)
	Me(ctx context.Context) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	InvalidateList()
}

type userRepository struct {
	db     database.DB
	client *backend.Client
	cache  *resource.Cache
	log    logger.Logger
}

func New(db database.DB, client *backend.Client, cache *resource.Cache) UserRepository {
	return &userRepository{
		db:     db,
		client: client,
		cache:  cache,
		log:    logger.New("userRepository"),
	}
}

func (r *userRepository) Login(ctx context.Context, req LoginRequest) (string, error) {
	log := r.log.Function("Login")

	envelope, err := r.client.Post(ctx, userEndpoint+"/login", req, nil)
	if err != nil {
		return "", log.Err("login failed", err, "username", req.Username)
	}

	var token string
	if err := json.Unmarshal(envelope.Data, &token); err != nil || token == "" {
		return "", log.ErrMsg("login response did not contain a token")
	}

	return token, nil
}

// Me resolves the authenticated user. Sessions differ per request, so this
// deliberately bypasses the shared resource cache.
func (r *userRepository) Me(ctx context.Context) (*User, error) {
	log := r.log.Function("Me")

	envelope, err := r.client.Get(ctx, userEndpoint+"/me", nil)
	if err != nil {
		return nil, log.Err("failed to fetch current user", err)
	}

	var raw RawUser
	if err := json.Unmarshal(envelope.Data, &raw); err != nil {
		return nil, log.Err("failed to decode current user", err)
	}

	user := SerializeUser(raw)
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]User, error) {
	log := r.log.Function("List")
	key := resource.Key(userEndpoint, "", nil)

	data, err := r.cache.Fetch(ctx, key, resource.Options{}, func(ctx context.Context) (any, error) {
		envelope, err := r.client.Get(ctx, userEndpoint, nil)
		if err != nil {
			return nil, log.Err("failed to fetch users", err)
		}

		var raws []RawUser
		if err := json.Unmarshal(envelope.Data, &raws); err != nil {
			return nil, log.Err("failed to decode users", err)
		}

		return SerializeUsers(raws), nil
	})
	if err != nil {
		return nil, err
	}

	users, _ := data.([]User)
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	log := r.log.Function("Create")

	envelope, err := r.client.Post(ctx, userEndpoint, req, nil)
	if err != nil {
		return nil, log.Err("failed to create user", err, "username", req.Username)
	}

	var raw RawUser
	if err := json.Unmarshal(envelope.Data, &raw); err != nil {
		return nil, log.Err("failed to decode created user", err)
	}

	r.InvalidateList()

	user := SerializeUser(raw)
	return &user, nil
}

func (r *userRepository) InvalidateList() {
	key := resource.Key(userEndpoint, "", nil)
	r.cache.Invalidate(key)
	if err := database.NewCacheBuilder(r.db.Cache.Resource, key).Delete(); err != nil {
		r.log.Function("InvalidateList").Warn("failed to drop user snapshot", "error", err)
	}
}
