package userController

import (
	"context"

	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/repositories"
	"recruiter/internal/sessions"
)

type UserController struct {
	userRepo repositories.UserRepository
	sessions *sessions.Store
	log      logger.Logger
}

func New(userRepo repositories.UserRepository, store *sessions.Store) *UserController {
	return &UserController{
		userRepo: userRepo,
		sessions: store,
		log:      logger.New("UserController"),
	}
}

// Login exchanges credentials for a backend token, resolves the user behind
// it, and persists both as a dashboard session.
func (uc *UserController) Login(ctx context.Context, req LoginRequest) (*User, sessions.Session, error) {
	log := uc.log.Function("Login")

	token, err := uc.userRepo.Login(ctx, req)
	if err != nil {
		return nil, sessions.Session{}, err
	}

	// the token is not stored yet, so hand it to downstream calls via context
	authed := sessions.WithSession(ctx, sessions.Session{Token: token})

	user, err := uc.userRepo.Me(authed)
	if err != nil {
		return nil, sessions.Session{}, log.Err("login succeeded but profile fetch failed", err)
	}

	session, err := uc.sessions.Create(ctx, token, user.ID)
	if err != nil {
		return nil, sessions.Session{}, err
	}

	return user, session, nil
}

func (uc *UserController) Logout(ctx context.Context) error {
	session, ok := sessions.FromContext(ctx)
	if !ok {
		return nil
	}
	return uc.sessions.Clear(ctx, session.ID)
}

func (uc *UserController) Me(ctx context.Context) (*User, error) {
	return uc.userRepo.Me(ctx)
}

func (uc *UserController) List(ctx context.Context) ([]User, error) {
	return uc.userRepo.List(ctx)
}

func (uc *UserController) Add(ctx context.Context, req CreateUserRequest) (*User, error) {
	user, err := uc.userRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.userRepo.InvalidateList()
	return user, nil
}
