package sessions

import (
	"context"
	"time"

	"recruiter/config"
	"recruiter/internal/database"
	"recruiter/internal/logger"

	"github.com/google/uuid"
)

const CookieName = "recruiter_session"

// Session is the explicit server-side replacement for the browser's
// token-in-local-storage pattern: the backend bearer token lives here, keyed
// by the dashboard session cookie.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	client database.CacheClient
	ttl    time.Duration
	log    logger.Logger
}

func NewStore(db database.DB, cfg config.Config) *Store {
	return &Store{
		client: db.Cache.Session,
		ttl:    time.Duration(cfg.SessionTTLHours) * time.Hour,
		log:    logger.New("sessions"),
	}
}

func (s *Store) Create(ctx context.Context, token, userID string) (Session, error) {
	log := s.log.Function("Create")

	id, err := uuid.NewV7()
	if err != nil {
		return Session{}, log.Err("failed to generate session id", err)
	}

	session := Session{
		ID:        id.String(),
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := database.NewCacheBuilder(s.client, sessionKey(session.ID)).
		WithStruct(session).
		WithTTL(s.ttl).
		WithContext(ctx).
		Set(); err != nil {
		return Session{}, log.Err("failed to store session", err, "sessionID", session.ID)
	}

	return session, nil
}

func (s *Store) Get(ctx context.Context, id string) (Session, bool, error) {
	if id == "" {
		return Session{}, false, nil
	}

	var session Session
	found, err := database.NewCacheBuilder(s.client, sessionKey(id)).
		WithContext(ctx).
		Get(&session)
	if err != nil {
		return Session{}, false, s.log.Function("Get").Err("failed to load session", err, "sessionID", id)
	}

	return session, found, nil
}

func (s *Store) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := database.NewCacheBuilder(s.client, sessionKey(id)).
		WithContext(ctx).
		Delete(); err != nil {
		return s.log.Function("Clear").Err("failed to clear session", err, "sessionID", id)
	}
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}

type contextKey struct{}

// WithSession attaches the session to a request context so the backend
// client's token source can find it.
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, contextKey{}, session)
}

func FromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(contextKey{}).(Session)
	return session, ok
}

// TokenSource adapts context-held sessions for the backend client. Requests
// without a session yield an empty token, which the backend treats as
// unauthenticated.
func TokenSource(ctx context.Context) string {
	if session, ok := FromContext(ctx); ok {
		return session.Token
	}
	return ""
}
