package resource

import (
	"context"
	"strings"
	"sync"
	"time"

	"recruiter/internal/backend"
	"recruiter/internal/events"
	"recruiter/internal/logger"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Snapshot is a point-in-time view of one cache key.
type Snapshot struct {
	State        State
	Data         any
	Err          error
	Revalidating bool
	UpdatedAt    time.Time
}

type FetchFunc func(ctx context.Context) (any, error)

type revalidatingKey struct{}

// Revalidating reports whether a fetch was triggered by a background
// refresh rather than a first load. Fetch functions that keep a warm-start
// snapshot check this to bypass it, so the refresh reaches the origin
// instead of re-reading the snapshot it is meant to replace.
func Revalidating(ctx context.Context) bool {
	flagged, _ := ctx.Value(revalidatingKey{}).(bool)
	return flagged
}

// Options tune one Fetch call. The zero value means: fetch allowed,
// revalidation on, cache-default max age.
type Options struct {
	// Suppress gates the fetch entirely: data stays absent and no request
	// is issued (used until a dependent identifier is known).
	Suppress bool
	// NoRevalidate serves whatever is cached without kicking a background
	// refresh, regardless of age.
	NoRevalidate bool
	// MaxAge overrides the cache-wide staleness threshold.
	MaxAge time.Duration
}

type entry struct {
	state        State
	data         any
	err          error
	updatedAt    time.Time
	revalidating bool
	generation   uint64
	inflight     chan struct{}
}

// Cache is the process-wide resource cache: one entry per request
// signature, an explicit idle → loading → ready|failed state machine per
// key with a revalidating overlay, and subscriber notification through the
// event bus. Optimistic mutations apply synchronously and are visible to
// every consumer of the key before any server confirmation arrives.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	gen     uint64
	bus     *events.EventBus
	maxAge  time.Duration
	log     logger.Logger
}

func New(bus *events.EventBus, maxAge time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		bus:     bus,
		maxAge:  maxAge,
		log:     logger.New("resource"),
	}
}

// nextGen issues a generation from a cache-wide counter, so an entry
// recreated after Forget can never share a generation with a response that
// was in flight for its predecessor. Callers hold c.mu.
func (c *Cache) nextGen() uint64 {
	c.gen++
	return c.gen
}

// Key builds the cache key from endpoint, optional path segment, and query
// parameters. Nil parameters are dropped and keys sorted by EncodeParams,
// so equivalent queries share an entry.
func Key(endpoint, path string, params backend.Params) string {
	key := endpoint
	if path != "" {
		key += "/" + path
	}
	if query := backend.EncodeParams(params); query != "" {
		key += "?" + query
	}
	return key
}

// Fetch returns the cached value for key, fetching or revalidating as the
// state machine dictates. Fresh data returns immediately; stale data is
// served as-is while a background revalidation runs; concurrent callers for
// a key in flight coalesce onto the same request.
func (c *Cache) Fetch(ctx context.Context, key string, opts Options, fetch FetchFunc) (any, error) {
	if opts.Suppress {
		return nil, nil
	}

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = c.maxAge
	}

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{state: StateIdle, generation: c.nextGen()}
		c.entries[key] = e
	}

	switch e.state {
	case StateReady:
		data := e.data
		stale := time.Since(e.updatedAt) > maxAge
		if stale && !opts.NoRevalidate && !e.revalidating {
			e.revalidating = true
			gen := e.generation
			c.mu.Unlock()
			c.notifyState(key, StateReady, true)
			go c.revalidate(key, gen, fetch)
			return data, nil
		}
		c.mu.Unlock()
		return data, nil

	case StateLoading:
		inflight := e.inflight
		c.mu.Unlock()
		select {
		case <-inflight:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return c.settled(key)

	default:
		// idle, or failed and being retried
		e.state = StateLoading
		e.inflight = make(chan struct{})
		gen := e.generation
		c.mu.Unlock()
		c.notifyState(key, StateLoading, false)

		data, err := fetch(ctx)
		c.complete(key, gen, data, err)
		return data, err
	}
}

// revalidate runs a background refresh for a key that already has data.
// The existing value keeps being served until the refresh lands; a refresh
// failure keeps the stale value (the next Fetch retries).
func (c *Cache) revalidate(key string, gen uint64, fetch FetchFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = context.WithValue(ctx, revalidatingKey{}, true)

	data, err := fetch(ctx)

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok || e.generation != gen {
		// key was forgotten or rewritten while we were fetching; the
		// response is discarded
		c.mu.Unlock()
		return
	}

	e.revalidating = false
	if err != nil {
		c.mu.Unlock()
		c.log.Warn("background revalidation failed", "key", key, "error", err)
		c.notifyState(key, StateReady, false)
		return
	}

	e.data = data
	e.updatedAt = time.Now()
	e.generation = c.nextGen()
	c.mu.Unlock()

	c.notifyState(key, StateReady, false)
	c.notifyChanged(key)
}

func (c *Cache) complete(key string, gen uint64, data any, err error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok || e.generation != gen {
		c.mu.Unlock()
		return
	}

	if err != nil {
		e.state = StateFailed
		e.err = err
	} else {
		e.state = StateReady
		e.data = data
		e.err = nil
		e.updatedAt = time.Now()
		e.generation = c.nextGen()
	}
	inflight := e.inflight
	e.inflight = nil
	c.mu.Unlock()

	if inflight != nil {
		close(inflight)
	}

	if err != nil {
		c.notifyState(key, StateFailed, false)
		return
	}
	c.notifyState(key, StateReady, false)
	c.notifyChanged(key)
}

func (c *Cache) settled(key string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if e.state == StateFailed {
		return nil, e.err
	}
	return e.data, nil
}

// Peek reports the key's current snapshot without triggering a fetch.
func (c *Cache) Peek(key string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{State: StateIdle}
	}
	return Snapshot{
		State:        e.state,
		Data:         e.data,
		Err:          e.err,
		Revalidating: e.revalidating,
		UpdatedAt:    e.updatedAt,
	}
}

// Mutate rewrites the cached value synchronously. Subscribers see the new
// value immediately; no server round trip is involved. Rollback on a failed
// optimistic write is the caller's responsibility.
func (c *Cache) Mutate(key string, transform func(current any) any) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{state: StateIdle}
		c.entries[key] = e
	}

	e.data = transform(e.data)
	e.state = StateReady
	e.err = nil
	e.updatedAt = time.Now()
	e.generation = c.nextGen()
	c.mu.Unlock()

	c.notifyChanged(key)
}

// Invalidate marks a key stale so the next Fetch revalidates.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && e.state == StateReady {
		e.updatedAt = time.Time{}
	}
}

// InvalidateEndpoint marks every key under an endpoint stale: the bare
// endpoint key, each parameterized list variant, and each detail key. The
// boundary check keeps "application" from sweeping up "application-type".
// The invalidated keys are returned so callers can drop any sibling
// snapshots they hold.
func (c *Cache) InvalidateEndpoint(endpoint string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys []string
	for key, e := range c.entries {
		if !keyUnderEndpoint(key, endpoint) {
			continue
		}
		if e.state == StateReady {
			e.updatedAt = time.Time{}
		}
		keys = append(keys, key)
	}
	return keys
}

func keyUnderEndpoint(key, endpoint string) bool {
	if key == endpoint {
		return true
	}
	return strings.HasPrefix(key, endpoint+"/") || strings.HasPrefix(key, endpoint+"?")
}

// Forget drops a key entirely. Any in-flight response for it is discarded
// when it lands: a later re-creation of the key gets a strictly newer
// generation, so the stale response fails its generation check.
func (c *Cache) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *Cache) notifyState(key string, state State, revalidating bool) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(events.Event{
		Kind: events.KindResourceState,
		Key:  key,
		Payload: map[string]any{
			"state":        string(state),
			"revalidating": revalidating,
		},
	})
}

func (c *Cache) notifyChanged(key string) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(events.Event{Kind: events.KindResourceChanged, Key: key})
}
