package collection

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// State is the synchronization state of a collection.
type State string

// Controller states. The only recovery path out of Failed is Start.
const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// ListFunc fetches the full collection from the backend.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// Controller owns the loading/error/data state of one entity collection.
// A successful fetch replaces the whole in-memory collection; there is no
// merging, so stale entries can never diverge from a mutation made
// elsewhere. Fetches are stamped with a generation counter and a response
// is applied only if no newer fetch has been started since, so concurrent
// refetches resolve deterministically to the last one started.
type Controller[T any] struct {
	name   string
	list   ListFunc[T]
	logger zerolog.Logger

	mu         sync.Mutex
	state      State
	items      []T
	err        error
	generation uint64
}

// NewController creates a controller in the Idle state.
func NewController[T any](name string, list ListFunc[T], logger zerolog.Logger) *Controller[T] {
	return &Controller[T]{
		name:   name,
		list:   list,
		logger: logger.With().Str("collection", name).Logger(),
		state:  StateIdle,
	}
}

// Start enters Loading, clears any prior error and issues exactly one list
// call. On success the collection is fully replaced; on failure no partial
// data is retained. A result from a superseded fetch is discarded.
func (c *Controller[T]) Start(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateLoading
	c.err = nil
	c.mu.Unlock()

	c.logger.Debug().Uint64("generation", gen).Msg("fetching collection")

	items, err := c.list(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug().Uint64("generation", gen).Msg("discarding superseded fetch result")
		return nil
	}

	if err != nil {
		c.logger.Error().Err(err).Msg("collection fetch failed")
		c.state = StateFailed
		c.items = nil
		c.err = err
		return err
	}

	c.state = StateReady
	c.items = items
	c.logger.Debug().Int("count", len(items)).Msg("collection replaced")
	return nil
}

// Refetch re-runs Start; it is the synchronization point invoked by
// mutation flows after a successful submit.
func (c *Controller[T]) Refetch(ctx context.Context) error {
	return c.Start(ctx)
}

// State returns the current synchronization state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Items returns a snapshot copy of the current collection.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		return nil
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Err returns the error from the last failed fetch, if any.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
