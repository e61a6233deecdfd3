// Package catalog loads subscription plans from the backend and keeps the
// latest catalog state for concurrent readers.
//
// Each call to Load issues one fetch tagged with a monotonically increasing
// generation. A response is applied only if no newer load has been issued in
// the meantime, so overlapping loads cannot overwrite fresh data with stale.
package catalog

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/pricing"
)

// Source fetches raw products.
type Source interface {
	ListProducts(ctx context.Context) ([]pricing.RawProduct, error)
}

// Observer receives every state the loader applies, in order. It is called
// with the loader's lock held and must not call back into the loader.
type Observer func(State)

// Option configures a Loader.
type Option func(*Loader)

func WithNormalizer(n *pricing.Normalizer) Option {
	return func(l *Loader) {
		if n != nil {
			l.normalizer = n
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

func WithObserver(o Observer) Option {
	return func(l *Loader) {
		if o != nil {
			l.observers = append(l.observers, o)
		}
	}
}

// WithErrorMessage overrides the user-facing load failure message.
func WithErrorMessage(msg string) Option {
	return func(l *Loader) {
		if msg != "" {
			l.errorMessage = msg
		}
	}
}

// Loader fetches, normalizes and sorts the plan catalog.
type Loader struct {
	src          Source
	normalizer   *pricing.Normalizer
	logger       *slog.Logger
	observers    []Observer
	errorMessage string
	now          func() time.Time

	mu     sync.RWMutex
	issued uint64
	state  State
	plans  []pricing.Plan // last ready catalog; survives loading and error states
}

// NewLoader returns a Loader whose initial state is loading with generation 0.
func NewLoader(src Source, opts ...Option) *Loader {
	l := &Loader{
		src:          src,
		normalizer:   pricing.NewNormalizer(pricing.DefaultFeatureRules()),
		logger:       slog.New(slog.DiscardHandler),
		errorMessage: DefaultLoadMessage,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With(logger.Component("catalog"))
	l.state = State{Status: StatusLoading, UpdatedAt: l.now()}
	return l
}

// Current returns the latest applied state.
func (l *Loader) Current() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Plan looks a plan up in the last successfully loaded catalog, so a checkout
// confirmed while a reload is in flight or after a failed reload still finds it.
func (l *Loader) Plan(id string) (pricing.Plan, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return State{Plans: l.plans}.Plan(id)
}

// Load fetches the catalog and replaces the current state: first with a
// loading state, then with exactly one ready or error state.
//
// If a newer Load was issued while this one was in flight, its response is
// discarded and Load returns the current state together with ErrSuperseded.
func (l *Loader) Load(ctx context.Context) (State, error) {
	gen := l.begin()

	start := l.now()
	products, err := l.src.ListProducts(ctx)

	var next State
	if err != nil {
		next = State{
			Status:  StatusError,
			Message: l.errorMessage,
			Err:     &LoadError{Message: l.errorMessage, Err: err},
		}
	} else {
		plans := l.normalizer.Normalize(products)
		slices.SortStableFunc(plans, func(a, b pricing.Plan) int {
			return a.MonthlyPrice.Cmp(b.MonthlyPrice)
		})
		next = State{Status: StatusReady, Plans: plans}
	}
	next.Generation = gen
	next.UpdatedAt = l.now()

	applied, ok := l.finish(next)
	if !ok {
		l.logger.DebugContext(ctx, "discarding stale catalog response",
			logger.Generation(gen),
			slog.Uint64("latest", applied.Generation),
		)
		return applied, ErrSuperseded
	}

	if err != nil {
		l.logger.ErrorContext(ctx, "catalog load failed",
			logger.Generation(gen),
			logger.Duration(l.now().Sub(start)),
			logger.Error(err),
		)
		return applied, applied.Err
	}

	l.logger.InfoContext(ctx, "catalog loaded",
		logger.Generation(gen),
		logger.Duration(l.now().Sub(start)),
		slog.Int("plans", len(applied.Plans)),
	)
	return applied, nil
}

func (l *Loader) begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.issued++
	l.apply(State{Status: StatusLoading, Generation: l.issued, UpdatedAt: l.now()})
	return l.issued
}

// finish applies next if it belongs to the latest issued load.
func (l *Loader) finish(next State) (State, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if next.Generation != l.issued {
		return l.state, false
	}
	if next.Ready() {
		l.plans = next.Plans
	}
	l.apply(next)
	return next, true
}

func (l *Loader) apply(s State) {
	l.state = s
	for _, o := range l.observers {
		o(s)
	}
}

// Run loads the catalog immediately and then every interval until ctx is done.
// A non-positive interval loads once and waits for ctx. Load failures are
// already logged and reflected in the state, so Run only returns ctx.Err().
func (l *Loader) Run(ctx context.Context, interval time.Duration) error {
	_, _ = l.Load(ctx)

	if interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_, _ = l.Load(ctx)
		}
	}
}
