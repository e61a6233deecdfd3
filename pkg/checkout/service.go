package checkout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/pkg/broker"
	"github.com/dmitrymomot/storefront/pkg/identity"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/pricing"
)

const defaultStaleAfter = 2 * time.Minute

// PlanSource looks plans up in the current catalog.
type PlanSource interface {
	Plan(id string) (pricing.Plan, bool)
}

// SessionBroker starts hosted checkout sessions.
type SessionBroker interface {
	CreateCheckoutSession(ctx context.Context, priceID, userID, customerID string) (broker.Session, error)
}

// Outcome is the result of a selection.
type Outcome struct {
	Selection Selection
	// RedirectURL is set when the browser must leave for the hosted payment page.
	RedirectURL string
	// Err is the checkout failure behind a CheckoutFailed selection.
	Err error
}

// Redirect reports whether the caller must navigate to RedirectURL.
func (o Outcome) Redirect() bool {
	return o.RedirectURL != ""
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStaleAfter sets how long a pending checkout may wait for its result
// before it is considered interrupted.
func WithStaleAfter(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.staleAfter = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// SelectOption tunes a single Select call.
type SelectOption func(*selectOptions)

type selectOptions struct {
	onPending func(Selection)
}

// OnPending is called with the pending selection right before the broker
// call, outside the visitor lock.
func OnPending(fn func(Selection)) SelectOption {
	return func(o *selectOptions) { o.onPending = fn }
}

// Service runs the checkout flow for many visitors.
type Service struct {
	store      Store
	plans      PlanSource
	broker     SessionBroker
	logger     *slog.Logger
	staleAfter time.Duration
	now        func() time.Time
	locks      keyedMutex
	calls      callSet
}

// NewService wires a Service.
func NewService(store Store, plans PlanSource, b SessionBroker, opts ...ServiceOption) *Service {
	s := &Service{
		store:      store,
		plans:      plans,
		broker:     b,
		logger:     slog.New(slog.DiscardHandler),
		staleAfter: defaultStaleAfter,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("checkout"))
	return s
}

// Current returns the visitor's selection, or a fresh one.
func (s *Service) Current(ctx context.Context, visitorID string) (Selection, error) {
	if visitorID == "" {
		return Selection{}, ErrMissingVisitor
	}
	unlock := s.locks.lock(visitorID)
	defer unlock()
	return s.load(ctx, visitorID)
}

// Select applies a plan pick. Picking a new plan selects it; picking the
// selected plan again confirms it and runs the checkout.
//
// While a checkout is pending every pick is refused with ErrCheckoutInProgress
// and the pending selection is returned. Broker failures do not surface as
// errors: they end in CheckoutFailed with Outcome.Err set.
func (s *Service) Select(ctx context.Context, visitorID, planID string, who identity.Identity, opts ...SelectOption) (Outcome, error) {
	var so selectOptions
	for _, opt := range opts {
		opt(&so)
	}

	if visitorID == "" {
		return Outcome{}, ErrMissingVisitor
	}

	unlock := s.locks.lock(visitorID)
	sel, err := s.load(ctx, visitorID)
	if err != nil {
		unlock()
		return Outcome{}, err
	}

	if sel.State == StateCheckoutPending {
		unlock()
		return Outcome{Selection: sel}, ErrCheckoutInProgress
	}

	prev := sel
	if err := flow.fire(&sel, EventSelect, input{PlanID: planID, Now: s.now()}); err != nil {
		unlock()
		if IsRejected(err) {
			// the same plan was already bought in this session
			return Outcome{Selection: sel}, nil
		}
		return Outcome{Selection: sel}, err
	}

	// A checkout marked interrupted may still have its broker call running here.
	pending := sel.State == StateCheckoutPending
	if pending && !s.calls.start(visitorID) {
		unlock()
		return Outcome{Selection: prev}, ErrCheckoutInProgress
	}

	if err := s.store.Save(ctx, visitorID, sel); err != nil {
		if pending {
			s.calls.done(visitorID)
		}
		unlock()
		return Outcome{}, err
	}
	unlock()

	if !pending {
		s.logger.DebugContext(ctx, "plan selected", logger.VisitorID(visitorID), logger.PlanID(planID))
		return Outcome{Selection: sel}, nil
	}
	defer s.calls.done(visitorID)

	if so.onPending != nil {
		so.onPending(sel)
	}
	return s.checkout(ctx, visitorID, sel, who)
}

// checkout makes the single broker call for a pending selection and records its result.
func (s *Service) checkout(ctx context.Context, visitorID string, pending Selection, who identity.Identity) (Outcome, error) {
	session, callErr := s.createSession(ctx, pending, who)

	// The result must be recorded even if the request that started it is gone.
	ctx = context.WithoutCancel(ctx)

	unlock := s.locks.lock(visitorID)
	defer unlock()

	cur, ok, err := s.store.Load(ctx, visitorID)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		cur = NewSelection()
	}
	attrs := []any{logger.VisitorID(visitorID), logger.PlanID(pending.PlanID)}

	// The selection moved on (interrupted, then changed or reset): the result is stale.
	if cur.State != StateCheckoutPending || !cur.PendingSince.Equal(pending.PendingSince) {
		s.logger.DebugContext(ctx, "discarding checkout result for superseded selection",
			append(attrs, slog.String("state", string(cur.State)))...)
		return Outcome{Selection: cur}, nil
	}
	sel := cur

	switch {
	case callErr != nil:
		msg, _ := broker.CheckoutMessage(callErr)
		if msg == "" {
			msg = broker.DefaultCheckoutMessage
		}
		_ = flow.fire(&sel, EventSessionFailed, input{Reason: msg, Now: s.now()})
		s.logger.WarnContext(ctx, "checkout failed", append(attrs, logger.Error(callErr))...)
		if err := s.store.Save(ctx, visitorID, sel); err != nil {
			return Outcome{}, err
		}
		return Outcome{Selection: sel, Err: callErr}, nil

	case session.Completed():
		_ = flow.fire(&sel, EventSessionCompleted, input{Now: s.now()})
		s.logger.InfoContext(ctx, "checkout completed without redirect", attrs...)
		if err := s.store.Save(ctx, visitorID, sel); err != nil {
			return Outcome{}, err
		}
		return Outcome{Selection: sel}, nil

	default:
		_ = flow.fire(&sel, EventRedirected, input{Now: s.now()})
		s.logger.InfoContext(ctx, "redirecting to hosted checkout", attrs...)
		// Coming back from the hosted page is a fresh page load.
		if err := s.store.Delete(ctx, visitorID); err != nil {
			return Outcome{}, err
		}
		return Outcome{Selection: NewSelection(), RedirectURL: session.URL}, nil
	}
}

func (s *Service) createSession(ctx context.Context, pending Selection, who identity.Identity) (broker.Session, error) {
	plan, ok := s.plans.Plan(pending.PlanID)
	if !ok {
		return broker.Session{}, &broker.CheckoutError{Message: broker.PlanNotFoundMessage, Err: broker.ErrPlanNotFound}
	}
	return s.broker.CreateCheckoutSession(ctx, plan.PriceID(pending.Monthly), who.UserID, who.CustomerID)
}

// SetMonthly switches the billing interval. The state and the selected plan
// are left unchanged.
func (s *Service) SetMonthly(ctx context.Context, visitorID string, monthly bool) (Selection, error) {
	if visitorID == "" {
		return Selection{}, ErrMissingVisitor
	}
	unlock := s.locks.lock(visitorID)
	defer unlock()

	sel, err := s.load(ctx, visitorID)
	if err != nil {
		return Selection{}, err
	}
	if sel.Monthly == monthly {
		return sel, nil
	}
	sel.Monthly = monthly
	sel.UpdatedAt = s.now()
	if err := s.store.Save(ctx, visitorID, sel); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// Dismiss closes the payment modal. It only has an effect after a checkout
// succeeded or failed.
func (s *Service) Dismiss(ctx context.Context, visitorID string) (Selection, error) {
	if visitorID == "" {
		return Selection{}, ErrMissingVisitor
	}
	unlock := s.locks.lock(visitorID)
	defer unlock()

	sel, err := s.load(ctx, visitorID)
	if err != nil {
		return Selection{}, err
	}
	if err := flow.fire(&sel, EventDismiss, input{Now: s.now()}); err != nil {
		if IsNoTransition(err) {
			return sel, nil
		}
		return sel, err
	}
	if err := s.store.Save(ctx, visitorID, sel); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// Reset forgets the visitor's selection.
func (s *Service) Reset(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return ErrMissingVisitor
	}
	unlock := s.locks.lock(visitorID)
	defer unlock()
	return s.store.Delete(ctx, visitorID)
}

// load reads a selection and fails a pending checkout that outlived staleAfter.
// The caller holds the visitor lock.
func (s *Service) load(ctx context.Context, visitorID string) (Selection, error) {
	sel, ok, err := s.store.Load(ctx, visitorID)
	if err != nil {
		return Selection{}, err
	}
	if !ok {
		return NewSelection(), nil
	}

	if sel.State == StateCheckoutPending && s.now().Sub(sel.PendingSince) > s.staleAfter {
		_ = flow.fire(&sel, EventSessionFailed, input{Reason: InterruptedMessage, Now: s.now()})
		s.logger.WarnContext(ctx, "pending checkout interrupted", logger.VisitorID(visitorID), logger.PlanID(sel.PlanID))
		if err := s.store.Save(ctx, visitorID, sel); err != nil {
			return Selection{}, err
		}
	}
	return sel, nil
}

// callSet tracks visitors with a broker call in flight in this process.
type callSet struct {
	mu sync.Mutex
	m  map[string]struct{}
}

func (c *callSet) start(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.m[key]; busy {
		return false
	}
	if c.m == nil {
		c.m = make(map[string]struct{})
	}
	c.m[key] = struct{}{}
	return true
}

func (c *callSet) done(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

// keyedMutex serializes work per key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
