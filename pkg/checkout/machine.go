package checkout

import "time"

// Event triggers a transition.
type Event string

const (
	EventSelect           Event = "select"
	EventSessionCompleted Event = "session_completed"
	EventSessionFailed    Event = "session_failed"
	EventRedirected       Event = "redirected"
	EventDismiss          Event = "dismiss"
)

// input carries the event payload.
type input struct {
	PlanID string
	Reason string
	Now    time.Time
}

type (
	guard  func(s Selection, in input) bool
	action func(s *Selection, in input)
)

type transition struct {
	to      State
	guards  []guard
	actions []action
}

// machine is a transition table keyed by state and event. The first transition
// whose guards all pass wins.
type machine struct {
	table map[State]map[Event][]transition
}

func (m *machine) on(from State, ev Event, to State, guards []guard, actions ...action) {
	if m.table[from] == nil {
		m.table[from] = make(map[Event][]transition)
	}
	m.table[from][ev] = append(m.table[from][ev], transition{to: to, guards: guards, actions: actions})
}

// fire applies ev to s. s is left untouched when no transition applies.
func (m *machine) fire(s *Selection, ev Event, in input) error {
	candidates := m.table[s.State][ev]
	if len(candidates) == 0 {
		return &NoTransitionError{State: s.State, Event: ev}
	}

	for _, t := range candidates {
		if !allow(t.guards, *s, in) {
			continue
		}
		for _, a := range t.actions {
			a(s, in)
		}
		s.State = t.to
		s.UpdatedAt = in.Now
		return nil
	}
	return &RejectedError{State: s.State, Event: ev}
}

func allow(guards []guard, s Selection, in input) bool {
	for _, g := range guards {
		if !g(s, in) {
			return false
		}
	}
	return true
}

func samePlan(s Selection, in input) bool  { return s.PlanID == in.PlanID }
func otherPlan(s Selection, in input) bool { return s.PlanID != in.PlanID }

func choosePlan(s *Selection, in input) {
	s.PlanID = in.PlanID
	s.Reason = ""
	s.PendingSince = time.Time{}
}

func markPending(s *Selection, in input) {
	s.Reason = ""
	s.PendingSince = in.Now
}

func settle(s *Selection, in input) {
	s.Reason = in.Reason
	s.PendingSince = time.Time{}
}

func clearPlan(s *Selection, _ input) {
	s.PlanID = ""
	s.Reason = ""
	s.PendingSince = time.Time{}
}

func clearReason(s *Selection, _ input) {
	s.Reason = ""
}

var flow = newFlow()

func newFlow() *machine {
	m := &machine{table: make(map[State]map[Event][]transition)}
	same := []guard{samePlan}
	other := []guard{otherPlan}

	m.on(StateIdle, EventSelect, StatePlanSelected, nil, choosePlan)

	m.on(StatePlanSelected, EventSelect, StateCheckoutPending, same, markPending)
	m.on(StatePlanSelected, EventSelect, StatePlanSelected, other, choosePlan)

	m.on(StateCheckoutPending, EventSessionCompleted, StateCheckoutSucceeded, nil, settle)
	m.on(StateCheckoutPending, EventSessionFailed, StateCheckoutFailed, nil, settle)
	m.on(StateCheckoutPending, EventRedirected, StateIdle, nil, clearPlan)

	m.on(StateCheckoutFailed, EventSelect, StateCheckoutPending, same, markPending)
	m.on(StateCheckoutFailed, EventSelect, StatePlanSelected, other, choosePlan)
	m.on(StateCheckoutFailed, EventDismiss, StatePlanSelected, nil, clearReason)

	m.on(StateCheckoutSucceeded, EventSelect, StatePlanSelected, other, choosePlan)
	m.on(StateCheckoutSucceeded, EventDismiss, StateIdle, nil, clearPlan)

	return m
}
