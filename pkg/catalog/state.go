package catalog

import (
	"time"

	"github.com/dmitrymomot/storefront/pkg/pricing"
)

// Status is the phase of a catalog load.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State is a snapshot of the catalog. Plans is set only when Status is ready;
// Message and Err only when Status is error.
type State struct {
	Status     Status         `json:"status"`
	Plans      []pricing.Plan `json:"plans,omitempty"`
	Message    string         `json:"message,omitempty"`
	Err        error          `json:"-"`
	Generation uint64         `json:"generation"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Plan finds a plan by id in a ready state.
func (s State) Plan(id string) (pricing.Plan, bool) {
	for _, p := range s.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return pricing.Plan{}, false
}

// Ready reports whether the state carries a loaded catalog.
func (s State) Ready() bool {
	return s.Status == StatusReady
}
