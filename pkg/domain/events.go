package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventUpdate          EventType = "update"
	EventEvidenceSkipped EventType = "evidence_skipped"
)

// Evidence names one of the two likelihood models.
type Evidence string

const (
	EvidenceSanctions Evidence = "sanctions"
	EvidencePlans     Evidence = "plans"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// UpdateEvent is emitted after a trace has been committed to the suite.
type UpdateEvent struct {
	EventBase
	Trace              Trace         `json:"trace"`
	SanctionBaseline   float64       `json:"sanction_baseline"`
	PlanBaseline       float64       `json:"plan_baseline,omitempty"`
	PlanEvidence       bool          `json:"plan_evidence"`
	HypothesesAffected int           `json:"hypotheses_affected"`
	Duration           time.Duration `json:"duration"`
}

// SkipEvent is emitted when one evidence model cannot contribute for a trace.
type SkipEvent struct {
	EventBase
	Trace    Trace    `json:"trace"`
	Evidence Evidence `json:"evidence"`
	Err      error    `json:"-"`
}

// LifecycleHooks defines callbacks for inference observability.
type LifecycleHooks struct {
	OnUpdate          func(context.Context, *UpdateEvent)
	OnEvidenceSkipped func(context.Context, *SkipEvent)
}
