package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoPlan is returned when the planner finds no plan achieving the goal.
	ErrNoPlan = errors.New("no plan achieves the goal")

	// ErrInvalidHypothesis is returned for a hypothesis with an unrecognized shape or modality.
	ErrInvalidHypothesis = errors.New("invalid hypothesis")

	// ErrNoExplanation is returned when no enumerated plan contains an observed path.
	ErrNoExplanation = errors.New("observation cannot be produced by any plan")

	// ErrInvalidParams is returned when a probability parameter lies outside [0, 1].
	ErrInvalidParams = errors.New("invalid probability parameters")

	// ErrMalformedTrace is returned when a token trace cannot be decoded.
	ErrMalformedTrace = errors.New("malformed trace")

	// ErrZeroBaseline is reported when the baseline likelihood of a trace is zero,
	// which leaves the odds ratio undefined.
	ErrZeroBaseline = errors.New("baseline likelihood is zero")

	// ErrSuiteNotFound is returned when a suite snapshot cannot be found in a store.
	ErrSuiteNotFound = errors.New("suite not found")
)

// PlanningError reports a goal that cannot be achieved with the given actions.
type PlanningError struct {
	Goal    Goal
	Actions []Action
}

func (e *PlanningError) Error() string {
	names := make([]string, len(e.Actions))
	for i, a := range e.Actions {
		names[i] = a.String()
	}
	return fmt.Sprintf("failed to find any plans for %s given actions [%s]", e.Goal, strings.Join(names, ", "))
}

func (e *PlanningError) Unwrap() error {
	return ErrNoPlan
}

// HypothesisError reports a malformed hypothesis.
type HypothesisError struct {
	Hypothesis Hypothesis
	Reason     string
}

func (e *HypothesisError) Error() string {
	return fmt.Sprintf("invalid hypothesis %s: %s", e.Hypothesis, e.Reason)
}

func (e *HypothesisError) Unwrap() error {
	return ErrInvalidHypothesis
}

// NoExplanationError reports a path that is not a contiguous sub-path of any plan.
type NoExplanationError struct {
	Path Path
	Goal Goal
}

func (e *NoExplanationError) Error() string {
	return fmt.Sprintf("path %s cannot be generated for %s by any enumerated plan", e.Path, e.Goal)
}

func (e *NoExplanationError) Unwrap() error {
	return ErrNoExplanation
}
