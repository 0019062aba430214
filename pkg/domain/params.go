package domain

import "fmt"

// Params holds the probabilities of the sanction and plan models.
type Params struct {
	// NonCompliance is the probability that an agent ignores a norm entirely.
	NonCompliance float64 `json:"p_non_compliance" yaml:"p_non_compliance" mapstructure:"p_non_compliance"`
	// Detect is the probability that a violation is noticed.
	Detect float64 `json:"p_detect" yaml:"p_detect" mapstructure:"p_detect"`
	// Sanction is the probability that a noticed violation is punished.
	Sanction float64 `json:"p_sanction" yaml:"p_sanction" mapstructure:"p_sanction"`
	// Random is the probability of an unexplained punishment after any step.
	Random float64 `json:"p_random" yaml:"p_random" mapstructure:"p_random"`
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		NonCompliance: 0.1,
		Detect:        0.5,
		Sanction:      0.2,
		Random:        0.01,
	}
}

// Validate checks that every probability lies in [0, 1].
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"p_non_compliance", p.NonCompliance},
		{"p_detect", p.Detect},
		{"p_sanction", p.Sanction},
		{"p_random", p.Random},
	}
	for _, f := range fields {
		// Written so that NaN fails too.
		if !(f.value >= 0 && f.value <= 1) {
			return fmt.Errorf("%w: %s=%v is outside [0, 1]", ErrInvalidParams, f.name, f.value)
		}
	}
	return nil
}
