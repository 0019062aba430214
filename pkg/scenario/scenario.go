// Package scenario reads norm inference scenarios from YAML, JSON or
// loosely typed maps and turns them into a model plus observed traces.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/dsl"
)

// Scenario is the file representation of a suite and its observations.
//
// Actions use the "a->b->c" form and traces the legacy token form
// ("a b d !"). Hypotheses listed without a prior share DefaultMass.
type Scenario struct {
	Name       string             `yaml:"name" json:"name" mapstructure:"name"`
	Goal       domain.Goal        `yaml:"goal" json:"goal" mapstructure:"goal"`
	Actions    []string           `yaml:"actions" json:"actions" mapstructure:"actions"`
	Hypotheses []string           `yaml:"hypotheses" json:"hypotheses,omitempty" mapstructure:"hypotheses"`
	Prior      map[string]float64 `yaml:"prior" json:"prior,omitempty" mapstructure:"prior"`
	Enumerate  bool               `yaml:"enumerate" json:"enumerate,omitempty" mapstructure:"enumerate"`
	Mass       float64            `yaml:"mass" json:"mass,omitempty" mapstructure:"mass"`
	Params     domain.Params      `yaml:"params" json:"params" mapstructure:"params"`
	Traces     []string           `yaml:"traces" json:"traces,omitempty" mapstructure:"traces"`
	Top        int                `yaml:"top" json:"top,omitempty" mapstructure:"top"`
}

// DefaultMass is the prior mass of listed or enumerated hypotheses.
const DefaultMass = 0.05

// DefaultTop is the number of hypotheses reported when Top is unset.
const DefaultTop = 5

func newScenario() *Scenario {
	return &Scenario{
		Mass:   DefaultMass,
		Params: domain.DefaultParams(),
		Top:    DefaultTop,
	}
}

// Load reads a scenario file. The format is chosen by extension: ".json" is
// JSON, anything else YAML.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a scenario in the given format ("json" or "yaml").
// Unset parameters keep their defaults.
func Parse(data []byte, format string) (*Scenario, error) {
	s := newScenario()
	switch format {
	case "json":
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse scenario json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse scenario yaml: %w", err)
		}
	}
	return s, nil
}

// Decode builds a scenario from a loosely typed map such as tool arguments
// or front matter. Scalars are converted weakly, so "0.2", 0.2 and
// json.Number("0.2") all decode as 0.2, and a single string is accepted
// where a list is expected.
func Decode(input map[string]any) (*Scenario, error) {
	s := newScenario()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           s,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return s, nil
}

// Model builds the goal, actions and prior described by the scenario.
func (s *Scenario) Model() (*dsl.Model, error) {
	b := dsl.New()
	var errs []error
	for _, raw := range s.Actions {
		a, err := domain.ParseAction(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		b.Action(a.Path...)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid actions: %w", errors.Join(errs...))
	}

	if s.Goal.Start == "" || s.Goal.Target == "" {
		return nil, errors.New("goal requires both start and target")
	}
	b.Goal(s.Goal.Start, s.Goal.Target)

	if s.Enumerate {
		b.Enumerate(s.Mass)
	}
	b.Norms(s.Mass, s.Hypotheses...)
	for text, mass := range s.Prior {
		h, err := domain.ParseHypothesis(text)
		if err != nil {
			return nil, err
		}
		b.Norm(h, mass)
	}
	return b.Build()
}

// ParseTraces parses every trace in order.
func (s *Scenario) ParseTraces() ([]domain.Trace, error) {
	traces := make([]domain.Trace, 0, len(s.Traces))
	for i, raw := range s.Traces {
		t, err := domain.ParseTraceString(raw)
		if err != nil {
			return nil, fmt.Errorf("trace %d: %w", i, err)
		}
		traces = append(traces, t)
	}
	return traces, nil
}

// Validate checks the model, the parameters and the traces without running inference.
func (s *Scenario) Validate() error {
	if err := s.Params.Validate(); err != nil {
		return err
	}
	if _, err := s.Model(); err != nil {
		return err
	}
	_, err := s.ParseTraces()
	return err
}
