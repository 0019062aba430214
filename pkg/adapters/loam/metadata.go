package loam

// ScenarioMetadata is the front matter of a scenario document.
// Numeric fields are left untyped: loam runs in strict mode and hands them
// over as json.Number, which scenario.Decode converts.
type ScenarioMetadata struct {
	ID         string         `json:"id" mapstructure:"id"`
	Name       string         `json:"name" mapstructure:"name"`
	Goal       GoalMetadata   `json:"goal" mapstructure:"goal"`
	Actions    []string       `json:"actions" mapstructure:"actions"`
	Hypotheses []string       `json:"hypotheses" mapstructure:"hypotheses"`
	Prior      map[string]any `json:"prior" mapstructure:"prior"`
	Enumerate  bool           `json:"enumerate" mapstructure:"enumerate"`
	Mass       any            `json:"mass,omitempty" mapstructure:"mass"`
	Params     map[string]any `json:"params" mapstructure:"params"`
	Traces     []string       `json:"traces" mapstructure:"traces"`
	Top        any            `json:"top,omitempty" mapstructure:"top"`
}

// GoalMetadata is the goal block of the front matter.
type GoalMetadata struct {
	Start  string `json:"start" mapstructure:"start"`
	Target string `json:"target" mapstructure:"target"`
}
