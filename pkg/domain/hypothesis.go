package domain

import (
	"fmt"
	"strings"
)

// Modality is the kind of constraint a norm places on a node.
type Modality string

const (
	// ModalityEventually obliges the node to be reached.
	ModalityEventually Modality = "eventually"
	// ModalityNever forbids the node.
	ModalityNever Modality = "never"
	// ModalityNext obliges the node to directly follow the context node.
	ModalityNext Modality = "next"
	// ModalityNotNext forbids the node from directly following the context node.
	ModalityNotNext Modality = "not-next"
)

// Kind is the shape of a hypothesis.
type Kind int

const (
	KindNone Kind = iota
	KindUnconditional
	KindConditional
)

// noNormLabel is the textual form of the baseline hypothesis.
const noNormLabel = "none"

// Hypothesis is one mutually exclusive explanation of observed behavior.
// The zero value is NoNorm. Hypotheses are comparable and used as map keys.
type Hypothesis struct {
	Kind     Kind
	Context  Node
	Modality Modality
	Node     Node
}

// NoNorm is the baseline hypothesis: no norm applies.
func NoNorm() Hypothesis {
	return Hypothesis{}
}

// Unconditional creates a norm that applies along the whole path.
func Unconditional(modality Modality, node Node) Hypothesis {
	return Hypothesis{Kind: KindUnconditional, Modality: modality, Node: node}
}

// Conditional creates a norm that only applies once the context node is visited.
func Conditional(context Node, modality Modality, node Node) Hypothesis {
	return Hypothesis{Kind: KindConditional, Context: context, Modality: modality, Node: node}
}

// IsNoNorm reports whether h is the baseline hypothesis.
func (h Hypothesis) IsNoNorm() bool {
	return h.Kind == KindNone
}

// Validate checks that the hypothesis has a well-formed shape and modality.
func (h Hypothesis) Validate() error {
	switch h.Kind {
	case KindNone:
		if h.Context != "" || h.Modality != "" || h.Node != "" {
			return &HypothesisError{Hypothesis: h, Reason: "baseline hypothesis carries norm fields"}
		}
		return nil
	case KindUnconditional:
		if h.Context != "" {
			return &HypothesisError{Hypothesis: h, Reason: "unconditional norm carries a context node"}
		}
		if h.Modality != ModalityEventually && h.Modality != ModalityNever {
			return &HypothesisError{Hypothesis: h, Reason: fmt.Sprintf("invalid modality %q for an unconditional norm", h.Modality)}
		}
	case KindConditional:
		if h.Context == "" {
			return &HypothesisError{Hypothesis: h, Reason: "conditional norm is missing its context node"}
		}
		switch h.Modality {
		case ModalityEventually, ModalityNever, ModalityNext, ModalityNotNext:
		default:
			return &HypothesisError{Hypothesis: h, Reason: fmt.Sprintf("invalid modality %q for a conditional norm", h.Modality)}
		}
	default:
		return &HypothesisError{Hypothesis: h, Reason: fmt.Sprintf("unknown hypothesis kind %d", h.Kind)}
	}
	if h.Node == "" {
		return &HypothesisError{Hypothesis: h, Reason: "norm is missing its node"}
	}
	if err := ValidateNode(h.Node); err != nil {
		return &HypothesisError{Hypothesis: h, Reason: err.Error()}
	}
	if h.Kind == KindConditional {
		if err := ValidateNode(h.Context); err != nil {
			return &HypothesisError{Hypothesis: h, Reason: "context " + err.Error()}
		}
	}
	return nil
}

// String renders the hypothesis as whitespace-separated fields:
// "none", "<modality> <node>" or "<context> <modality> <node>".
func (h Hypothesis) String() string {
	switch h.Kind {
	case KindNone:
		return noNormLabel
	case KindUnconditional:
		return fmt.Sprintf("%s %s", h.Modality, h.Node)
	case KindConditional:
		return fmt.Sprintf("%s %s %s", h.Context, h.Modality, h.Node)
	}
	return fmt.Sprintf("invalid(%d %s %s %s)", h.Kind, h.Context, h.Modality, h.Node)
}

// ParseHypothesis parses the textual form produced by String.
// The legacy spelling "<context> not next <node>" is accepted for the
// not-next modality.
func ParseHypothesis(s string) (Hypothesis, error) {
	fields := strings.Fields(s)
	if len(fields) == 4 && fields[1] == "not" && fields[2] == string(ModalityNext) {
		fields = []string{fields[0], string(ModalityNotNext), fields[3]}
	}

	var h Hypothesis
	switch len(fields) {
	case 1:
		if fields[0] != noNormLabel {
			return Hypothesis{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidHypothesis, s)
		}
		return NoNorm(), nil
	case 2:
		h = Unconditional(Modality(fields[0]), fields[1])
	case 3:
		h = Conditional(fields[0], Modality(fields[1]), fields[2])
	default:
		return Hypothesis{}, fmt.Errorf("%w: cannot parse %q (expected 1 to 3 fields)", ErrInvalidHypothesis, s)
	}

	if err := h.Validate(); err != nil {
		return Hypothesis{}, err
	}
	return h, nil
}

// MarshalText implements encoding.TextMarshaler so hypotheses can key JSON objects.
func (h Hypothesis) MarshalText() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hypothesis) UnmarshalText(text []byte) error {
	parsed, err := ParseHypothesis(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Masses maps hypotheses to non-negative odds-ratio masses.
type Masses map[Hypothesis]float64

// UniformPrior assigns mass 1 to every hypothesis.
func UniformPrior(hypotheses ...Hypothesis) Masses {
	prior := make(Masses, len(hypotheses))
	for _, h := range hypotheses {
		prior[h] = 1
	}
	return prior
}

// Clone returns an independent copy of the masses.
func (m Masses) Clone() Masses {
	out := make(Masses, len(m))
	for h, v := range m {
		out[h] = v
	}
	return out
}

// Scored pairs a hypothesis with its current mass.
type Scored struct {
	Hypothesis Hypothesis `json:"hypothesis" yaml:"hypothesis"`
	Mass       float64    `json:"mass" yaml:"mass"`
}
