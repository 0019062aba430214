package domain

import (
	"fmt"
	"strings"
)

// SanctionMarker is the legacy trace token meaning "the preceding node was
// followed by a sanction". It must never be used as a node name.
const SanctionMarker = "!"

// Step is one observed node and whether a sanction followed it.
type Step struct {
	Node       Node `json:"node" yaml:"node"`
	Sanctioned bool `json:"sanctioned,omitempty" yaml:"sanctioned,omitempty"`
}

// Trace is an observed trajectory through the plan graph.
type Trace []Step

// ParseTokens translates the legacy marker-interleaved encoding into a Trace.
// Consecutive markers collapse onto the same step. A marker with no preceding
// node is rejected.
func ParseTokens(tokens []string) (Trace, error) {
	trace := make(Trace, 0, len(tokens))
	for i, tok := range tokens {
		if tok == SanctionMarker {
			if len(trace) == 0 {
				return nil, fmt.Errorf("%w: sanction marker at position %d has no preceding node", ErrMalformedTrace, i)
			}
			trace[len(trace)-1].Sanctioned = true
			continue
		}
		if tok == "" {
			return nil, fmt.Errorf("%w: empty node at position %d", ErrMalformedTrace, i)
		}
		trace = append(trace, Step{Node: tok})
	}
	return trace, nil
}

// ParseTraceString splits a whitespace-separated token string and parses it
// with ParseTokens, e.g. "a b d !".
func ParseTraceString(s string) (Trace, error) {
	return ParseTokens(strings.Fields(s))
}

// Path returns the clean node path with sanctions removed.
func (t Trace) Path() Path {
	path := make(Path, len(t))
	for i, s := range t {
		path[i] = s.Node
	}
	return path
}

// SanctionedPositions returns the set of positions i+1 for every step i that
// was sanctioned. A violation at path index i is punished iff i+1 is in the set.
func (t Trace) SanctionedPositions() map[int]bool {
	positions := make(map[int]bool)
	for i, s := range t {
		if s.Sanctioned {
			positions[i+1] = true
		}
	}
	return positions
}

// Tokens renders the trace back into the legacy encoding.
func (t Trace) Tokens() []string {
	tokens := make([]string, 0, len(t))
	for _, s := range t {
		tokens = append(tokens, s.Node)
		if s.Sanctioned {
			tokens = append(tokens, SanctionMarker)
		}
	}
	return tokens
}

func (t Trace) String() string {
	return strings.Join(t.Tokens(), " ")
}
