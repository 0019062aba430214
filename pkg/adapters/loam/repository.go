// Package loam reads norm inference scenarios from a directory of Markdown
// (or JSON/YAML) documents managed by Loam.
//
// A Markdown scenario keeps the model in its front matter and may list
// observed traces in the body as list items or inside a fenced code block.
// Other body lines are free text:
//
//	---
//	goal: {start: a, target: d}
//	actions: [a->b, b->d, a->c->e, e->d]
//	enumerate: true
//	---
//	# Observations
//	Watched over two shifts.
//	- a b d
//	- a c ! e d
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/normsuite/pkg/scenario"
)

// Repository adapts a Loam repository to scenario lookups.
type Repository struct {
	Repo *loam.TypedRepository[ScenarioMetadata]
}

// New creates a new Loam scenario repository.
func New(repo *loam.TypedRepository[ScenarioMetadata]) *Repository {
	return &Repository{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository at path.
func Open(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as json.Number across Markdown and JSON documents.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ScenarioMetadata](repo)), nil
}

// Get loads and decodes the scenario with the given ID. Body traces follow
// the front matter traces.
func (r *Repository) Get(ctx context.Context, id string) (*scenario.Scenario, error) {
	doc, err := r.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	raw := toMap(doc.Data)
	raw["traces"] = append(append([]string(nil), doc.Data.Traces...), bodyTraces(doc.Content)...)

	s, err := scenario.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", id, err)
	}
	if s.Name == "" {
		s.Name = documentID(doc.Data.ID, doc.ID)
	}
	return s, nil
}

// List lists every scenario ID in the repository.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	docs, err := r.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := documentID(doc.Data.ID, doc.ID)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

func toMap(meta ScenarioMetadata) map[string]any {
	m := map[string]any{
		"name":       meta.Name,
		"goal":       map[string]any{"start": meta.Goal.Start, "target": meta.Goal.Target},
		"actions":    meta.Actions,
		"hypotheses": meta.Hypotheses,
		"enumerate":  meta.Enumerate,
	}
	if meta.Prior != nil {
		m["prior"] = meta.Prior
	}
	if meta.Params != nil {
		m["params"] = meta.Params
	}
	if meta.Mass != nil {
		m["mass"] = meta.Mass
	}
	if meta.Top != nil {
		m["top"] = meta.Top
	}
	return m
}

// bodyTraces extracts traces from the list items and fenced code blocks of
// a Markdown body, one per line. Every other line is prose and is ignored.
func bodyTraces(content string) []string {
	var traces []string
	fenced := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			fenced = !fenced
			continue
		}
		if !fenced {
			item, ok := listItem(line)
			if !ok {
				continue
			}
			line = strings.Trim(strings.TrimSpace(item), "`")
		}
		if line = strings.TrimSpace(line); line != "" {
			traces = append(traces, line)
		}
	}
	return traces
}

func listItem(line string) (string, bool) {
	for _, bullet := range []string{"- ", "* ", "+ "} {
		if item, ok := strings.CutPrefix(line, bullet); ok {
			return item, true
		}
	}
	return "", false
}

func documentID(metaID, docID string) string {
	raw := metaID
	if raw == "" {
		raw = docID
	}
	return trimExtension(raw)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
