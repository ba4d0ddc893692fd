// Package sentiment scores cleaned transcript sentences. Two backends
// implement the Scorer interface and are selected through an explicit
// registry rather than string branching at call sites; the ensemble mode
// is a convex combination of both computed by the caller.
package sentiment

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoSentences is returned when a backend receives zero scoreable
// sentences. Terminal for that document, not retried.
var ErrNoSentences = errors.New("no valid sentences to score")

// Detail is one sentence's individual result, persisted alongside the
// aggregate for manual inspection.
type Detail struct {
	Index    int
	Sentence string
	Label    string
	Score    float64
}

// Result is a backend's output for one document: the aggregate score in
// [-1, 1] plus per-sentence details.
type Result struct {
	Average float64
	Details []Detail
}

// Scorer is the single capability both backends implement.
type Scorer interface {
	Name() string
	Score(sentences []string) (Result, error)
}

// Registry maps backend names to implementations.
type Registry struct {
	scorers map[string]Scorer
}

// NewRegistry registers the given scorers under their own names.
func NewRegistry(scorers ...Scorer) *Registry {
	r := &Registry{scorers: make(map[string]Scorer, len(scorers))}
	for _, s := range scorers {
		r.scorers[s.Name()] = s
	}
	return r
}

// Get looks a backend up by name.
func (r *Registry) Get(name string) (Scorer, error) {
	s, ok := r.scorers[name]
	if !ok {
		return nil, fmt.Errorf("unsupported sentiment model: %q (have %v)", name, r.Names())
	}
	return s, nil
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scorers))
	for name := range r.scorers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Combine computes the convex ensemble of two backend scores. Weights are
// validated at config load, not here.
func Combine(vader, finbert, vaderWeight, finbertWeight float64) float64 {
	return vaderWeight*vader + finbertWeight*finbert
}
