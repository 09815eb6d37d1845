package status

import "strings"

// Basis names the signal a resolution came from.
type Basis string

const (
	BasisStatus   Basis = "status"
	BasisColumn   Basis = "column"
	BasisFallback Basis = "fallback"
)

// Resolution is a resolved status plus how it was reached. Matched holds the
// label or keyword that decided it.
type Resolution struct {
	Status  CanonicalStatus
	Basis   Basis
	Matched string
}

// Resolver projects a task onto its canonical status. Implementations never
// fail: unknown input resolves to TODO with BasisFallback.
type Resolver interface {
	Resolve(task Task) CanonicalStatus
	Explain(task Task) Resolution
	IsCompleted(task Task) bool
}

type compiledRule struct {
	status   CanonicalStatus
	keywords []string
	original []string
}

// KeywordResolver resolves by exact label match on the status field and
// ordered substring match on the column identifier.
type KeywordResolver struct {
	labels map[string]CanonicalStatus
	rules  []compiledRule
}

var _ Resolver = (*KeywordResolver)(nil)

// NewKeywordResolver validates t and compiles it.
func NewKeywordResolver(t Table) (*KeywordResolver, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	r := &KeywordResolver{labels: make(map[string]CanonicalStatus, len(t.Labels))}
	for label, st := range t.Labels {
		r.labels[fold(label)] = st
	}
	for _, rule := range t.Rules {
		cr := compiledRule{status: rule.Status}
		for _, kw := range rule.Keywords {
			cr.keywords = append(cr.keywords, keyword(kw))
			cr.original = append(cr.original, kw)
		}
		r.rules = append(r.rules, cr)
	}
	return r, nil
}

var defaultResolver = mustResolver(DefaultTable())

func mustResolver(t Table) *KeywordResolver {
	r, err := NewKeywordResolver(t)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the resolver built from DefaultTable.
func Default() *KeywordResolver {
	return defaultResolver
}

// ResolveStatus resolves task with the default table.
func ResolveStatus(task Task) CanonicalStatus {
	return defaultResolver.Resolve(task)
}

// IsCompleted reports whether task resolves to DONE with the default table.
func IsCompleted(task Task) bool {
	return defaultResolver.IsCompleted(task)
}

func (r *KeywordResolver) Resolve(task Task) CanonicalStatus {
	return r.Explain(task).Status
}

func (r *KeywordResolver) IsCompleted(task Task) bool {
	return r.Resolve(task) == Done
}

func (r *KeywordResolver) Explain(task Task) Resolution {
	if res, ok := r.fromStatus(task.Status); ok {
		return res
	}
	if res, ok := r.FromColumn(task.ColumnIdentifier); ok {
		return res
	}
	return Resolution{Status: Todo, Basis: BasisFallback}
}

func (r *KeywordResolver) fromStatus(raw string) (Resolution, bool) {
	if strings.TrimSpace(raw) == "" {
		return Resolution{}, false
	}
	if st, ok := ParseCanonical(raw); ok {
		return Resolution{Status: st, Basis: BasisStatus, Matched: raw}, true
	}
	if st, ok := r.labels[fold(raw)]; ok {
		return Resolution{Status: st, Basis: BasisStatus, Matched: raw}, true
	}
	return Resolution{}, false
}

// FromColumn resolves a column identifier alone. It reports false when no
// keyword matches.
func (r *KeywordResolver) FromColumn(column string) (Resolution, bool) {
	col := fold(column)
	if col == "" {
		return Resolution{}, false
	}
	for _, rule := range r.rules {
		for i, kw := range rule.keywords {
			if strings.Contains(col, kw) {
				return Resolution{Status: rule.status, Basis: BasisColumn, Matched: rule.original[i]}, true
			}
		}
	}
	return Resolution{}, false
}
