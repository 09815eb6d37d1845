package status

import (
	"fmt"
	"strings"

	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
)

// Rule maps column keywords to a status. A keyword matches anywhere in the
// column identifier; a trailing '*' is accepted and means the same thing.
type Rule struct {
	Status   CanonicalStatus
	Keywords []string
}

// Table is the data behind a KeywordResolver: legacy status labels plus the
// ordered column rules. Earlier rules win.
type Table struct {
	Labels map[string]CanonicalStatus
	Rules  []Rule
}

// DefaultTable returns the board's built-in vocabulary.
func DefaultTable() Table {
	return Table{
		Labels: map[string]CanonicalStatus{
			"CONCLUÍDO":    Done,
			"EM ANDAMENTO": InProgress,
			"REVISÃO":      Review,
			"A FAZER":      Todo,
			"ARQUIVADO":    Archived,
		},
		Rules: []Rule{
			{Status: Todo, Keywords: []string{"fazer", "todo", "pendente"}},
			{Status: InProgress, Keywords: []string{"andamento", "progress", "desenvolvimento"}},
			{Status: Review, Keywords: []string{"revisão", "revisao", "review", "teste"}},
			{Status: Done, Keywords: []string{"conclu*", "done", "finalizado", "pronto"}},
			{Status: Archived, Keywords: []string{"arquivado", "cancelado"}},
		},
	}
}

// WithLabels returns a copy of t with extra labels added. Existing labels
// with the same folded text are replaced.
func (t Table) WithLabels(labels map[string]CanonicalStatus) Table {
	merged := make(map[string]CanonicalStatus, len(t.Labels)+len(labels))
	for k, v := range t.Labels {
		merged[k] = v
	}
	for k, v := range labels {
		for existing := range merged {
			if fold(existing) == fold(k) {
				delete(merged, existing)
			}
		}
		merged[k] = v
	}
	return Table{Labels: merged, Rules: t.Rules}
}

// Validate checks that every status is canonical, every rule has a usable
// keyword and that the overdue label is not mapped to a status.
func (t Table) Validate() error {
	for label, st := range t.Labels {
		if fold(label) == "" {
			return boarderrors.NewInvalidTableError("empty label")
		}
		if fold(label) == fold(OverdueLabel) {
			return boarderrors.NewInvalidTableError(
				fmt.Sprintf("%q marks overdue tasks and cannot map to a status", label))
		}
		if !st.Valid() {
			return boarderrors.NewInvalidTableError(
				fmt.Sprintf("label %q maps to unknown status %q", label, st))
		}
	}

	if len(t.Rules) == 0 {
		return boarderrors.NewInvalidTableError("no column rules")
	}
	for i, rule := range t.Rules {
		if !rule.Status.Valid() {
			return boarderrors.NewInvalidTableError(
				fmt.Sprintf("rule %d has unknown status %q", i+1, rule.Status))
		}
		if len(rule.Keywords) == 0 {
			return boarderrors.NewInvalidTableError(fmt.Sprintf("rule %d (%s) has no keywords", i+1, rule.Status))
		}
		for _, kw := range rule.Keywords {
			if keyword(kw) == "" {
				return boarderrors.NewInvalidTableError(fmt.Sprintf("rule %d (%s) has an empty keyword", i+1, rule.Status))
			}
		}
	}
	return nil
}

func keyword(kw string) string {
	return fold(strings.TrimSuffix(strings.TrimSpace(kw), "*"))
}
