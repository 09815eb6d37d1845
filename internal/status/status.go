package status

import "strings"

// CanonicalStatus is the five-valued task state shared by every board surface.
type CanonicalStatus string

const (
	Todo       CanonicalStatus = "TODO"
	InProgress CanonicalStatus = "IN_PROGRESS"
	Review     CanonicalStatus = "REVIEW"
	Done       CanonicalStatus = "DONE"
	Archived   CanonicalStatus = "ARCHIVED"
)

// All lists the canonical statuses in board order.
var All = []CanonicalStatus{Todo, InProgress, Review, Done, Archived}

var displayNames = map[CanonicalStatus]string{
	Todo:       "A fazer",
	InProgress: "Em andamento",
	Review:     "Revisão",
	Done:       "Concluído",
	Archived:   "Arquivado",
}

// Valid reports whether s is one of the canonical statuses.
func (s CanonicalStatus) Valid() bool {
	_, ok := displayNames[s]
	return ok
}

func (s CanonicalStatus) String() string {
	return string(s)
}

// DisplayName returns the label the board shows for s.
func (s CanonicalStatus) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

// ParseCanonical matches a canonical code, ignoring case, accents and
// '-'/' ' versus '_' separators ("in progress" matches IN_PROGRESS).
func ParseCanonical(s string) (CanonicalStatus, bool) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(fold(s))
	for _, st := range All {
		if key == strings.ToLower(string(st)) {
			return st, true
		}
	}
	return "", false
}
