package board

import (
	"sync"

	"github.com/maxkimambo/boardsync/internal/bus"
	"github.com/maxkimambo/boardsync/internal/status"
)

// View is a consumer module's private copy of task statuses, kept current
// from bus events only. The board, backlog, sprint and status report
// surfaces each hold one under their own source tag.
type View struct {
	mu       sync.RWMutex
	source   string
	statuses map[string]status.CanonicalStatus
	seen     int
}

// NewView seeds a view from tasks and subscribes it to every topic on b
// under source. Subscribing twice with the same source replaces the earlier
// view's listeners.
func NewView(b *bus.Bus, source string, tasks []status.Task) (*View, error) {
	v := &View{
		source:   source,
		statuses: make(map[string]status.CanonicalStatus, len(tasks)),
	}
	for _, t := range tasks {
		v.statuses[t.ID] = b.Resolver().Resolve(t)
	}

	for _, topic := range bus.Topics {
		if err := b.On(topic, source, v.apply); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (v *View) apply(evt bus.Event) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seen++
	switch p := evt.Payload.(type) {
	case bus.TaskCreated:
		v.statuses[p.Task.ID] = p.Status
	case bus.TaskUpdated:
		if p.StatusChanged {
			v.statuses[p.TaskID] = p.NewStatus
		}
	case bus.TaskMoved:
		v.statuses[p.TaskID] = p.NewStatus
	case bus.TaskDeleted:
		delete(v.statuses, p.TaskID)
	}
	return nil
}

// Source returns the tag the view subscribed under.
func (v *View) Source() string {
	return v.source
}

// Status returns the view's status for id.
func (v *View) Status(id string) (status.CanonicalStatus, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	st, ok := v.statuses[id]
	return st, ok
}

// Seen returns how many events the view has applied.
func (v *View) Seen() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.seen
}

// Counts returns the number of tasks per status.
func (v *View) Counts() map[status.CanonicalStatus]int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	counts := make(map[status.CanonicalStatus]int)
	for _, st := range v.statuses {
		counts[st]++
	}
	return counts
}

// Diverged lists task ids whose status in the view differs from the board
// resolved with r, plus ids present on only one side.
func (v *View) Diverged(b *Board, r status.Resolver) []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var ids []string
	onBoard := make(map[string]bool)
	for _, t := range b.Tasks() {
		onBoard[t.ID] = true
		if st, ok := v.statuses[t.ID]; !ok || st != r.Resolve(t) {
			ids = append(ids, t.ID)
		}
	}
	for id := range v.statuses {
		if !onBoard[id] {
			ids = append(ids, id)
		}
	}
	return ids
}
