package board

import (
	"fmt"
	"os"
	"sync"

	"github.com/maxkimambo/boardsync/internal/bus"
	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/status"
)

// Board is an in-memory task list that publishes every change on a bus.
// Events are emitted after the board lock is released, so listeners may
// read the board.
type Board struct {
	mu    sync.RWMutex
	tasks []status.Task
	index map[string]int
	bus   *bus.Bus
}

// New creates an empty board publishing on b.
func New(b *bus.Bus) *Board {
	return &Board{
		index: make(map[string]int),
		bus:   b,
	}
}

// LoadFile reads a JSON task array from path ("-" is not handled here).
func LoadFile(b *bus.Bus, path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}
	tasks, err := status.ParseTasks(data)
	if err != nil {
		return nil, boarderrors.NewMalformedInputError(path, err)
	}
	board := New(b)
	if err := board.Load(tasks); err != nil {
		return nil, err
	}
	return board, nil
}

// Load seeds the board without emitting events. The batch is checked as a
// whole first: on error the board is unchanged. Tasks without an id get
// "#N" from their position, skipping numbers already taken.
func (b *Board) Load(tasks []status.Task) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	taken := make(map[string]bool, len(b.index)+len(tasks))
	for id := range b.index {
		taken[id] = true
	}
	for _, task := range tasks {
		if task.ID == "" {
			continue
		}
		if taken[task.ID] {
			return boarderrors.NewDuplicateTaskError(task.ID)
		}
		taken[task.ID] = true
	}

	batch := make([]status.Task, len(tasks))
	for i, task := range tasks {
		if task.ID == "" {
			n := i + 1
			for taken[fmt.Sprintf("#%d", n)] {
				n++
			}
			task.ID = fmt.Sprintf("#%d", n)
			taken[task.ID] = true
		}
		batch[i] = task
	}

	for _, task := range batch {
		b.index[task.ID] = len(b.tasks)
		b.tasks = append(b.tasks, task)
	}
	return nil
}

// Tasks returns a copy of the board in load order.
func (b *Board) Tasks() []status.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]status.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Get returns the task with id.
func (b *Board) Get(id string) (status.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, ok := b.index[id]
	if !ok {
		return status.Task{}, false
	}
	return b.tasks[i], true
}

// Len returns the number of tasks.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tasks)
}

// Create adds task and publishes task_created.
func (b *Board) Create(task status.Task, source string) error {
	if task.ID == "" {
		return boarderrors.NewValidationFailedError("id", "", "Task creation")
	}

	b.mu.Lock()
	if _, exists := b.index[task.ID]; exists {
		b.mu.Unlock()
		return boarderrors.NewDuplicateTaskError(task.ID)
	}
	b.index[task.ID] = len(b.tasks)
	b.tasks = append(b.tasks, task)
	b.mu.Unlock()

	return b.bus.EmitTaskCreated(task, source)
}

// Update applies patch and publishes task_updated with the status resolved
// before and after the change.
func (b *Board) Update(id string, patch status.Patch, source string) error {
	before, after, err := b.mutate(id, "Task update", patch.Apply)
	if err != nil {
		return err
	}

	r := b.bus.Resolver()
	prev, next := r.Resolve(before), r.Resolve(after)
	return b.bus.Emit(bus.TopicTaskUpdated, bus.TaskUpdated{
		TaskID:         id,
		Patch:          patch,
		StatusChanged:  prev != next,
		PreviousStatus: prev,
		NewStatus:      next,
	}, source)
}

// Move changes the task's column and publishes task_moved. The new status
// is resolved from the whole task, so a canonical status field still wins
// over the destination column.
func (b *Board) Move(id, toColumn, source string) error {
	before, after, err := b.mutate(id, "Task move", func(t status.Task) status.Task {
		t.ColumnIdentifier = toColumn
		return t
	})
	if err != nil {
		return err
	}

	r := b.bus.Resolver()
	return b.bus.Emit(bus.TopicTaskMoved, bus.TaskMoved{
		TaskID:     id,
		FromColumn: before.ColumnIdentifier,
		ToColumn:   toColumn,
		NewStatus:  r.Resolve(after),
		Completed:  r.IsCompleted(after),
	}, source)
}

// Delete removes the task and publishes task_deleted.
func (b *Board) Delete(id, source string) error {
	b.mu.Lock()
	i, ok := b.index[id]
	if !ok {
		b.mu.Unlock()
		return boarderrors.NewTaskNotFoundError(id, "Task deletion")
	}
	b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
	delete(b.index, id)
	for j := i; j < len(b.tasks); j++ {
		b.index[b.tasks[j].ID] = j
	}
	b.mu.Unlock()

	return b.bus.EmitTaskDeleted(id, source)
}

func (b *Board) mutate(id, operation string, fn func(status.Task) status.Task) (before, after status.Task, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.index[id]
	if !ok {
		return before, after, boarderrors.NewTaskNotFoundError(id, operation)
	}
	before = b.tasks[i]
	after = fn(before)
	after.ID = before.ID
	b.tasks[i] = after
	return before, after, nil
}
