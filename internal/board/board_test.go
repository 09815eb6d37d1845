package board

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxkimambo/boardsync/internal/bus"
	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/status"
)

func quietBus() *bus.Bus {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return bus.New(bus.WithLogger(l))
}

func sampleTasks() []status.Task {
	return []status.Task{
		{ID: "1", Title: "Login", Status: "TODO", ColumnIdentifier: "a-fazer"},
		{ID: "2", Title: "Deploy", ColumnIdentifier: "em-andamento"},
		{ID: "3", Title: "Docs", Status: "Revisão", ColumnIdentifier: "concluido"},
	}
}

func TestLoadAndGet(t *testing.T) {
	b := New(quietBus())
	require.NoError(t, b.Load(append(sampleTasks(), status.Task{Title: "no id"})))

	assert.Equal(t, 4, b.Len())
	task, ok := b.Get("#4")
	require.True(t, ok)
	assert.Equal(t, "no id", task.Title)

	err := b.Load([]status.Task{{ID: "1"}})
	assert.True(t, boarderrors.IsCategory(err, boarderrors.ErrorCategoryInput))
}

func TestLoadIsAllOrNothing(t *testing.T) {
	b := New(quietBus())

	err := b.Load([]status.Task{{ID: "1"}, {ID: "2"}, {ID: "1"}})
	assert.True(t, boarderrors.IsCategory(err, boarderrors.ErrorCategoryInput))
	assert.Equal(t, 0, b.Len())

	require.NoError(t, b.Load([]status.Task{{ID: "1"}}))
	err = b.Load([]status.Task{{ID: "9"}, {ID: "1"}})
	require.Error(t, err)
	assert.Equal(t, 1, b.Len())
	_, ok := b.Get("9")
	assert.False(t, ok)
}

func TestLoadPositionalIDsSkipTakenIDs(t *testing.T) {
	b := New(quietBus())

	require.NoError(t, b.Load([]status.Task{{ID: "#2", Title: "explicit"}, {Title: "second"}, {Title: "third"}}))
	assert.Equal(t, 3, b.Len())

	ids := make([]string, 0, 3)
	for _, task := range b.Tasks() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"#2", "#3", "#4"}, ids)

	task, ok := b.Get("#2")
	require.True(t, ok)
	assert.Equal(t, "explicit", task.Title)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "status": "DONE"}, {"id": 2, "column_identifier": "pronto"}]`), 0o644))

	b, err := LoadFile(quietBus(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":`), 0o644))
	_, err = LoadFile(quietBus(), bad)
	assert.True(t, boarderrors.IsCategory(err, boarderrors.ErrorCategoryInput))

	_, err = LoadFile(quietBus(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestMovePublishesResolvedStatus(t *testing.T) {
	eb := quietBus()
	b := New(eb)
	require.NoError(t, b.Load(sampleTasks()))

	var moves []bus.TaskMoved
	require.NoError(t, eb.On(bus.TopicTaskMoved, "sprints", func(evt bus.Event) error {
		moves = append(moves, evt.Payload.(bus.TaskMoved))
		return nil
	}))

	require.NoError(t, b.Move("2", "concluido", "board"))
	// canonical status field wins over the destination column
	require.NoError(t, b.Move("1", "concluido", "board"))

	require.Len(t, moves, 2)
	assert.Equal(t, bus.TaskMoved{TaskID: "2", FromColumn: "em-andamento", ToColumn: "concluido", NewStatus: status.Done, Completed: true}, moves[0])
	assert.Equal(t, status.Todo, moves[1].NewStatus)
	assert.False(t, moves[1].Completed)

	task, _ := b.Get("2")
	assert.Equal(t, "concluido", task.ColumnIdentifier)

	err := b.Move("99", "x", "board")
	assert.True(t, boarderrors.IsCategory(err, boarderrors.ErrorCategoryInput))
}

func TestUpdateReportsRealStatusChange(t *testing.T) {
	eb := quietBus()
	b := New(eb)
	require.NoError(t, b.Load(sampleTasks()))

	var updates []bus.TaskUpdated
	require.NoError(t, eb.On(bus.TopicTaskUpdated, "status_report", func(evt bus.Event) error {
		updates = append(updates, evt.Payload.(bus.TaskUpdated))
		return nil
	}))

	require.NoError(t, b.Update("3", status.Patch{Status: status.StringPtr("CONCLUÍDO")}, "backlog"))
	require.NoError(t, b.Update("1", status.Patch{Status: status.StringPtr("todo")}, "backlog"))

	require.Len(t, updates, 2)
	assert.True(t, updates[0].StatusChanged)
	assert.Equal(t, status.Review, updates[0].PreviousStatus)
	assert.Equal(t, status.Done, updates[0].NewStatus)
	assert.False(t, updates[1].StatusChanged)
}

func TestCreateAndDelete(t *testing.T) {
	eb := quietBus()
	b := New(eb)
	require.NoError(t, b.Load(sampleTasks()))

	var topics []bus.Topic
	for _, topic := range bus.Topics {
		require.NoError(t, eb.On(topic, "probe", func(evt bus.Event) error {
			topics = append(topics, evt.Topic)
			return nil
		}))
	}

	require.NoError(t, b.Create(status.Task{ID: "4", ColumnIdentifier: "pendente"}, "board"))
	assert.Error(t, b.Create(status.Task{ID: "4"}, "board"))
	assert.Error(t, b.Create(status.Task{}, "board"))

	require.NoError(t, b.Delete("2", "board"))
	assert.Error(t, b.Delete("2", "board"))

	assert.Equal(t, []bus.Topic{bus.TopicTaskCreated, bus.TopicTaskDeleted}, topics)
	assert.Equal(t, 3, b.Len())

	// index stays consistent after removal
	task, ok := b.Get("3")
	require.True(t, ok)
	assert.Equal(t, "Docs", task.Title)
	task, ok = b.Get("4")
	require.True(t, ok)
	assert.Equal(t, "pendente", task.ColumnIdentifier)
}
