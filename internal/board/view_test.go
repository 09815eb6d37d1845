package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxkimambo/boardsync/internal/status"
)

func TestViewsFollowBoard(t *testing.T) {
	eb := quietBus()
	b := New(eb)
	require.NoError(t, b.Load(sampleTasks()))

	sources := []string{"board", "backlog", "sprints", "status_report"}
	views := make([]*View, 0, len(sources))
	for _, src := range sources {
		v, err := NewView(eb, src, b.Tasks())
		require.NoError(t, err)
		views = append(views, v)
	}

	require.NoError(t, b.Move("2", "concluido", "board"))
	require.NoError(t, b.Update("3", status.Patch{Status: status.StringPtr("DONE")}, "backlog"))
	require.NoError(t, b.Create(status.Task{ID: "9", ColumnIdentifier: "em-revisao"}, "sprints"))
	require.NoError(t, b.Delete("1", "status_report"))

	for _, v := range views {
		assert.Empty(t, v.Diverged(b, eb.Resolver()), v.Source())
		assert.Equal(t, 4, v.Seen())

		st, ok := v.Status("2")
		require.True(t, ok)
		assert.Equal(t, status.Done, st)

		_, ok = v.Status("1")
		assert.False(t, ok)
		assert.Equal(t, map[status.CanonicalStatus]int{status.Done: 2, status.Review: 1}, v.Counts())
	}

	assert.Equal(t, 16, eb.Stats().Listeners)
}

func TestViewResubscribeReplacesListeners(t *testing.T) {
	eb := quietBus()
	b := New(eb)
	require.NoError(t, b.Load(sampleTasks()))

	old, err := NewView(eb, "board", b.Tasks())
	require.NoError(t, err)
	fresh, err := NewView(eb, "board", b.Tasks())
	require.NoError(t, err)

	require.NoError(t, b.Move("1", "pronto", "board"))

	assert.Equal(t, 0, old.Seen())
	assert.Equal(t, 1, fresh.Seen())
	assert.Equal(t, 4, eb.Stats().Listeners)
}

func TestViewDetectsDivergence(t *testing.T) {
	eb := quietBus()
	b := New(eb)
	require.NoError(t, b.Load(sampleTasks()))

	v, err := NewView(eb, "backlog", b.Tasks())
	require.NoError(t, err)
	eb.Off("task_moved", "backlog")

	require.NoError(t, b.Move("2", "concluido", "board"))
	assert.Equal(t, []string{"2"}, v.Diverged(b, eb.Resolver()))
}
