package bus

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maxkimambo/boardsync/internal/status"
)

func TestEmitTaskUpdatedDebugScenario(t *testing.T) {
	b, _ := newTestBus(t)
	rec := &recorder{}
	require.NoError(t, b.On(TopicTaskUpdated, "sync_probe", rec.listen))

	patch, err := status.ParsePatch([]byte(`{"status": 15}`))
	require.NoError(t, err)
	require.NoError(t, b.EmitTaskUpdated("999", patch, "debug_test"))

	require.Len(t, rec.events, 1)
	evt := rec.events[0]
	assert.Equal(t, "debug_test", evt.Source())

	payload, ok := evt.Payload.(TaskUpdated)
	require.True(t, ok)
	assert.Equal(t, "999", payload.TaskID)
	assert.True(t, payload.StatusChanged)
	assert.Equal(t, status.Todo, payload.NewStatus)
	assert.Empty(t, payload.PreviousStatus)
}

func TestEmitTaskUpdatedResolvesPatch(t *testing.T) {
	tests := []struct {
		name    string
		patch   status.Patch
		changed bool
		want    status.CanonicalStatus
	}{
		{"status label", status.Patch{Status: status.StringPtr("Concluído")}, true, status.Done},
		{"column only", status.Patch{ColumnIdentifier: status.StringPtr("em-revisao")}, true, status.Review},
		{"status beats column", status.Patch{Status: status.StringPtr("REVISÃO"), ColumnIdentifier: status.StringPtr("concluido")}, true, status.Review},
		{"title only", status.Patch{Title: status.StringPtr("x")}, false, status.Todo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBus(t)
			rec := &recorder{}
			require.NoError(t, b.On(TopicTaskUpdated, "board", rec.listen))

			require.NoError(t, b.EmitTaskUpdated("1", tt.patch, "backlog"))
			require.Len(t, rec.events, 1)
			payload := rec.events[0].Payload.(TaskUpdated)
			assert.Equal(t, tt.changed, payload.StatusChanged)
			assert.Equal(t, tt.want, payload.NewStatus)
		})
	}
}

func TestEmitTaskCreatedAndMoved(t *testing.T) {
	b, _ := newTestBus(t)
	rec := &recorder{}
	require.NoError(t, b.On(TopicTaskCreated, "status_report", rec.listen))
	require.NoError(t, b.On(TopicTaskMoved, "status_report", rec.listen))

	require.NoError(t, b.EmitTaskCreated(status.Task{ID: "7", Status: "ATRASADO", ColumnIdentifier: "pendente"}, "board"))
	require.NoError(t, b.EmitTaskMoved("7", "pendente", "finalizado", "board"))

	require.Len(t, rec.events, 2)
	created := rec.events[0].Payload.(TaskCreated)
	assert.Equal(t, status.Todo, created.Status)
	assert.True(t, created.Overdue)

	moved := rec.events[1].Payload.(TaskMoved)
	assert.Equal(t, "pendente", moved.FromColumn)
	assert.Equal(t, "finalizado", moved.ToColumn)
	assert.Equal(t, status.Done, moved.NewStatus)
	assert.True(t, moved.Completed)
}

func TestWithResolver(t *testing.T) {
	r, err := status.NewKeywordResolver(status.Table{
		Rules: []status.Rule{{Status: status.Done, Keywords: []string{"shipped"}}},
	})
	require.NoError(t, err)

	b := New(WithResolver(r))
	rec := &recorder{}
	require.NoError(t, b.On(TopicTaskMoved, "board", rec.listen))
	require.NoError(t, b.EmitTaskMoved("1", "", "shipped", "test"))

	assert.Same(t, r, b.Resolver())
	assert.Equal(t, status.Done, rec.events[0].Payload.(TaskMoved).NewStatus)
}

func TestWithNilResolverKeepsDefault(t *testing.T) {
	b := New(WithResolver(nil))
	rec := &recorder{}
	require.NoError(t, b.On(TopicTaskCreated, "board", rec.listen))

	require.NotPanics(t, func() {
		require.NoError(t, b.EmitTaskCreated(status.Task{ID: "1", Status: "Concluído"}, "backlog"))
	})
	assert.Same(t, status.Default(), b.Resolver())
	require.Len(t, rec.events, 1)
	assert.Equal(t, status.Done, rec.events[0].Payload.(TaskCreated).Status)
}

// MockResolver implements status.Resolver for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(task status.Task) status.CanonicalStatus {
	args := m.Called(task)
	return args.Get(0).(status.CanonicalStatus)
}

func (m *MockResolver) Explain(task status.Task) status.Resolution {
	args := m.Called(task)
	return args.Get(0).(status.Resolution)
}

func (m *MockResolver) IsCompleted(task status.Task) bool {
	args := m.Called(task)
	return args.Bool(0)
}

func TestEmittersConsultResolver(t *testing.T) {
	r := &MockResolver{}
	l := logrus.New()
	l.SetOutput(io.Discard)
	b := New(WithResolver(r), WithLogger(l))

	created := status.Task{ID: "7", Status: "Atrasado", ColumnIdentifier: "a-fazer"}
	moved := status.Task{ID: "7", ColumnIdentifier: "concluido"}
	updated := status.Task{ID: "7", Status: "15"}

	r.On("Resolve", created).Return(status.Todo).Once()
	r.On("Resolve", moved).Return(status.Done).Once()
	r.On("IsCompleted", moved).Return(true).Once()
	r.On("Resolve", updated).Return(status.Todo).Once()

	rec := &recorder{}
	for _, topic := range Topics {
		require.NoError(t, b.On(topic, "status_report", rec.listen))
	}

	require.NoError(t, b.EmitTaskCreated(created, "board"))
	require.NoError(t, b.EmitTaskMoved("7", "a-fazer", "concluido", "board"))
	require.NoError(t, b.EmitTaskUpdated("7", status.Patch{Status: status.StringPtr("15")}, "debug_test"))
	require.NoError(t, b.EmitTaskDeleted("7", "backlog"))

	r.AssertExpectations(t)
	require.Len(t, rec.events, 4)

	c := rec.events[0].Payload.(TaskCreated)
	assert.Equal(t, status.Todo, c.Status)
	assert.True(t, c.Overdue)

	m := rec.events[1].Payload.(TaskMoved)
	assert.True(t, m.Completed)
	assert.Equal(t, status.Done, m.NewStatus)

	assert.Equal(t, "7", TaskID(rec.events[3].Payload))
	r.AssertNotCalled(t, "Explain", mock.Anything)
}
