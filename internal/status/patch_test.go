package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatch(t *testing.T) {
	p, err := ParsePatch([]byte(`{"status": 15, "column": "revisao", "atrasado": true, "priority": 2}`))
	require.NoError(t, err)

	require.NotNil(t, p.Status)
	assert.Equal(t, "15", *p.Status)
	require.NotNil(t, p.ColumnIdentifier)
	assert.Equal(t, "revisao", *p.ColumnIdentifier)
	require.NotNil(t, p.Overdue)
	assert.True(t, *p.Overdue)
	assert.Nil(t, p.Title)
	assert.Equal(t, map[string]any{"priority": float64(2)}, p.Fields)
	assert.True(t, p.TouchesStatus())
}

func TestParsePatchErrors(t *testing.T) {
	_, err := ParsePatch([]byte(`[1]`))
	assert.Error(t, err)

	_, err = ParsePatch([]byte(`{`))
	assert.Error(t, err)
}

func TestPatchApply(t *testing.T) {
	task := Task{ID: "1", Title: "a", Status: "TODO", ColumnIdentifier: "a-fazer"}

	got := Patch{ColumnIdentifier: StringPtr("concluido")}.Apply(task)
	assert.Equal(t, "concluido", got.ColumnIdentifier)
	assert.Equal(t, "TODO", got.Status)
	assert.Equal(t, "a-fazer", task.ColumnIdentifier)

	assert.False(t, Patch{Title: StringPtr("b")}.TouchesStatus())
}
