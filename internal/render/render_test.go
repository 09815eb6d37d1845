package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	table := NewTable("ID", "Status")
	table.AddRow("1", "Concluído").AddRow("22")

	out := table.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, 2, table.Rows())
	assert.Len(t, lines, 6)
	assert.Equal(t, "│ 1  │ Concluído │", lines[3])
	assert.Equal(t, "│ 22 │           │", lines[4])
	// every line has the same visible width
	for _, line := range lines {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(line)))
	}
}

func TestReportBuilder(t *testing.T) {
	out := NewReportBuilder().WithWidth(5).
		Header("Board").
		AddKeyValue("Tasks", "3").
		Section("Issues").
		AddBullet("none").
		AddIndented("x", 2).
		AddBlock("a\nb\n").
		Build()

	assert.Contains(t, out, "Board")
	assert.Contains(t, out, "=====")
	assert.Contains(t, out, "Tasks: 3\n\nIssues\n• none\n    x\na\nb")
}

func TestBoxWrapsAndFrames(t *testing.T) {
	out := Warning("2 badge mismatches", strings.Repeat("word ", 40))

	assert.Contains(t, out, "2 badge mismatches")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╯")
	assert.Greater(t, strings.Count(out, "\n"), 3)
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"ab cd", "ef"}, wrapText("ab cd ef", 5))
	assert.Equal(t, []string{""}, wrapText("   ", 5))
}
