package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/maxkimambo/boardsync/internal/board"
	"github.com/maxkimambo/boardsync/internal/bus"
	"github.com/maxkimambo/boardsync/internal/render"
	"github.com/maxkimambo/boardsync/internal/status"
)

// Summary holds status counts for a set of tasks
type Summary struct {
	Total      int
	ByStatus   map[status.CanonicalStatus]int
	Completed  int
	Overdue    int
	Unresolved int
}

// CompletionRate returns completed tasks as a percentage of all tasks
func (s Summary) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// Summarize counts tasks per canonical status using r
func Summarize(tasks []status.Task, r status.Resolver) Summary {
	s := Summary{
		Total:    len(tasks),
		ByStatus: make(map[status.CanonicalStatus]int),
	}
	for _, task := range tasks {
		res := r.Explain(task)
		s.ByStatus[res.Status]++
		if res.Status == status.Done {
			s.Completed++
		}
		if res.Basis == status.BasisFallback {
			s.Unresolved++
		}
		if task.IsOverdue() {
			s.Overdue++
		}
	}
	return s
}

// Reporter renders status reports and bus diagnostics
type Reporter struct {
	startTime time.Time
}

// NewReporter creates a new reporter
func NewReporter() *Reporter {
	return &Reporter{startTime: time.Now()}
}

// Render generates the status report for a summary
func (r *Reporter) Render(s Summary) string {
	rb := render.NewReportBuilder().Header("Status Report")

	rb.AddLine(fmt.Sprintf("Progress: %d/%d tasks completed (%.1f%%)",
		s.Completed, s.Total, s.CompletionRate()))
	if s.Overdue > 0 {
		rb.AddLine(fmt.Sprintf("Overdue: %d", s.Overdue))
	}
	if s.Unresolved > 0 {
		rb.AddLine(fmt.Sprintf("Unresolved (defaulted to %s): %d", status.Todo, s.Unresolved))
	}

	table := render.NewTable("Status", "Label", "Tasks")
	for _, st := range status.All {
		table.AddRow(string(st), st.DisplayName(), fmt.Sprintf("%d", s.ByStatus[st]))
	}
	rb.Section("By status:").AddBlock(table.String())

	return rb.Build()
}

// RenderTasks renders one row per task with its resolution
func (r *Reporter) RenderTasks(tasks []status.Task, resolver status.Resolver) string {
	table := render.NewTable("ID", "Title", "Status field", "Column", "Resolved", "Via", "Done", "Overdue")
	for _, task := range tasks {
		res := resolver.Explain(task)
		via := string(res.Basis)
		if res.Matched != "" {
			via = fmt.Sprintf("%s (%s)", res.Basis, res.Matched)
		}
		table.AddRow(task.ID, task.Title, task.Status, task.ColumnIdentifier,
			string(res.Status), via, yesNo(res.Status == status.Done), yesNo(task.IsOverdue()))
	}
	return table.String()
}

// RenderIssues renders audit findings
func (r *Reporter) RenderIssues(issues []board.Issue) string {
	if len(issues) == 0 {
		return render.Success("Badges consistent", "Every task's status and column agree on completion.")
	}

	box := render.NewBox(render.InfoMessage, fmt.Sprintf("%d finding(s)", len(issues)))
	if board.HasBlocking(issues) {
		box = render.NewBox(render.WarningMessage, fmt.Sprintf("%d finding(s), badges would disagree", len(issues)))
	}
	for _, issue := range issues {
		box.AddBullet(fmt.Sprintf("[%s] task %s: %s", issue.Kind, issue.Task.ID, issue.Detail))
	}
	return box.Render()
}

// RenderStats formats bus diagnostics
func (r *Reporter) RenderStats(s bus.Stats) string {
	rb := render.NewReportBuilder().Header("Bus Stats")
	rb.AddKeyValue("Topics", fmt.Sprintf("%d", s.Topics)).
		AddKeyValue("Listeners", fmt.Sprintf("%d", s.Listeners)).
		AddKeyValue("Emitted", fmt.Sprintf("%d", s.TotalEmitted())).
		AddKeyValue("Deliveries", fmt.Sprintf("%d", s.Deliveries)).
		AddKeyValue("Listener failures", fmt.Sprintf("%d", s.Failures))

	table := render.NewTable("Topic", "Emitted", "Sources")
	for _, topic := range bus.Topics {
		sources := append([]string(nil), s.Sources[topic]...)
		sort.Strings(sources)
		table.AddRow(string(topic), fmt.Sprintf("%d", s.Emitted[topic]), strings.Join(sources, ", "))
	}
	rb.Section("Per topic:").AddBlock(table.String())
	rb.AddLine(fmt.Sprintf("Elapsed: %s", FormatDuration(time.Since(r.startTime))))

	return rb.Build()
}

// FormatDuration formats a duration in a user-friendly way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
