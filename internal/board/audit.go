package board

import (
	"fmt"

	"github.com/maxkimambo/boardsync/internal/status"
)

// IssueKind classifies a badge consistency problem.
type IssueKind string

const (
	// IssueBadgeMismatch: the status field and the column disagree on
	// whether the task is complete, so badge and overlay would disagree.
	IssueBadgeMismatch IssueKind = "badge_mismatch"

	// IssueColumnDrift: status and column resolve to different non-done states.
	IssueColumnDrift IssueKind = "column_drift"

	// IssueUnresolved: neither status nor column matched; the task fell back to TODO.
	IssueUnresolved IssueKind = "unresolved"

	// IssueOverdueCompleted: a completed task still carries the overdue flag.
	IssueOverdueCompleted IssueKind = "overdue_completed"
)

// Blocking reports whether the issue means two surfaces show different things.
func (k IssueKind) Blocking() bool {
	return k == IssueBadgeMismatch || k == IssueOverdueCompleted
}

// Issue is a single audit finding.
type Issue struct {
	Kind         IssueKind
	Task         status.Task
	Resolved     status.CanonicalStatus
	ColumnStatus status.CanonicalStatus
	Detail       string
}

// Audit checks every task for status/column disagreements that would make
// completion badges inconsistent across surfaces. Resolved is always what r
// says, the single source of truth.
func Audit(tasks []status.Task, r status.Resolver) []Issue {
	var issues []Issue
	for _, task := range tasks {
		res := r.Explain(task)
		column := r.Explain(status.Task{ColumnIdentifier: task.ColumnIdentifier})

		switch {
		case res.Basis == status.BasisFallback:
			issues = append(issues, Issue{
				Kind:     IssueUnresolved,
				Task:     task,
				Resolved: res.Status,
				Detail:   fmt.Sprintf("status %q and column %q match no rule", task.Status, task.ColumnIdentifier),
			})
		case res.Basis == status.BasisStatus && column.Basis == status.BasisColumn && column.Status != res.Status:
			kind := IssueColumnDrift
			if (res.Status == status.Done) != (column.Status == status.Done) {
				kind = IssueBadgeMismatch
			}
			issues = append(issues, Issue{
				Kind:         kind,
				Task:         task,
				Resolved:     res.Status,
				ColumnStatus: column.Status,
				Detail: fmt.Sprintf("status %q resolves to %s but column %q implies %s",
					task.Status, res.Status, task.ColumnIdentifier, column.Status),
			})
		}

		if res.Status == status.Done && task.IsOverdue() {
			issues = append(issues, Issue{
				Kind:     IssueOverdueCompleted,
				Task:     task,
				Resolved: res.Status,
				Detail:   "completed task still flagged atrasado",
			})
		}
	}
	return issues
}

// HasBlocking reports whether any issue is blocking.
func HasBlocking(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Kind.Blocking() {
			return true
		}
	}
	return false
}
