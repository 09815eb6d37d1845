package bus

import "github.com/maxkimambo/boardsync/internal/status"

// EmitTaskCreated publishes task on task_created with its resolved status.
func (b *Bus) EmitTaskCreated(task status.Task, source string) error {
	return b.Emit(TopicTaskCreated, TaskCreated{
		Task:    task,
		Status:  b.resolver.Resolve(task),
		Overdue: task.IsOverdue(),
	}, source)
}

// EmitTaskUpdated publishes patch on task_updated. The new status is resolved
// from the patched fields alone; emitters that hold the full task build a
// TaskUpdated themselves and call Emit.
func (b *Bus) EmitTaskUpdated(taskID string, patch status.Patch, source string) error {
	return b.Emit(TopicTaskUpdated, TaskUpdated{
		TaskID:        taskID,
		Patch:         patch,
		StatusChanged: patch.TouchesStatus(),
		NewStatus:     b.resolver.Resolve(patch.Apply(status.Task{ID: taskID})),
	}, source)
}

// EmitTaskMoved publishes a column change on task_moved. The new status is
// resolved from the destination column.
func (b *Bus) EmitTaskMoved(taskID, fromColumn, toColumn, source string) error {
	moved := status.Task{ID: taskID, ColumnIdentifier: toColumn}
	return b.Emit(TopicTaskMoved, TaskMoved{
		TaskID:     taskID,
		FromColumn: fromColumn,
		ToColumn:   toColumn,
		NewStatus:  b.resolver.Resolve(moved),
		Completed:  b.resolver.IsCompleted(moved),
	}, source)
}

// EmitTaskDeleted publishes taskID on task_deleted.
func (b *Bus) EmitTaskDeleted(taskID, source string) error {
	return b.Emit(TopicTaskDeleted, TaskDeleted{TaskID: taskID}, source)
}
