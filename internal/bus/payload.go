package bus

import "github.com/maxkimambo/boardsync/internal/status"

// Payload is the data carried by an event. Each payload type belongs to
// exactly one topic; the set is closed to this package.
type Payload interface {
	Topic() Topic
	isPayload()
}

// TaskCreated is published after a task is added to the board.
type TaskCreated struct {
	Task    status.Task
	Status  status.CanonicalStatus
	Overdue bool
}

// TaskUpdated is published after task fields change. StatusChanged is set
// when the update touches status or column; NewStatus is the status resolved
// after the update. PreviousStatus is empty when the emitter does not know it.
type TaskUpdated struct {
	TaskID         string
	Patch          status.Patch
	StatusChanged  bool
	PreviousStatus status.CanonicalStatus
	NewStatus      status.CanonicalStatus
}

// TaskMoved is published after a task changes column.
type TaskMoved struct {
	TaskID     string
	FromColumn string
	ToColumn   string
	NewStatus  status.CanonicalStatus
	Completed  bool
}

// TaskDeleted is published after a task is removed from the board.
type TaskDeleted struct {
	TaskID string
}

func (TaskCreated) Topic() Topic { return TopicTaskCreated }
func (TaskUpdated) Topic() Topic { return TopicTaskUpdated }
func (TaskMoved) Topic() Topic   { return TopicTaskMoved }
func (TaskDeleted) Topic() Topic { return TopicTaskDeleted }

func (TaskCreated) isPayload() {}
func (TaskUpdated) isPayload() {}
func (TaskMoved) isPayload()   {}
func (TaskDeleted) isPayload() {}

// TaskID returns the id of the task an event is about.
func TaskID(p Payload) string {
	switch v := p.(type) {
	case TaskCreated:
		return v.Task.ID
	case TaskUpdated:
		return v.TaskID
	case TaskMoved:
		return v.TaskID
	case TaskDeleted:
		return v.TaskID
	}
	return ""
}
