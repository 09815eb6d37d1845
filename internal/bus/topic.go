package bus

import (
	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
)

// Topic names a kind of task lifecycle event.
type Topic string

const (
	TopicTaskCreated Topic = "task_created"
	TopicTaskUpdated Topic = "task_updated"
	TopicTaskMoved   Topic = "task_moved"
	TopicTaskDeleted Topic = "task_deleted"
)

// Topics lists every topic in declaration order.
var Topics = []Topic{TopicTaskCreated, TopicTaskUpdated, TopicTaskMoved, TopicTaskDeleted}

// Valid reports whether t is a known topic.
func (t Topic) Valid() bool {
	for _, known := range Topics {
		if t == known {
			return true
		}
	}
	return false
}

func (t Topic) String() string {
	return string(t)
}

// ParseTopic returns the topic named s.
func ParseTopic(s string) (Topic, error) {
	t := Topic(s)
	if !t.Valid() {
		return "", boarderrors.NewUnknownTopicError(s)
	}
	return t, nil
}
