// Package bus is the in-process notification bus shared by the board,
// backlog, sprint and status report modules.
//
// The composition root builds one Bus with New and hands it to every module
// that produces or consumes task changes. Listeners are keyed by
// (topic, source): registering again under the same source replaces the
// previous listener, so a module that re-renders and re-subscribes never
// ends up with duplicate notification chains.
//
// Delivery is synchronous, in registration order, in the emitter's
// goroutine. A listener that returns an error or panics is logged and
// counted; the remaining listeners still run and the emitter never sees the
// failure. An emitter's own listeners are not skipped: compare Event.Source
// inside the listener when that matters.
//
// Topics are a closed set and each topic has exactly one payload type:
//
//	task_created  TaskCreated
//	task_updated  TaskUpdated
//	task_moved    TaskMoved
//	task_deleted  TaskDeleted
package bus
