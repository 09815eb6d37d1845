// Package status resolves the canonical status of a board task.
//
// Tasks reach the board with heterogeneous status data: enumerated codes
// ("DONE"), legacy Portuguese labels ("CONCLUÍDO", "Em andamento"), numbers,
// or nothing at all, alongside the slug of the column they sit in. A
// Resolver projects all of that onto one of five CanonicalStatus values so
// every surface (board badges, backlog rows, sprint view, status report)
// agrees on whether a task is done.
//
// Resolution order:
//
//  1. the status field, when it is a canonical code or a known legacy label
//  2. the column identifier, by ordered keyword substring match
//  3. TODO
//
// "ATRASADO" (overdue) is a display flag, never a status. See Task.IsOverdue.
package status
