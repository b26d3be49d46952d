// Package todo stores, validates, and updates the task file.
//
// The task file (tasks.json by default) holds the whole collection:
//
//	{
//	  "schema_version": 1,
//	  "next_id": 3,
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "description": "Buy groceries",
//	      "status": "todo",
//	      "created_at": "2026-10-16T09:00:00Z",
//	      "updated_at": "2026-10-16T09:00:00Z"
//	    }
//	  ]
//	}
//
// # Layers
//
// Store reads and writes the file as a unit. Repository sits on top of any
// Storage and owns the task rules: id assignment, timestamps, and status
// changes. Every Repository call loads the file first, and every mutating
// call saves the full collection before it returns.
//
// # Identifiers
//
// Ids come from the next_id counter stored in the file. Deleting a task never
// rolls the counter back, so an id is never handed out twice. On load the
// counter is raised to max(id)+1 if the file was edited by hand.
//
// # Task Status Values
//
//   - "todo": not started (initial status)
//   - "in-progress": being worked on
//   - "done": complete
//
// Any status can be set from any other, including the current one.
//
// # Validation
//
// Load validates the raw document against an embedded JSON Schema
// (draft 2020-12) and then checks that ids are unique. Problems are reported
// as a CorruptDataError carrying one entry per violation. A corrupt file is
// never rewritten.
//
// # Concurrent Invocations
//
// There is no locking. Two processes that load, modify, and save the same
// file at the same time race, and the last writer wins. Writes go through a
// temp file and rename, so a reader never observes a partially written file.
//
// # File Format
//
// When writing the file, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - RFC 3339 UTC timestamps
package todo
