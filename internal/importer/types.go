// Package importer provides the bulk-import subsystem: it turns an
// uploaded tabular file into a task of per-row create operations,
// processes the task sequentially in the background, tracks per-row
// outcome, supports retrying failed rows, and broadcasts progress
// events to any number of live subscribers.
package importer

import "errors"

// Status is the processing state of one import entry.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Row is one source row keyed by column header.
type Row map[string]string

// ImportEntry is one row of a task and its processing outcome.
// ErrorMessage is non-empty iff Status is StatusFailed.
type ImportEntry struct {
	Data         Row
	Status       Status
	ErrorMessage string
}

// ImportTask is one import batch tied to a single uploaded file and
// entity type. Entries keep source row order; the slice length is fixed
// after ingestion, only element statuses mutate.
type ImportTask struct {
	TaskID     string
	EntityType string
	Entries    []ImportEntry
}

// EntryView is the read-only projection of one entry.
type EntryView struct {
	Data         Row    `json:"data"`
	Status       Status `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// TaskView is the read-only projection of a task for polling clients.
type TaskView struct {
	TaskID     string      `json:"task_id"`
	EntityType string      `json:"entity_type"`
	Entries    []EntryView `json:"entries"`
}

// Progress event type discriminators, as seen on the wire.
const (
	EventEntryUpdate  = "entry_update"
	EventTaskComplete = "task_complete"
)

// Event is a progress event published for a task. Exactly two shapes
// exist: EntryUpdate and TaskComplete.
type Event interface {
	EventType() string
}

// EntryUpdate reports the outcome of one processed entry.
type EntryUpdate struct {
	Type         string `json:"type"`
	EntryIndex   int    `json:"entry_index"`
	Status       Status `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// EventType implements Event.
func (e EntryUpdate) EventType() string { return EventEntryUpdate }

// TaskComplete is the final event of a processing pass. FinalStatus
// holds every entry's state in source row order, including entries the
// pass did not touch.
type TaskComplete struct {
	Type        string   `json:"type"`
	FinalStatus []Status `json:"final_status"`
}

// EventType implements Event.
func (e TaskComplete) EventType() string { return EventTaskComplete }

func newEntryUpdate(index int, status Status, errMsg string) EntryUpdate {
	return EntryUpdate{
		Type:         EventEntryUpdate,
		EntryIndex:   index,
		Status:       status,
		ErrorMessage: errMsg,
	}
}

func newTaskComplete(statuses []Status) TaskComplete {
	return TaskComplete{
		Type:        EventTaskComplete,
		FinalStatus: statuses,
	}
}

// Errors reported by the import subsystem. Unknown task and entity type
// are hard failures surfaced to the caller; per-entry failures are
// recorded on the entry itself and never abort a pass.
var (
	ErrTaskNotFound      = errors.New("import task not found")
	ErrTaskExists        = errors.New("import task already exists")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrEntryOutOfRange   = errors.New("entry index out of range")
	ErrInvalidTransition = errors.New("invalid entry status transition")
)
