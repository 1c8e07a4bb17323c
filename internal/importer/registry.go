package importer

import (
	"fmt"
	"sync"
	"time"
)

// TaskRegistry is the process-wide store of in-flight and completed
// import tasks. One orchestrator goroutine writes per task; any number
// of readers may poll concurrently, so every operation takes the
// registry lock and read paths return copies.
type TaskRegistry struct {
	mu     sync.RWMutex
	tasks  map[string]*ImportTask
	timers map[string]*time.Timer
}

// NewTaskRegistry creates an empty registry.
func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{
		tasks:  make(map[string]*ImportTask),
		timers: make(map[string]*time.Timer),
	}
}

// CreateTask registers a new empty task.
// Returns ErrTaskExists if the id is already taken.
func (r *TaskRegistry) CreateTask(taskID, entityType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[taskID]; exists {
		return fmt.Errorf("%w: %s", ErrTaskExists, taskID)
	}

	r.tasks[taskID] = &ImportTask{
		TaskID:     taskID,
		EntityType: entityType,
	}
	return nil
}

// AddEntries appends one pending entry per row, preserving row order.
// Called exactly once per task, immediately after CreateTask.
func (r *TaskRegistry) AddEntries(taskID string, rows []Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	for _, row := range rows {
		task.Entries = append(task.Entries, ImportEntry{
			Data:   row,
			Status: StatusPending,
		})
	}
	return nil
}

// Snapshot returns a copy of the task's current state.
// Row data maps are shared; they are never mutated after ingestion.
func (r *TaskRegistry) Snapshot(taskID string) (ImportTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return ImportTask{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	snap := ImportTask{
		TaskID:     task.TaskID,
		EntityType: task.EntityType,
		Entries:    make([]ImportEntry, len(task.Entries)),
	}
	copy(snap.Entries, task.Entries)
	return snap, nil
}

// View returns the read-only projection served to polling clients.
func (r *TaskRegistry) View(taskID string) (TaskView, error) {
	snap, err := r.Snapshot(taskID)
	if err != nil {
		return TaskView{}, err
	}

	view := TaskView{
		TaskID:     snap.TaskID,
		EntityType: snap.EntityType,
		Entries:    make([]EntryView, len(snap.Entries)),
	}
	for i, e := range snap.Entries {
		view.Entries[i] = EntryView{
			Data:         e.Data,
			Status:       e.Status,
			ErrorMessage: e.ErrorMessage,
		}
	}
	return view, nil
}

// UpdateEntryStatus mutates one entry in place. Valid transitions are
// pending->success, pending->failed and failed->pending (retry reset).
// Success is terminal; attempting to overwrite it is an error.
func (r *TaskRegistry) UpdateEntryStatus(taskID string, index int, status Status, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if index < 0 || index >= len(task.Entries) {
		return fmt.Errorf("%w: %d", ErrEntryOutOfRange, index)
	}

	entry := &task.Entries[index]
	if !validTransition(entry.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, entry.Status, status)
	}

	entry.Status = status
	if status == StatusFailed {
		entry.ErrorMessage = errMsg
	} else {
		entry.ErrorMessage = ""
	}
	return nil
}

// ResetFailed flips every failed entry back to pending and clears its
// error message. Returns how many entries were reset.
func (r *TaskRegistry) ResetFailed(taskID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	reset := 0
	for i := range task.Entries {
		if task.Entries[i].Status == StatusFailed {
			task.Entries[i].Status = StatusPending
			task.Entries[i].ErrorMessage = ""
			reset++
		}
	}
	return reset, nil
}

// Evict removes a task from the registry and stops its eviction timer.
// Evicting an unknown id is a no-op so that a delayed eviction racing a
// manual one stays harmless.
func (r *TaskRegistry) Evict(taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimerLocked(taskID)
	delete(r.tasks, taskID)
}

// EvictAfter schedules eviction now that a processing pass has
// completed. At most one timer is pending per task: a previous
// schedule is replaced, not stacked. A ttl of zero disables eviction.
func (r *TaskRegistry) EvictAfter(taskID string, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopTimerLocked(taskID)
	if ttl <= 0 {
		return
	}
	if _, ok := r.tasks[taskID]; !ok {
		return
	}
	r.timers[taskID] = time.AfterFunc(ttl, func() {
		r.Evict(taskID)
	})
}

// CancelEviction stops any pending eviction timer for a task. Called
// at the start of a processing pass so a timer armed by an earlier
// pass cannot discard the task mid-pass.
func (r *TaskRegistry) CancelEviction(taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimerLocked(taskID)
}

func (r *TaskRegistry) stopTimerLocked(taskID string) {
	if t, ok := r.timers[taskID]; ok {
		t.Stop()
		delete(r.timers, taskID)
	}
}

// Len returns the number of registered tasks.
func (r *TaskRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

func validTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusSuccess || to == StatusFailed
	case StatusFailed:
		return to == StatusPending
	default: // StatusSuccess is terminal
		return false
	}
}
