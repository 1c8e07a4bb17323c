package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Options tunes the orchestrator's hardening knobs.
type Options struct {
	// EntryTimeout bounds a single entry's create operation so one
	// stuck collaborator call cannot stall the rest of the task's
	// queue forever. Zero disables the per-entry timeout.
	EntryTimeout time.Duration

	// TaskTTL is how long a completed task stays readable in the
	// registry before eviction. Zero keeps tasks for the process
	// lifetime.
	TaskTTL time.Duration
}

// Service orchestrates bulk imports: it ingests parsed rows into a new
// task and drives the asynchronous processing passes, delegating each
// entry to the matching EntityImporter and publishing progress events.
type Service struct {
	registry  *TaskRegistry
	broker    *Broker
	importers map[string]EntityImporter
	opts      Options
}

// NewService wires the orchestrator. The registry and broker are
// injected so HTTP handlers and tests share the same instances.
func NewService(registry *TaskRegistry, broker *Broker, creator EntityCreator, images ImageUploader, opts Options) *Service {
	return &Service{
		registry:  registry,
		broker:    broker,
		importers: newImporters(creator, images),
		opts:      opts,
	}
}

// CreateTask parses the uploaded file into rows, registers a new task
// holding one pending entry per row, and returns without processing
// anything. Processing is started separately so the upload response can
// return immediately with the previewable row list.
func (s *Service) CreateTask(entityType, fileName string, data []byte) (string, []Row, error) {
	if _, ok := s.importers[entityType]; !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}

	rows, err := ParseRows(fileName, data)
	if err != nil {
		return "", nil, err
	}

	taskID := uuid.New().String()
	if err := s.registry.CreateTask(taskID, entityType); err != nil {
		return "", nil, err
	}
	if err := s.registry.AddEntries(taskID, rows); err != nil {
		return "", nil, err
	}

	tasksStarted.WithLabelValues(entityType).Inc()
	slog.Info("import task created",
		"task_id", taskID,
		"entity_type", entityType,
		"file", fileName,
		"rows", len(rows),
	)
	return taskID, rows, nil
}

// StartProcess runs the initial processing pass on a fresh goroutine.
// The caller is never blocked on it.
func (s *Service) StartProcess(taskID string) {
	go func() {
		if err := s.ProcessTask(context.Background(), taskID); err != nil {
			slog.Error("import task processing failed", "task_id", taskID, "error", err)
		}
	}()
}

// StartRetry runs a retry pass on a fresh goroutine.
func (s *Service) StartRetry(taskID string) {
	go func() {
		if err := s.RetryFailed(context.Background(), taskID); err != nil {
			slog.Error("import task retry failed", "task_id", taskID, "error", err)
		}
	}()
}

// ProcessTask processes every currently-pending entry of a task in
// index order, publishing one entry_update event per processed entry
// and a single trailing task_complete event that reflects every
// entry's state. Entries already settled are skipped, so re-entry on a
// fully-settled task emits only the task_complete event.
func (s *Service) ProcessTask(ctx context.Context, taskID string) error {
	s.registry.CancelEviction(taskID)

	snap, err := s.registry.Snapshot(taskID)
	if err != nil {
		return err
	}

	imp, ok := s.importers[snap.EntityType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntityType, snap.EntityType)
	}

	logger := slog.With("task_id", taskID, "entity_type", snap.EntityType)
	logger.Info("processing import task", "entries", len(snap.Entries))

	for i, entry := range snap.Entries {
		if entry.Status != StatusPending {
			continue
		}

		status, procErr := s.processEntry(ctx, imp, entry.Data)
		errMsg := ""
		if procErr != nil {
			errMsg = procErr.Error()
		}

		if err := s.registry.UpdateEntryStatus(taskID, i, status, errMsg); err != nil {
			logger.Warn("entry status not recorded", "entry_index", i, "error", err)
			continue
		}

		entriesProcessed.WithLabelValues(snap.EntityType, string(status)).Inc()
		s.broker.Publish(taskID, newEntryUpdate(i, status, errMsg))
	}

	final, err := s.registry.Snapshot(taskID)
	if err != nil {
		return err
	}
	statuses := make([]Status, len(final.Entries))
	failed := 0
	for i, e := range final.Entries {
		statuses[i] = e.Status
		if e.Status == StatusFailed {
			failed++
		}
	}
	s.broker.Publish(taskID, newTaskComplete(statuses))

	logger.Info("import task pass complete", "entries", len(statuses), "failed", failed)
	s.registry.EvictAfter(taskID, s.opts.TaskTTL)
	return nil
}

// RetryFailed resets every failed entry to pending, then runs the same
// pass logic as ProcessTask. Successful entries are left untouched and
// produce no events.
func (s *Service) RetryFailed(ctx context.Context, taskID string) error {
	s.registry.CancelEviction(taskID)

	reset, err := s.registry.ResetFailed(taskID)
	if err != nil {
		return err
	}
	slog.Info("retrying failed import entries", "task_id", taskID, "reset", reset)
	return s.ProcessTask(ctx, taskID)
}

// View returns the task's read-only projection for polling clients.
func (s *Service) View(taskID string) (TaskView, error) {
	return s.registry.View(taskID)
}

// Subscribe registers a progress subscriber for a task id.
func (s *Service) Subscribe(taskID string) *Subscriber {
	return s.broker.Subscribe(taskID)
}

// Unsubscribe detaches a progress subscriber.
func (s *Service) Unsubscribe(taskID string, sub *Subscriber) {
	s.broker.Unsubscribe(taskID, sub)
}

// processEntry invokes the importer under the per-entry timeout.
func (s *Service) processEntry(ctx context.Context, imp EntityImporter, row Row) (Status, error) {
	if s.opts.EntryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.EntryTimeout)
		defer cancel()
	}
	return imp.ProcessEntry(ctx, row)
}
