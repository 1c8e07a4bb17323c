package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/contentdesk/cms-admin/internal/importer"
	"github.com/contentdesk/cms-admin/internal/logging"
	"github.com/go-chi/chi/v5"
)

// importResponse is returned from a successful upload: the task id plus
// the parsed rows for client-side preview. Processing runs in the
// background after the response is written.
type importResponse struct {
	TaskID  string         `json:"task_id"`
	Entries []importer.Row `json:"entries"`
}

// handleImport accepts a multipart tabular file and creates an import
// task for the requested entity type.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entity_type")
	if entityType == "" {
		writeError(w, r, http.StatusBadRequest, "missing entity_type parameter")
		return
	}

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to read file")
		return
	}

	taskID, rows, err := s.importer.CreateTask(entityType, header.Filename, data)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	logging.FromContext(r.Context()).Info("import scheduled",
		"task_id", taskID,
		"entity_type", entityType,
		"rows", len(rows),
	)
	s.importer.StartProcess(taskID)

	writeJSON(w, importResponse{TaskID: taskID, Entries: rows})
}

// handleTaskView returns the current state of a task for polling clients.
func (s *Server) handleTaskView(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	view, err := s.importer.View(taskID)
	if err != nil {
		if errors.Is(err, importer.ErrTaskNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
		} else {
			writeError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, view)
}

// handleRetry re-queues the failed entries of a task in the background
// and returns the task view as of the retry request.
func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	view, err := s.importer.View(taskID)
	if err != nil {
		if errors.Is(err, importer.ErrTaskNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
		} else {
			writeError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if entityType := r.URL.Query().Get("entity_type"); entityType != "" && entityType != view.EntityType {
		writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("entity_type %q does not match task entity_type %q", entityType, view.EntityType))
		return
	}

	logging.FromContext(r.Context()).Info("import retry scheduled", "task_id", taskID)
	s.importer.StartRetry(taskID)

	writeJSON(w, view)
}

// handleProgress streams a task's progress events via Server-Sent
// Events. The stream stays open until the client disconnects; closing
// the connection unsubscribes the client.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task_id")
	if taskID == "" {
		writeError(w, r, http.StatusBadRequest, "missing task_id parameter")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "streaming not supported")
		return
	}

	sub := s.importer.Subscribe(taskID)
	defer s.importer.Unsubscribe(taskID, sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.EventType(), data)
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// handleHealth reports process liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
