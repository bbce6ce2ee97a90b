package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tekguyz/myplace/internal/gemini"
	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
)

func handleListTasks(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Workspace.Tasks())
	}
}

func handleAddTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}
		if req.Content == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "content is required")
			return
		}

		t, err := deps.Workspace.AddTask(req.Content)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving task: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func handleMoveTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req struct {
			Status model.KanbanStatus `json:"status"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}
		if !req.Status.Valid() {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "unknown status %q", req.Status)
			return
		}

		t, err := deps.Workspace.MoveTask(id, req.Status)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "task %s not found", id)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "moving task: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func handleDeleteTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := deps.Workspace.DeleteTask(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "task %s not found", id)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "deleting task: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
	}
}

func handleScheduleTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}
		if req.Prompt == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "prompt is required")
			return
		}

		parsed, t, err := deps.Workspace.ScheduleTaskWithAI(r.Context(), req.Prompt)
		if err != nil {
			if errors.Is(err, gemini.ErrDisabled) {
				writeJSON(w, http.StatusOK, map[string]any{
					"message": gemini.DisabledMessage,
				})
				return
			}
			// The AI may have had trouble understanding; degrade in place.
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "Could not schedule task. The AI might have had trouble understanding.",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"task":    t,
			"dueDate": parsed.DueDate,
		})
	}
}
