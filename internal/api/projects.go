package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tekguyz/myplace/internal/store"
)

func handleListProjects(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Workspace.Projects())
	}
}

func handleCreateProject(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}
		if req.Name == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name is required")
			return
		}

		p, err := deps.Workspace.CreateProject(req.Name, req.Description)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving project: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleDeleteProject(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := deps.Workspace.DeleteProject(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "project %s not found", id)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "deleting project: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
	}
}

func handleAssignItems(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req struct {
			NoteIDs      []string `json:"noteIds"`
			TaskIDs      []string `json:"taskIds"`
			RecordingIDs []string `json:"recordingIds"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}

		p, err := deps.Workspace.AssignItems(id, req.NoteIDs, req.TaskIDs, req.RecordingIDs)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "project %s not found", id)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "updating project: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleResolveProject(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		p, items, err := deps.Workspace.ResolveProject(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "project %s not found", id)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "resolving project: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"project": p,
			"items":   items,
		})
	}
}

func handleUnassigned(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Workspace.Unassigned())
	}
}

func handleGenerateDocs(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req struct {
			DocType string `json:"docType"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}
		if req.DocType == "" {
			req.DocType = "Project Summary"
		}

		n, err := deps.Workspace.GenerateProjectDocs(r.Context(), id, req.DocType)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "project %s not found", id)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{
				"message": "Could not generate documentation. Please try again later.",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"note": n})
	}
}
