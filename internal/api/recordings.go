package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tekguyz/myplace/internal/store"
	"github.com/tekguyz/myplace/internal/transcribe"
)

func handleListRecordings(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Workspace.Recordings())
	}
}

func handleAddRecording(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			AudioURL string `json:"audioUrl"`
		}
		if !decodeBody(w, r, maxImportBodySize, &req) {
			return
		}
		if req.AudioURL == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "audioUrl is required")
			return
		}

		rec, err := deps.Workspace.AddRecording(req.Name, req.AudioURL)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving recording: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleDeleteRecording(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := deps.Workspace.DeleteRecording(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "recording %s not found", id)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "deleting recording: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
	}
}

func handleTranscribeRecording(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if _, err := deps.Workspace.Recording(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "recording %s not found", id)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "loading recording: %v", err)
			return
		}

		if err := transcribe.Enqueue(deps.Store, id); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "queueing transcription: %v", err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"queued": id})
	}
}
