package api

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tekguyz/myplace/internal/extract"
	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
)

func handleListNotes(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Workspace.Notes())
	}
}

func handleCreateNote(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
			DueDate string `json:"dueDate"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}
		if req.Title == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "title is required")
			return
		}

		n, err := deps.Workspace.CreateNote(req.Title, req.Content, req.DueDate)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving note: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

func handleUpdateNote(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req model.Note
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}
		req.ID = id
		if req.CreatedAt == 0 {
			req.CreatedAt = model.NowMillis()
		}

		if err := deps.Workspace.SaveNote(req); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving note: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, req)
	}
}

func handleDeleteNote(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := deps.Workspace.DeleteNote(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "note %s not found", id)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "deleting note: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
	}
}

func handleSummarizeNote(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		summary, err := deps.Workspace.SummarizeNote(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "note %s not found", id)
				return
			}
			// AI failure degrades to a plain-language message, never a crash.
			writeJSON(w, http.StatusOK, map[string]string{
				"summary": "Could not generate summary. Please try again later.",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
	}
}

// importRequest imports external content as a note. type is "pdf" (content
// carries the base64 document), "url" (page text is fetched and extracted)
// or "text".
type importRequest struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

func handleImportNote(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if !decodeBody(w, r, maxImportBodySize, &req) {
			return
		}
		if req.Content == "" && req.URL == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "at least one of content or url is required")
			return
		}
		if req.Type == "" {
			req.Type = "text"
		}

		var resolvedContent string
		switch {
		case req.Type == "url" && req.URL != "":
			ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
			defer cancel()

			httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
			if err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid url: %v", err)
				return
			}
			resp, err := deps.HTTPClient.Do(httpReq)
			if err != nil {
				httpError(w, http.StatusBadGateway, "api_error", "failed to fetch url: %v", err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				httpError(w, http.StatusBadGateway, "api_error", "url returned status %d", resp.StatusCode)
				return
			}

			body, err := io.ReadAll(io.LimitReader(resp.Body, maxURLFetchSize))
			if err != nil {
				httpError(w, http.StatusBadGateway, "api_error", "failed to read url response: %v", err)
				return
			}

			text, err := extract.HTMLText(strings.NewReader(string(body)))
			if err != nil {
				httpError(w, http.StatusBadGateway, "api_error", "extracting page text: %v", err)
				return
			}
			resolvedContent = text
			if req.Title == "" {
				if title, err := extract.HTMLTitle(strings.NewReader(string(body))); err == nil && title != "" {
					req.Title = title
				} else {
					req.Title = req.URL
				}
			}

		case req.Type == "pdf" && req.Content != "":
			decoded, err := base64.StdEncoding.DecodeString(req.Content)
			if err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid base64 content")
				return
			}
			text, err := extract.PDFText(decoded)
			if err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "extracting pdf text: %v", err)
				return
			}
			resolvedContent = text

		default:
			resolvedContent = req.Content
		}

		if req.Title == "" {
			req.Title = "Imported note"
		}

		n, err := deps.Workspace.CreateNote(req.Title, resolvedContent, "")
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving note: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}
