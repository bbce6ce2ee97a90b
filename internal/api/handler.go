// Package api exposes the workspace over a localhost HTTP surface and an
// MCP server. Management routes are protected by a locally generated
// bearer token; /health is open.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tekguyz/myplace/internal/session"
	"github.com/tekguyz/myplace/internal/store"
	"github.com/tekguyz/myplace/internal/workspace"
)

const maxRequestBodySize = 1 << 20 // 1MB
const maxImportBodySize = 10 << 20 // 10MB
const maxURLFetchSize = 5 << 20    // 5MB

// Deps holds the handler's collaborators.
type Deps struct {
	Store      *store.Store
	Session    *session.Manager
	Workspace  *workspace.Workspace
	Token      string
	HTTPClient *http.Client // used by note import from URL
}

// NewHandler builds the full application router.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/google", handleSignInWithGoogle(deps))
			r.Post("/signup", handleSignUp(deps))
			r.Post("/signin", handleSignInWithEmail(deps))
			r.Post("/signout", handleSignOut(deps))
			r.Post("/demo", handleLoadDemo(deps))
			r.Get("/me", handleMe(deps))
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", handleListNotes(deps))
			r.Post("/", handleCreateNote(deps))
			r.Post("/import", handleImportNote(deps))
			r.Put("/{id}", handleUpdateNote(deps))
			r.Delete("/{id}", handleDeleteNote(deps))
			r.Post("/{id}/summarize", handleSummarizeNote(deps))
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", handleListTasks(deps))
			r.Post("/", handleAddTask(deps))
			r.Post("/schedule", handleScheduleTask(deps))
			r.Post("/{id}/move", handleMoveTask(deps))
			r.Delete("/{id}", handleDeleteTask(deps))
		})

		r.Route("/recordings", func(r chi.Router) {
			r.Get("/", handleListRecordings(deps))
			r.Post("/", handleAddRecording(deps))
			r.Delete("/{id}", handleDeleteRecording(deps))
			r.Post("/{id}/transcribe", handleTranscribeRecording(deps))
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handleListProjects(deps))
			r.Post("/", handleCreateProject(deps))
			r.Get("/unassigned", handleUnassigned(deps))
			r.Delete("/{id}", handleDeleteProject(deps))
			r.Put("/{id}/items", handleAssignItems(deps))
			r.Get("/{id}/resolved", handleResolveProject(deps))
			r.Post("/{id}/docs", handleGenerateDocs(deps))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", handleDashboard(deps))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/appearance", handleGetAppearance(deps))
			r.Put("/appearance", handlePutAppearance(deps))
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}
