package api

import (
	"net/http"
	"time"

	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
	"github.com/tekguyz/myplace/internal/theme"
)

// Appearance is the persisted theming preference plus the palette derived
// from it. Appearance survives identity transitions: it belongs to the
// browser profile, not the account.
type Appearance struct {
	Theme   model.Theme       `json:"theme"`
	Accent  model.AccentColor `json:"accentColor"`
	Palette map[string]string `json:"palette"`
}

func currentAppearance(deps Deps) Appearance {
	t := store.Load(deps.Store, store.KeyTheme, model.ThemeSystem)
	accent := store.Load(deps.Store, store.KeyAccentColor, model.AccentDefault)
	return Appearance{
		Theme:   t,
		Accent:  accent,
		Palette: theme.Palette(t, accent),
	}
}

func handleGetAppearance(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentAppearance(deps))
	}
}

func handlePutAppearance(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Theme  model.Theme       `json:"theme"`
			Accent model.AccentColor `json:"accentColor"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}

		if req.Theme != "" {
			switch req.Theme {
			case model.ThemeLight, model.ThemeDark, model.ThemeSystem:
			default:
				httpError(w, http.StatusBadRequest, "invalid_request_error", "unknown theme %q", req.Theme)
				return
			}
			if err := store.Put(deps.Store, store.KeyTheme, req.Theme); err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "saving theme: %v", err)
				return
			}
		}
		if req.Accent != "" {
			if err := store.Put(deps.Store, store.KeyAccentColor, req.Accent); err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "saving accent color: %v", err)
				return
			}
		}
		writeJSON(w, http.StatusOK, currentAppearance(deps))
	}
}

func handleDashboard(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"stats":         deps.Workspace.DashboardStats(),
			"upcomingNotes": deps.Workspace.UpcomingNotes(time.Now()),
			"recentNotes":   deps.Workspace.RecentNotes(),
		})
	}
}
