package api

import (
	"errors"
	"net/http"

	"github.com/tekguyz/myplace/internal/session"
)

type sessionResponse struct {
	State string `json:"state"`
	User  any    `json:"user,omitempty"`
}

func handleSignInWithGoogle(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := deps.Session.SignInWithGoogle()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "signing in: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{State: string(deps.Session.State()), User: u})
	}
}

func handleSignUp(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}
		if req.Name == "" || req.Email == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name and email are required")
			return
		}

		u, err := deps.Session.SignUp(req.Name, req.Email)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "signing up: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{State: string(deps.Session.State()), User: u})
	}
}

func handleSignInWithEmail(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if !decodeBody(w, r, maxRequestBodySize, &req) {
			return
		}
		if req.Email == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "email is required")
			return
		}

		u, err := deps.Session.SignInWithEmail(req.Email)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "signing in: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{State: string(deps.Session.State()), User: u})
	}
}

func handleSignOut(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Session.SignOut(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "signing out: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{State: string(deps.Session.State())})
	}
}

func handleLoadDemo(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := deps.Session.LoadDemoData()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "loading demo data: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{State: string(deps.Session.State()), User: u})
	}
}

func handleMe(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := deps.Session.CurrentUser()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				writeJSON(w, http.StatusOK, sessionResponse{State: string(deps.Session.State())})
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "reading session: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{State: string(deps.Session.State()), User: u})
	}
}
