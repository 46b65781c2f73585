package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/store"
)

type authResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Auth confirms a bearer secret. The check itself is done by the
// RequireBearer middleware.
func Auth(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, authResponse{Authenticated: true})
	}
}

type passwordRequest struct {
	Password *string `json:"password"`
}

// Password replaces the admin secret.
func Password(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			if tooLarge(err) {
				WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			WriteError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		var req passwordRequest
		if err := json.Unmarshal(body, &req); err != nil || req.Password == nil {
			WriteError(w, http.StatusBadRequest, "expected {\"password\": string}")
			return
		}

		if err := d.Store.WriteAdminSecret(r.Context(), *req.Password); err != nil {
			if errors.Is(err, store.ErrEmptySecret) {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			serverError(w, r, d, "failed to update password", err)
			return
		}

		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}
