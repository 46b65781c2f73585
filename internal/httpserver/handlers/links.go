package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/store"
)

type successResponse struct {
	Success bool `json:"success"`
}

// GetLinks returns the current directory as JSON.
func GetLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Store.ReadDirectory(r.Context()))
	}
}

// PostLinks applies a links array or a partial directory object.
func PostLinks(d deps.Deps) http.HandlerFunc {
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

		if _, err := d.Store.WriteRaw(r.Context(), body); err != nil {
			if errors.Is(err, store.ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, errorResponse{
					Error: "invalid data: expected a links array or a directory object",
					Cause: err.Error(),
				})
				return
			}
			serverError(w, r, d, "failed to save data", err)
			return
		}

		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
