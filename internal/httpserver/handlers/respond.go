package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Cause string `json:"cause,omitempty"`
	Stack string `json:"stack,omitempty"`
}

// writeJSON sends v with the API cache policy.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError sends {"error": msg}. It is exported for the middlewares.
func WriteError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// serverError reports a failed operation with its underlying cause so that
// an operator can tell a store outage apart from a rejected request.
func serverError(w http.ResponseWriter, r *http.Request, d deps.Deps, msg string, err error) {
	d.Logger.Error(msg,
		logger.String("path", r.URL.Path),
		logger.Error(err))

	body := errorResponse{Error: msg, Cause: rootCause(err).Error()}
	if d.ExposeErrorStack {
		body.Stack = fmt.Sprintf("%+v\n\n%s", err, debug.Stack())
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// NotFound answers unknown paths.
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "not found")
	}
}

// MethodNotAllowed answers known paths called with the wrong method.
func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
