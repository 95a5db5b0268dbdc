package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"inventory/internal/core"
	"inventory/internal/log"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).Error("encode response failed",
			log.FieldError, err, log.FieldPath, r.URL.Path)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// writeStoreError maps domain sentinels onto HTTP status codes. Unknown
// errors are logged and reported as 500 without leaking internals.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidQuantity),
		errors.Is(err, core.ErrNegativeAmount),
		errors.Is(err, core.ErrInvalidPrice):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, core.ErrCorruptData):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrStorage):
		// The mutation is committed in memory; persistence lagged.
		log.FromContext(r.Context()).Error("snapshot save failed",
			log.FieldError, err, log.FieldPath, r.URL.Path)
		writeError(w, r, http.StatusInternalServerError, "saved in memory, persistence failed")
	default:
		log.FromContext(r.Context()).Error("request failed",
			log.FieldError, err, log.FieldPath, r.URL.Path)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

const maxBodyBytes = 1 << 20 // 1 MiB request body cap

// decodeBody parses a JSON request body into dst, rejecting unknown
// fields so typos surface instead of silently dropping data.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("parse request body: %w", err)
	}
	return nil
}
