package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/auth"
	"github.com/tair/donation-tracker/pkg/logger"
	"github.com/tair/donation-tracker/pkg/query"
)

// Response is the envelope of every JSON reply
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondOK(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsConflict(err):
		return http.StatusConflict
	case domain.IsInvalidTransition(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal errors are logged and their
// details withheld from the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Request failed")
		message = "Internal server error"
	}
	respondJSON(w, status, Response{Success: false, Error: message})
}

func decodeJSON(r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return domain.ValidationError{Field: "body", Reason: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		return 0, domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return uint(id), nil
}

// actor returns the authenticated identity recorded on audit entries
func actor(r *http.Request) string {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		return ""
	}
	return p.Actor()
}

// listParams reads page, page_size, search, sort_by and sort_desc (or sort_order=desc)
func listParams(r *http.Request) (query.Params, error) {
	v := r.URL.Query()
	var p query.Params
	var err error
	if p.Page, err = intParam(r, "page"); err != nil {
		return p, err
	}
	if p.PageSize, err = intParam(r, "page_size"); err != nil {
		return p, err
	}
	p.Search = v.Get("search")
	p.SortBy = v.Get("sort_by")
	if desc, err := boolParam(r, "sort_desc"); err != nil {
		return p, err
	} else if desc != nil {
		p.SortDesc = *desc
	}
	if strings.EqualFold(v.Get("sort_order"), "desc") {
		p.SortDesc = true
	}
	return p, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return n, nil
}

func uintParam(r *http.Request, name string) (uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return uint(n), nil
}

func boolParam(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.ValidationError{Field: name, Reason: "must be true or false"}
	}
	return &b, nil
}

// timeParam accepts RFC 3339 timestamps and plain dates
func timeParam(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.ValidationError{Field: name, Reason: "must be a date (2006-01-02) or RFC 3339 timestamp"}
}
