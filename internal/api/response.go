package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/memberkit/pkg/usage"
)

// Response is the JSON envelope every endpoint returns.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Meta  any          `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail is the error half of the envelope.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPError pairs a status code with a stable machine readable key.
type HTTPError struct {
	Status int
	Key    string
	Msg    string
}

func (e HTTPError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Key
}

var (
	ErrBadRequest     = HTTPError{Status: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound       = HTTPError{Status: http.StatusNotFound, Key: "not_found"}
	ErrUnknownTier    = HTTPError{Status: http.StatusNotFound, Key: "unknown_tier", Msg: "unknown membership tier"}
	ErrUnknownFeature = HTTPError{Status: http.StatusNotFound, Key: "unknown_feature", Msg: "unknown feature"}
	ErrInvalidTier    = HTTPError{Status: http.StatusBadRequest, Key: "invalid_tier", Msg: "X-Membership-Tier header must name a known tier"}
	ErrLimitReached   = HTTPError{Status: http.StatusForbidden, Key: "limit_reached", Msg: "usage limit reached for this feature"}
	ErrInternal       = HTTPError{Status: http.StatusInternalServerError, Key: "internal_error", Msg: "internal server error"}
)

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respond(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Data: data})
}

func respondMeta(w http.ResponseWriter, data, meta any) {
	writeJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// respondError maps err onto the envelope. Errors that are not HTTPErrors
// and not known domain errors are reported as 500 without leaking details.
func respondError(w http.ResponseWriter, err error) {
	httpErr := toHTTPError(err)
	writeJSON(w, httpErr.Status, Response{Error: &ErrorDetail{
		Code:    httpErr.Key,
		Message: httpErr.Error(),
	}})
}

func toHTTPError(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, usage.ErrLimitExceeded):
		return ErrLimitReached
	case errors.Is(err, usage.ErrInvalidTier):
		return ErrInvalidTier
	case errors.Is(err, usage.ErrMissingUserID):
		return HTTPError{Status: http.StatusBadRequest, Key: "missing_user_id", Msg: "user id is required"}
	default:
		return ErrInternal
	}
}
