package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopcore/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// response is the envelope for successful responses. Results is only set
// for list endpoints.
type response struct {
	Status  string      `json:"status"`
	Results *int        `json:"results,omitempty"`
	Data    interface{} `json:"data"`
}

// errorResponse is the envelope for failures.
type errorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already on the wire; an encode failure here can
	// no longer be reported to the client.
	_ = json.NewEncoder(w).Encode(body)
}

// writeData writes a success envelope around a single value.
func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, response{Status: "success", Data: data})
}

// writeList writes a success envelope around a list with its result count.
func writeList(w http.ResponseWriter, count int, data interface{}) {
	writeJSON(w, http.StatusOK, response{Status: "success", Results: &count, Data: data})
}

// statusFor maps a domain error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeValidationFailed, model.ErrCodeInvalidJSON, model.ErrCodeInvalidOrExpired:
		return http.StatusBadRequest
	case model.ErrCodeDuplicate:
		return http.StatusConflict
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps an error to its HTTP status and writes the error envelope.
// Unknown errors are logged and masked as internal errors.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := statusFor(domainErr.Code)
		envelope := errorResponse{Status: "fail", Error: domainErr.Code, Message: domainErr.Message}
		if status >= http.StatusInternalServerError {
			envelope.Status = "error"
		}
		writeJSON(w, status, envelope)
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Status:  "error",
		Error:   model.ErrCodeInternalError,
		Message: "something went wrong",
	})
}

// decode reads the request body into dst.
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "request body is not valid JSON")
	}
	return nil
}

// pathID parses the named chi URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, model.ValidationError(name + " must be a valid id")
	}
	return id, nil
}
