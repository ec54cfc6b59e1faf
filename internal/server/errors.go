package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"go.uber.org/zap"
)

// Error kinds reported in ErrorResponse.Kind
const (
	KindMalformed        = "malformed"
	KindTooLarge         = "too_large"
	KindInvalid          = "invalid"
	KindUnstable         = "unstable"
	KindFullyConstrained = "fully_constrained"
	KindRateLimited      = "rate_limited"
	KindInternal         = "internal"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// errMalformed marks request bodies that are not valid JSON for the route
var errMalformed = errors.New("malformed request body")

// classify maps an error to an HTTP status and kind
func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, KindTooLarge
	case errors.Is(err, errMalformed):
		return http.StatusBadRequest, KindMalformed
	case errors.Is(err, frame.ErrInvalidStructure),
		errors.Is(err, model.ErrUnknownNode),
		errors.Is(err, model.ErrDuplicateID),
		errors.Is(err, model.ErrInvalidSupportType),
		errors.Is(err, model.ErrSelfReferencingMember),
		errors.Is(err, nscp.ErrUnknownLoadCase):
		return http.StatusUnprocessableEntity, KindInvalid
	case errors.Is(err, frame.ErrSingularMatrix):
		return http.StatusUnprocessableEntity, KindUnstable
	case errors.Is(err, frame.ErrFullyConstrained):
		return http.StatusUnprocessableEntity, KindFullyConstrained
	}
	return http.StatusInternalServerError, KindInternal
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
		)
		msg = "an internal error occurred"
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
