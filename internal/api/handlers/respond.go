package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// Failure reasons exposed to clients
const (
	ReasonInvalidQuery      = "invalid_query"
	ReasonNoUpstreamRows    = "no_upstream_rows"
	ReasonNoQualifyingDeals = "no_qualifying_deals"
	ReasonUnparsable        = "unparsable_payload"
	ReasonUpstreamStatus    = "upstream_status"
	ReasonUpstream          = "upstream_unavailable"
	ReasonTimeout           = "timeout"
)

// classify maps pipeline errors to HTTP status and reason
// ⭐ SSOT: 오류 → HTTP 상태 매핑
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, contracts.ErrInvalidQuery):
		return http.StatusBadRequest, ReasonInvalidQuery
	case errors.Is(err, contracts.ErrNoUpstreamRows):
		return http.StatusNotFound, ReasonNoUpstreamRows
	case errors.Is(err, contracts.ErrNoQualifyingDeals):
		return http.StatusNotFound, ReasonNoQualifyingDeals
	case errors.Is(err, contracts.ErrUnparsablePayload):
		return http.StatusBadGateway, ReasonUnparsable
	case errors.Is(err, contracts.ErrUpstreamStatus):
		return http.StatusBadGateway, ReasonUpstreamStatus
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ReasonTimeout
	default:
		return http.StatusBadGateway, ReasonUpstream
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message, reason string) {
	respondJSON(w, status, ErrorResponse{Error: message, Reason: reason})
}

// respondFailure writes a classified pipeline error
func respondFailure(w http.ResponseWriter, err error) {
	status, reason := classify(err)
	respondError(w, status, err.Error(), reason)
}
