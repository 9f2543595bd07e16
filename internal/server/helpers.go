package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bobmcallan/folio/internal/clients/backend"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/account"
	"github.com/bobmcallan/folio/internal/services/chat"
	"github.com/bobmcallan/folio/internal/services/dashboard"
	"github.com/bobmcallan/folio/internal/services/trade"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error         string                `json:"error"`
	Code          string                `json:"code,omitempty"`
	Notifications []models.Notification `json:"notifications,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorWithCode writes a JSON error response with an error code.
func WriteErrorWithCode(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// DecodeJSON reads and decodes JSON from the request body into v.
// Returns false and writes a 400 error if decoding fails.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}

// writeServiceError answers a failed service call. The notifications the
// failure queued are drained into the error response, so the failure reaches
// the user once.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorResponse(err)
	if sess := session(r); sess != nil {
		resp.Notifications = s.app.Notices.For(sess.Key()).Drain()
	}
	WriteJSON(w, status, resp)
}

// errorResponse maps service and backend errors onto a status and body.
func errorResponse(err error) (int, ErrorResponse) {
	var httpErr *backend.HTTPError
	var netErr *backend.NetworkError
	var malformed *backend.MalformedPayloadError

	switch {
	case errors.Is(err, common.ErrNoSession):
		return http.StatusUnauthorized, ErrorResponse{Error: "Not signed in"}
	case errors.Is(err, trade.ErrInvalidOrder),
		errors.Is(err, account.ErrInvalidRequest),
		errors.Is(err, chat.ErrEmptyMessage):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_request"}
	case errors.Is(err, dashboard.ErrSuperseded):
		return http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "superseded"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "Request cancelled", Code: "cancelled"}
	case errors.As(err, &httpErr):
		status := httpErr.StatusCode
		if status >= 500 {
			status = http.StatusBadGateway
		}
		return status, ErrorResponse{Error: httpErr.Message, Code: "backend_error"}
	case errors.As(err, &malformed):
		return http.StatusBadGateway, ErrorResponse{Error: "Backend returned an invalid response", Code: "malformed_payload"}
	case errors.As(err, &netErr):
		return http.StatusBadGateway, ErrorResponse{Error: "Backend unavailable", Code: "backend_unavailable"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"}
	}
}

// session returns the request session. Routes behind requireAPISession always have one.
func session(r *http.Request) *common.Session {
	return common.SessionFromContext(r.Context())
}
