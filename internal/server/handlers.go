package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mcwho/internal/checker"
	"github.com/woozymasta/mcwho/internal/reply"
	"github.com/woozymasta/mcwho/internal/storage"
	"github.com/woozymasta/mcwho/internal/vars"
)

// handleCheck reports who is online on the given server or on the unit's default.
// Query params: ?unit=42&address=play.example.com
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	req := checkRequest{
		Unit:    r.URL.Query().Get("unit"),
		Address: r.URL.Query().Get("address"),
	}
	if !s.validRequest(w, req) || !s.allowedUnit(w, req.Unit) {
		return
	}

	res, err := s.checker.Check(r.Context(), req.Address, req.Unit)
	if err != nil {
		writeJSON(w, statusCode(err), apiResponse{
			Kind:    kindName(err),
			Address: res.Address,
			Message: reply.CheckFailure(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{
		OK:      true,
		Address: res.Address,
		Status:  res.Status,
		Message: reply.Status(res.Address, res.Status),
	})
}

// handleSetDefault stores a new default server after checking it is online.
// This endpoint is protected by AdminAuthMiddleware.
func (s *Server) handleSetDefault(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req setDefaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("Invalid JSON")
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: reply.Plain("Invalid JSON body.")})
		return
	}
	if !s.validRequest(w, req) || !s.allowedUnit(w, req.Unit) {
		return
	}

	res, err := s.checker.SetDefault(r.Context(), req.Address, req.Unit)
	if err != nil {
		writeJSON(w, statusCode(err), apiResponse{
			Kind:    kindName(err),
			Address: res.Address,
			Message: reply.SetDefaultFailure(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{
		OK:      true,
		Address: res.Address,
		Status:  res.Status,
		Message: reply.DefaultUpdated(res.Address),
	})
}

func handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, vars.Info())
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "ok")
}

func (s *Server) validRequest(w http.ResponseWriter, req any) bool {
	err := s.validate.Struct(req)
	if err == nil {
		return true
	}

	msg := "Invalid request."
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msg = formatValidationError(validationErrors[0])
	}

	writeJSON(w, http.StatusBadRequest, apiResponse{Message: reply.Plain(msg)})
	return false
}

func (s *Server) allowedUnit(w http.ResponseWriter, unit string) bool {
	if s.allowed.Allowed(unit) {
		return true
	}

	log.Debug().Str("unit", unit).Msg("Unit not allowed")
	writeJSON(w, http.StatusForbidden, apiResponse{Message: reply.Plain("This server is not allowed to use this service.")})
	return false
}

func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", err.Field())
	case "max":
		return fmt.Sprintf("The %s field must be at most %s characters long", err.Field(), err.Param())
	default:
		return fmt.Sprintf("Validation failed for %s with tag %s.", err.Field(), err.Tag())
	}
}

// statusCode maps an orchestrator error to an HTTP status.
func statusCode(err error) int {
	if kind, ok := checker.KindOf(err); ok {
		switch kind {
		case checker.InvalidAddress:
			return http.StatusUnprocessableEntity
		case checker.Offline:
			return http.StatusGatewayTimeout
		case checker.ConnectionRefused:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	}

	switch {
	case errors.Is(err, checker.ErrNoDefaultConfigured):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func kindName(err error) string {
	if kind, ok := checker.KindOf(err); ok {
		return kind.String()
	}

	switch {
	case errors.Is(err, checker.ErrNoDefaultConfigured):
		return "no_default"
	case errors.Is(err, storage.ErrUnavailable):
		return "storage_unavailable"
	default:
		return "abandoned"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
