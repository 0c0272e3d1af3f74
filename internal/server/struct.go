package server

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/woozymasta/mcwho/internal/allowlist"
	"github.com/woozymasta/mcwho/internal/checker"
	"github.com/woozymasta/mcwho/internal/models"
	"github.com/woozymasta/mcwho/internal/reply"
)

// Server holds the dependencies and runtime state of the HTTP API.
type Server struct {
	// checker runs status queries and default server updates.
	checker *checker.Checker

	// allowed restricts which units may use the API. Nil allows all.
	allowed *allowlist.List

	// validate checks decoded request payloads.
	validate *validator.Validate

	// shutdown stops background goroutines such as limiter cleanup.
	shutdown chan struct{}

	// authToken is the Bearer token required to change default servers.
	authToken string

	// maxBody limits the size of request bodies in bytes.
	maxBody int64

	// rateCount requests are allowed per client IP within rateWindow.
	rateCount  int
	rateWindow time.Duration

	// trustProxy enables CF-Connecting-IP and X-Forwarded-For for client IP detection.
	trustProxy bool
}

// checkRequest is the query string of GET /api/check.
type checkRequest struct {
	Unit    string `validate:"required,max=64"`
	Address string `validate:"max=255"`
}

// setDefaultRequest is the JSON body of PUT /api/default.
type setDefaultRequest struct {
	Unit    string `json:"unit" validate:"required,max=64"`
	Address string `json:"address" validate:"required,max=255"`
}

// apiResponse is returned by the query endpoints. Message carries the same
// reply the Discord frontend would show.
type apiResponse struct {
	Status  *models.ServerStatus `json:"status,omitempty"`
	Kind    string               `json:"kind,omitempty"`
	Address string               `json:"address,omitempty"`
	Message reply.Message        `json:"message"`
	OK      bool                 `json:"ok"`
}
