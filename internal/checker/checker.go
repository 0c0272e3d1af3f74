// Package checker resolves server addresses, queries server status with a bounded
// timeout and classifies the outcome. It also gates default server updates on a
// successful query.
package checker

//go:generate mockgen -source=checker.go -destination=mocks_test.go -package=checker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mcwho/internal/game"
	"github.com/woozymasta/mcwho/internal/metrics"
	"github.com/woozymasta/mcwho/internal/models"
)

// Operation names used in logs and metrics.
const (
	OpCheck      = "check"
	OpSetDefault = "set_default"
)

// DefaultPort is the Minecraft Java edition port assumed when an address has none.
const DefaultPort uint16 = 25565

// Store persists the default server address of each unit.
type Store interface {
	GetDefaultServer(ctx context.Context, unitID string) (string, bool, error)
	SetDefaultServer(ctx context.Context, unitID, address string) error
}

// Pinger performs the two network phases of a status query.
type Pinger interface {
	Lookup(ctx context.Context, address string) (game.Endpoint, error)
	Status(ctx context.Context, ep game.Endpoint) (*models.ServerStatus, error)
}

// Options tunes the query behaviour.
type Options struct {
	Timeout     time.Duration
	DefaultPort uint16
}

// Checker orchestrates status queries. It is safe for concurrent use as long
// as the Store and Pinger are.
type Checker struct {
	store       Store
	pinger      Pinger
	timeout     time.Duration
	defaultPort uint16
}

// Result is a successful query. Address is the address as given or stored,
// before normalization, and is meant for display.
type Result struct {
	Status  *models.ServerStatus
	Address string
}

// New creates a Checker. Zero options fall back to a 3s timeout and port 25565.
func New(store Store, pinger Pinger, opts Options) *Checker {
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.DefaultPort == 0 {
		opts.DefaultPort = DefaultPort
	}

	return &Checker{
		store:       store,
		pinger:      pinger,
		timeout:     opts.Timeout,
		defaultPort: opts.DefaultPort,
	}
}

// NormalizeAddress appends the default port when address contains no colon.
func NormalizeAddress(address string, port uint16) string {
	if strings.Contains(address, ":") {
		return address
	}

	return address + ":" + strconv.FormatUint(uint64(port), 10)
}

// Check queries address, or the unit's stored default when address is empty.
//
// Errors are ErrNoDefaultConfigured, a *QueryError, a storage error wrapping
// storage.ErrUnavailable, or the context error when ctx ends first.
func (c *Checker) Check(ctx context.Context, address, unitID string) (Result, error) {
	if address == "" {
		stored, ok, err := c.store.GetDefaultServer(ctx, unitID)
		if err != nil {
			log.Error().Err(err).Str("unit", unitID).Msg("Failed to load default server")
			return Result{}, fmt.Errorf("load default server: %w", err)
		}
		if !ok {
			log.Debug().Str("unit", unitID).Msg("No default server configured")
			return Result{}, ErrNoDefaultConfigured
		}
		address = stored
	}

	status, err := c.query(ctx, OpCheck, address)
	if err != nil {
		return Result{Address: address}, err
	}

	return Result{Address: address, Status: status}, nil
}

// SetDefault stores address as the unit's default after it answered a status query.
// Nothing is written when the query fails or ctx ends before the write.
func (c *Checker) SetDefault(ctx context.Context, address, unitID string) (Result, error) {
	status, err := c.query(ctx, OpSetDefault, address)
	if err != nil {
		return Result{Address: address}, err
	}

	if err := ctx.Err(); err != nil {
		log.Debug().Str("unit", unitID).Str("address", address).Msg("Default server update abandoned")
		return Result{Address: address}, err
	}

	if err := c.store.SetDefaultServer(ctx, unitID, address); err != nil {
		log.Error().Err(err).Str("unit", unitID).Str("address", address).Msg("Failed to save default server")
		return Result{Address: address}, fmt.Errorf("save default server: %w", err)
	}

	metrics.DefaultUpdated()
	log.Info().Str("unit", unitID).Str("address", address).Msg("Default server updated")

	return Result{Address: address, Status: status}, nil
}

// query normalizes address and runs lookup and status under one deadline.
func (c *Checker) query(ctx context.Context, op, address string) (*models.ServerStatus, error) {
	target := NormalizeAddress(address, c.defaultPort)
	logCtx := log.With().Str("op", op).Str("address", target).Logger()

	qctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	status, err := c.ping(qctx, target)
	took := time.Since(start)

	if err == nil {
		metrics.ObserveQuery(op, "ok", took)
		logCtx.Debug().
			Int("online", status.Players.Online).
			Int("max", status.Players.Max).
			Float64("latency_ms", status.LatencyMS).
			Msg("Server status received")

		return status, nil
	}

	// the caller gave up, nothing to classify
	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.ObserveQuery(op, "abandoned", took)
		logCtx.Debug().Err(err).Msg("Status query abandoned")
		return nil, ctxErr
	}

	kind := classify(err)
	if kind == Unknown && qctx.Err() != nil {
		kind = Offline
	}
	metrics.ObserveQuery(op, kind.String(), took)

	if kind == Unknown {
		logCtx.Error().Err(err).Dur("took", took).Msg("Unexpected status query failure")
	} else {
		logCtx.Debug().Err(err).Stringer("kind", kind).Msg("Status query failed")
	}

	return nil, &QueryError{Kind: kind, Address: target, Err: err}
}

func (c *Checker) ping(ctx context.Context, target string) (*models.ServerStatus, error) {
	ep, err := c.pinger.Lookup(ctx, target)
	if err != nil {
		return nil, err
	}

	return c.pinger.Status(ctx, ep)
}
