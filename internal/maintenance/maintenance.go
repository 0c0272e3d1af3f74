// Package maintenance provides one-shot tasks run against the stored default servers.
package maintenance

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mcwho/internal/checker"
	"github.com/woozymasta/mcwho/internal/config"
	"github.com/woozymasta/mcwho/internal/models"
)

const workers = 10

// Lister returns every stored default server.
type Lister interface {
	ListDefaultServers(ctx context.Context) ([]models.DefaultServer, error)
}

// Checker queries a single server.
type Checker interface {
	Check(ctx context.Context, address, unitID string) (checker.Result, error)
}

// Report counts check outcomes by kind. Successful checks are counted under "ok".
type Report map[string]int

// Run checks if any maintenance flags are set and executes the corresponding tasks.
// Returns true if a maintenance task was executed (indicating the program should exit).
func Run(ctx context.Context, cfg *config.Config, store Lister, c Checker) bool {
	if !cfg.Storage.CheckAll {
		return false
	}

	log.Info().Msg("Fetching default servers for check...")
	report, err := CheckAll(ctx, store, c)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch default servers")
		return true
	}

	event := log.Info()
	for outcome, n := range report {
		event = event.Int(outcome, n)
	}
	event.Msg("Maintenance task completed")

	return true
}

// CheckAll queries every stored default server with a fixed pool of workers.
// Nothing is written back to the store.
func CheckAll(ctx context.Context, store Lister, c Checker) (Report, error) {
	servers, err := store.ListDefaultServers(ctx)
	if err != nil {
		return nil, err
	}

	report := make(Report)
	if len(servers) == 0 {
		log.Info().Msg("No default servers found for maintenance")
		return report, nil
	}

	log.Info().Int("count", len(servers)).Int("workers", workers).Msg("Starting check all task")

	jobs := make(chan models.DefaultServer, len(servers))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for srv := range jobs {
				outcome := checkServer(ctx, c, srv)
				mu.Lock()
				report[outcome]++
				mu.Unlock()
			}
		}()
	}

	for _, srv := range servers {
		jobs <- srv
	}
	close(jobs)

	wg.Wait()

	return report, nil
}

func checkServer(ctx context.Context, c Checker, srv models.DefaultServer) string {
	logCtx := log.With().
		Str("unit", srv.UnitID).
		Str("address", srv.Address).
		Logger()

	res, err := c.Check(ctx, srv.Address, srv.UnitID)
	if err == nil {
		logCtx.Info().
			Int("online", res.Status.Players.Online).
			Int("max", res.Status.Players.Max).
			Float64("latency_ms", res.Status.LatencyMS).
			Msg("Server reachable")
		return "ok"
	}

	if kind, ok := checker.KindOf(err); ok {
		logCtx.Warn().Err(err).Stringer("kind", kind).Msg("Server unreachable")
		return kind.String()
	}

	logCtx.Error().Err(err).Msg("Check failed")
	return "error"
}
