package rates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/metrics"

	"golang.org/x/sync/singleflight"
)

const defaultFetchTimeout = 30 * time.Second

// Refresher owns the rate table lifecycle: one load at start, then on a timer.
type Refresher struct {
	table        *Table
	fetcher      Fetcher
	interval     time.Duration
	fetchTimeout time.Duration
	metrics      *metrics.Metrics
	log          *slog.Logger

	group singleflight.Group
}

// NewRefresher wires a refresher. A non-positive fetchTimeout falls back to 30s.
func NewRefresher(table *Table, fetcher Fetcher, interval, fetchTimeout time.Duration, m *metrics.Metrics, log *slog.Logger) *Refresher {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Refresher{
		table:        table,
		fetcher:      fetcher,
		interval:     interval,
		fetchTimeout: fetchTimeout,
		metrics:      m,
		log:          log.With(slog.String("component", "rate_refresher")),
	}
}

// Refresh downloads the feed and publishes a new snapshot. Concurrent callers
// share one download, which is not cancelled when any single caller goes away.
// On failure the previous snapshot stays current.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	const op = "rates.Refresher.Refresh"

	v, err, _ := r.group.Do("refresh", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
		defer cancel()

		entries, err := r.fetcher.Fetch(fetchCtx)
		if err == nil && len(entries) == 0 {
			err = custom_err.ErrRatesNotLoaded
		}
		if err != nil {
			r.metrics.RateRefreshes.WithLabelValues("error").Inc()
			return nil, err
		}

		snap := r.table.Build(entries)
		if snap.Skipped() == len(entries) {
			r.metrics.RateRefreshes.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: all %d entries unparsable", custom_err.ErrRatesNotLoaded, len(entries))
		}

		snap = r.table.Publish(snap)
		r.metrics.RateRefreshes.WithLabelValues("success").Inc()
		r.metrics.RateCurrencies.Set(float64(snap.Len()))
		r.metrics.RateGeneration.Set(float64(snap.Generation()))
		return snap, nil
	})
	if err != nil {
		r.log.Error("rate refresh failed, keeping previous snapshot",
			slog.Uint64("generation", r.table.Snapshot().Generation()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return v.(*Snapshot), nil
}

// Loop refreshes every interval until ctx is done, starting one interval from now.
// A non-positive interval disables the timer.
func (r *Refresher) Loop(ctx context.Context) {
	if r.interval <= 0 {
		r.log.Info("periodic rate refresh disabled")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("periodic rate refresh started", slog.Duration("interval", r.interval))
	for {
		select {
		case <-ticker.C:
			_, _ = r.Refresh(ctx)
		case <-ctx.Done():
			r.log.Info("periodic rate refresh stopped")
			return
		}
	}
}
