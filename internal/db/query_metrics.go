package db

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fr0stylo/proxitrace/internal/db/queries"
	"github.com/fr0stylo/proxitrace/internal/observability"
)

const maxSamplesPerQuery = 256

// QueryStats summarizes recent latencies of one named query.
type QueryStats struct {
	Name   string        `json:"name"`
	Count  int           `json:"count"`
	Errors int           `json:"errors"`
	P50    time.Duration `json:"p50"`
	P95    time.Duration `json:"p95"`
	Max    time.Duration `json:"max"`
}

type queryLatencyTracker struct {
	mu       sync.Mutex
	samples  map[string][]time.Duration
	errors   map[string]int
	duration metric.Float64Histogram
}

func newQueryLatencyTracker() *queryLatencyTracker {
	meter := otel.Meter("github.com/fr0stylo/proxitrace/internal/db")
	duration, _ := meter.Float64Histogram("proxitrace.db.query.duration", metric.WithUnit("ms"))
	return &queryLatencyTracker{
		samples:  make(map[string][]time.Duration),
		errors:   make(map[string]int),
		duration: duration,
	}
}

func (t *queryLatencyTracker) observe(ctx context.Context, name string, duration time.Duration, err error) {
	if t == nil {
		return
	}
	if name == "" {
		name = "unknown"
	}
	failed := err != nil && !errors.Is(err, sql.ErrNoRows)

	if t.duration != nil {
		t.duration.Record(ctx, float64(duration)/float64(time.Millisecond), metric.WithAttributes(
			attribute.String("db.query_name", name),
			attribute.Bool("error", failed),
		))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	window := append(t.samples[name], duration)
	if len(window) > maxSamplesPerQuery {
		window = window[len(window)-maxSamplesPerQuery:]
	}
	t.samples[name] = window
	if failed {
		t.errors[name]++
	}
}

func (t *queryLatencyTracker) snapshot() []QueryStats {
	if t == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stats := make([]QueryStats, 0, len(t.samples))
	for name, durations := range t.samples {
		if len(durations) == 0 {
			continue
		}
		sorted := make([]time.Duration, len(durations))
		copy(sorted, durations)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		stats = append(stats, QueryStats{
			Name:   name,
			Count:  len(sorted),
			Errors: t.errors[name],
			P50:    sorted[(len(sorted)-1)/2],
			P95:    sorted[int(float64(len(sorted)-1)*0.95)],
			Max:    sorted[len(sorted)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].P95 == stats[j].P95 {
			return stats[i].Name < stats[j].Name
		}
		return stats[i].P95 > stats[j].P95
	})

	return stats
}

// instrumentedDBTX records a span and a latency sample for every sqlc query.
type instrumentedDBTX struct {
	inner   queries.DBTX
	tracker *queryLatencyTracker
}

func newInstrumentedDBTX(inner queries.DBTX, tracker *queryLatencyTracker) queries.DBTX {
	if tracker == nil {
		return inner
	}
	return &instrumentedDBTX{inner: inner, tracker: tracker}
}

func (d *instrumentedDBTX) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, name, "exec")
	defer span.End()

	start := time.Now()
	result, err := d.inner.ExecContext(ctx, query, args...)
	d.tracker.observe(ctx, name, time.Since(start), err)
	span.RecordError(err)
	return result, err
}

func (d *instrumentedDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, name, "prepare")
	defer span.End()

	start := time.Now()
	stmt, err := d.inner.PrepareContext(ctx, query)
	d.tracker.observe(ctx, name, time.Since(start), err)
	span.RecordError(err)
	return stmt, err
}

func (d *instrumentedDBTX) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, name, "query")
	defer span.End()

	start := time.Now()
	rows, err := d.inner.QueryContext(ctx, query, args...)
	d.tracker.observe(ctx, name, time.Since(start), err)
	span.RecordError(err)
	return rows, err
}

// QueryRowContext defers errors to Scan, so the sample never carries one.
func (d *instrumentedDBTX) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, name, "query_row")
	start := time.Now()
	row := d.inner.QueryRowContext(ctx, query, args...)
	d.tracker.observe(ctx, name, time.Since(start), nil)
	span.End()
	return row
}

// queryName extracts the sqlc query name from its leading "-- name:" comment.
func queryName(query string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(query), "\n")
	first = strings.TrimSpace(first)
	if !strings.HasPrefix(first, "-- name:") {
		return "unknown"
	}
	parts := strings.Fields(first)
	if len(parts) < 3 {
		return "unknown"
	}
	return parts[2]
}
