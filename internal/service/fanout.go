package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alcyxob/lifetrack/internal/monitoring"
	"alcyxob/lifetrack/internal/tracing"
)

// Fetch source names, used in logs, metrics and the degraded list.
const (
	sourceProfile   = "profile"
	sourceFood      = "food"
	sourceExercises = "exercises"
	sourceWork      = "work"
	sourceGoals     = "goals"
)

// DefaultFetchTimeout replaces a non-positive per-branch deadline.
const DefaultFetchTimeout = 3 * time.Second

// FetchTimeout is the per-branch deadline shared by the aggregation
// services. It can be changed while requests are in flight and is never
// zero, so every branch wait stays bounded.
type FetchTimeout struct {
	ns atomic.Int64
}

// NewFetchTimeout creates a new FetchTimeout starting at d.
func NewFetchTimeout(d time.Duration) *FetchTimeout {
	t := &FetchTimeout{}
	t.Set(d)
	return t
}

// Set stores d, or DefaultFetchTimeout when d <= 0.
func (t *FetchTimeout) Set(d time.Duration) {
	if d <= 0 {
		d = DefaultFetchTimeout
	}
	t.ns.Store(int64(d))
}

func (t *FetchTimeout) Get() time.Duration { return time.Duration(t.ns.Load()) }

// fanout runs independent record store reads concurrently for one view.
// Branches never fail the group: a failed read is recorded as degraded
// and leaves its destination at the zero value.
type fanout struct {
	view    string
	userID  string
	timeout time.Duration
	log     *zap.Logger

	group  errgroup.Group
	mu     sync.Mutex
	failed map[string]bool
}

func newFanout(view, userID string, timeout time.Duration, log *zap.Logger) *fanout {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &fanout{view: view, userID: userID, timeout: timeout, log: log, failed: map[string]bool{}}
}

// fetchInto schedules fn and stores its result in dst on success.
func fetchInto[T any](ctx context.Context, f *fanout, source string, dst *T, fn func(context.Context) (T, error)) {
	f.group.Go(func() error {
		ctx, span := tracing.Tracer.Start(ctx, f.view+"."+source)
		span.SetAttributes(attribute.String("user.id", f.userID))
		defer span.End()

		ctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		v, err := fn(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			f.fail(source, err)
			return nil
		}
		*dst = v
		return nil
	})
}

func (f *fanout) fail(source string, err error) {
	f.log.Warn("fetch failed, continuing with partial data",
		zap.String("view", f.view),
		zap.String("source", source),
		zap.String("user_id", f.userID),
		zap.Error(err))
	monitoring.FetchFailures.WithLabelValues(f.view, source).Inc()

	f.mu.Lock()
	f.failed[source] = true
	f.mu.Unlock()
}

// wait blocks until every branch has finished.
func (f *fanout) wait() {
	_ = f.group.Wait()
}

// degraded lists the failed sources in name order.
func (f *fanout) degraded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.failed))
	for s := range f.failed {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// allFailed reports whether every named source failed.
func (f *fanout) allFailed(sources ...string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range sources {
		if !f.failed[s] {
			return false
		}
	}
	return len(sources) > 0
}
