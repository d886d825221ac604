package market

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/charu0811/dashboard/internal/logx"
	"github.com/charu0811/dashboard/internal/metrics"
	"github.com/charu0811/dashboard/internal/store"
)

const snapshotKey = "snapshot"

// outcome is what gets memoized: the snapshot and the acquisition error
// together, so repeat requests inside the TTL replay failures too instead
// of hammering a broken workbook.
type outcome struct {
	snap Snapshot
	err  error
}

// Service acquires the market table from an ordered list of sources and
// memoizes the outcome for a short TTL. The store is optional; a nil store
// just skips journaling.
type Service struct {
	sources []Source
	cache   *gocache.Cache
	store   *store.Store
}

func NewService(ttl time.Duration, st *store.Store, sources ...Source) *Service {
	if ttl <= 0 {
		ttl = 2 * time.Second
	}
	return &Service{
		sources: sources,
		cache:   gocache.New(ttl, 10*ttl),
		store:   st,
	}
}

// Acquire returns the current market snapshot. A memoized outcome inside the
// TTL is returned as-is with Cached set; otherwise each source is tried in
// order and the first success wins. The error is non-nil only when every
// source failed, and even then the snapshot is renderable (empty rows,
// Source none, notices explaining each failure).
func (s *Service) Acquire(ctx context.Context) (Snapshot, error) {
	if v, ok := s.cache.Get(snapshotKey); ok {
		o := v.(outcome)
		snap := o.snap
		snap.Cached = true
		metrics.CacheHits.Inc()
		return snap, o.err
	}

	start := time.Now()
	snap, err := s.fetch(ctx)
	elapsed := time.Since(start)

	s.cache.Set(snapshotKey, outcome{snap: snap, err: err}, gocache.DefaultExpiration)
	s.journal(snap, elapsed)
	metrics.FetchTotal.WithLabelValues(string(snap.Source)).Inc()
	metrics.FetchDuration.Observe(elapsed.Seconds())
	metrics.RowsDisplayed.Set(float64(len(snap.Rows)))
	return snap, err
}

// Invalidate drops the memoized outcome so the next Acquire re-attempts the
// live source even inside the TTL window.
func (s *Service) Invalidate() {
	s.cache.Delete(snapshotKey)
	metrics.CacheInvalidations.Inc()
	logx.Info("quote cache invalidated")
}

func (s *Service) fetch(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Source: OriginNone, FetchedAt: time.Now()}
	var errs []error
	for _, src := range s.sources {
		quotes, err := src.Fetch(ctx)
		if err != nil {
			logx.Warn("source read failed",
				zap.String("source", string(src.Origin())),
				zap.Error(err),
			)
			metrics.SourceErrors.WithLabelValues(string(src.Origin())).Inc()
			snap.Notices = append(snap.Notices, notice(src.Origin(), err))
			errs = append(errs, fmt.Errorf("%s: %w", src.Origin(), err))
			continue
		}
		snap.Rows = quotes
		snap.Source = src.Origin()
		logx.Info("quotes acquired",
			zap.String("source", string(snap.Source)),
			zap.Int("rows", len(snap.Rows)),
		)
		return snap, nil
	}
	if len(errs) == 0 {
		snap.Notices = append(snap.Notices, "no data sources configured")
		return snap, errors.New("no data sources configured")
	}
	return snap, errors.Join(errs...)
}

func notice(origin Origin, err error) string {
	switch origin {
	case OriginLive:
		return fmt.Sprintf("failed to read live workbook: %v", err)
	case OriginSnapshot:
		return fmt.Sprintf("failed to read snapshot file: %v", err)
	default:
		return fmt.Sprintf("%s: %v", origin, err)
	}
}

func (s *Service) journal(snap Snapshot, elapsed time.Duration) {
	if s.store == nil {
		return
	}
	rec := store.FetchRecord{
		TS:         snap.FetchedAt.Unix(),
		Source:     string(snap.Source),
		Rows:       len(snap.Rows),
		DurationMs: elapsed.Milliseconds(),
		Notices:    strings.Join(snap.Notices, "; "),
	}
	if err := s.store.InsertFetch(rec); err != nil {
		logx.Error("journal fetch failed", zap.Error(err))
	}
}
