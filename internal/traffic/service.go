// Package traffic is the cache-or-compute orchestrator for paid-traffic
// analytics: serve the stored gzip result when one exists, otherwise
// query the engine, score the rows, and write the result back
// best-effort.
package traffic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/siteglow/trafficlens/internal/cache"
	"github.com/siteglow/trafficlens/internal/cwv"
	"github.com/siteglow/trafficlens/internal/engine"
	"github.com/siteglow/trafficlens/internal/models"
	"github.com/siteglow/trafficlens/internal/query"
	"github.com/siteglow/trafficlens/internal/sites"
	"github.com/siteglow/trafficlens/internal/timewin"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficlens_cache_hits_total",
		Help: "Requests served from the object-store cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficlens_cache_misses_total",
		Help: "Requests that fell through to the query engine.",
	})
	cacheWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficlens_cache_write_failures_total",
		Help: "Best-effort cache writes that failed (non-fatal).",
	})
)

// Deps are the orchestrator's collaborators. All are required.
type Deps struct {
	Sites        sites.Resolver
	Access       sites.AccessChecker
	Engine       engine.Engine
	Store        cache.ObjectStore
	Builder      query.Builder
	Thresholds   cwv.Thresholds
	MinPageviews int64
	Log          *slog.Logger
}

type Service struct {
	d Deps
}

func NewService(d Deps) *Service {
	return &Service{d: d}
}

// Request is one validated dimension query. Filters are keyed by raw
// engine column, already translated from query params by the handler.
type Request struct {
	SiteID    string
	Year      int
	Week      int
	Dimension query.Dimension
	Filters   map[string]string
	Limit     int
}

// Result carries the gzip response body exactly one way: Stream on a
// cache hit (pass-through, never decompressed here), Body on a miss.
type Result struct {
	Key    string
	Stream io.ReadCloser
	Body   []byte
}

// Fetch runs the request through validate -> resolve site -> check
// cache -> (hit | compute -> score -> write-through) and returns the
// compressed payload. Cache failures at any step degrade to computing
// and are logged, never surfaced.
func (s *Service) Fetch(ctx context.Context, req Request) (*Result, error) {
	if req.SiteID == "" {
		return nil, fmt.Errorf("%w: site id missing", ErrBadRequest)
	}
	window, err := timewin.Resolve(req.Year, req.Week)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	site, err := s.d.Sites.Resolve(ctx, req.SiteID)
	if err != nil {
		if errors.Is(err, sites.ErrNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("%w: resolve site: %v", ErrUpstream, err)
	}
	allowed, err := s.d.Access.HasAccess(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("%w: access check: %v", ErrUpstream, err)
	}
	if !allowed {
		return nil, ErrForbidden
	}

	key := cache.Key(site.ID, req.Dimension.Name, window, req.Filters)

	if rc := s.lookup(ctx, key); rc != nil {
		cacheHits.Inc()
		return &Result{Key: key, Stream: rc}, nil
	}
	cacheMisses.Inc()

	body, err := s.compute(ctx, site.ID, window, req)
	if err != nil {
		return nil, err
	}

	if err := s.d.Store.Put(ctx, key, body); err != nil {
		cacheWriteFailures.Inc()
		s.d.Log.Warn("cache write failed, serving computed result",
			slog.String("key", key), slog.String("err", err.Error()))
	}
	return &Result{Key: key, Body: body}, nil
}

// lookup returns a reader over the stored body, or nil on any kind of
// miss. HEAD errors other than not-found also count as a miss so the
// request fails open to computing.
func (s *Service) lookup(ctx context.Context, key string) io.ReadCloser {
	exists, err := s.d.Store.Head(ctx, key)
	if err != nil {
		s.d.Log.Warn("cache head failed, treating as miss", slog.String("key", key), slog.String("err", err.Error()))
		return nil
	}
	if !exists {
		return nil
	}
	rc, err := s.d.Store.Get(ctx, key)
	if err != nil {
		s.d.Log.Warn("cache read failed, treating as miss", slog.String("key", key), slog.String("err", err.Error()))
		return nil
	}
	return rc
}

func (s *Service) compute(ctx context.Context, siteID string, window timewin.Window, req Request) ([]byte, error) {
	q, err := s.d.Builder.Build(siteID, window, req.Dimension, s.d.MinPageviews, req.Limit, req.Filters)
	if err != nil {
		return nil, fmt.Errorf("%w: build query: %v", ErrUpstream, err)
	}
	rows, err := s.d.Engine.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// Empty result sets are valid and cacheable; keep the body a JSON
	// array either way.
	dtos := make([]models.TrafficMetrics, 0, len(rows))
	for _, row := range rows {
		rec := models.RecordFromRow(row)
		dtos = append(dtos, models.ToDTO(cwv.Score(rec, s.d.Thresholds)))
	}

	body, err := cache.Encode(dtos)
	if err != nil {
		return nil, fmt.Errorf("%w: encode result: %v", ErrUpstream, err)
	}
	return body, nil
}
