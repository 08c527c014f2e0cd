package media

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// TrackSearcher finds stock audio
type TrackSearcher interface {
	SearchTracks(ctx context.Context, q Query) ([]Track, error)
}

// ImageSearcher finds stock photos
type ImageSearcher interface {
	SearchImages(ctx context.Context, q Query) ([]Image, error)
}

// Service fronts both providers with a shared cache.
type Service struct {
	tracks TrackSearcher
	images ImageSearcher
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewService creates a media search service. cache may be nil.
func NewService(tracks TrackSearcher, images ImageSearcher, cache Cache, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		tracks: tracks,
		images: images,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Tracks searches stock audio
func (s *Service) Tracks(ctx context.Context, q Query) ([]Track, error) {
	q = q.normalized(DefaultAudioQuery)
	var out []Track
	err := s.cached(ctx, cacheKey("audio", q), &out, func() (interface{}, error) {
		return s.tracks.SearchTracks(ctx, q)
	})
	return out, err
}

// Images searches stock photos
func (s *Service) Images(ctx context.Context, q Query) ([]Image, error) {
	q = q.normalized(DefaultImageQuery)
	var out []Image
	err := s.cached(ctx, cacheKey("image", q), &out, func() (interface{}, error) {
		return s.images.SearchImages(ctx, q)
	})
	return out, err
}

// Search queries both providers concurrently. One provider failing fails the search.
func (s *Service) Search(ctx context.Context, q Query) (*Results, error) {
	var res Results
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tracks, err := s.Tracks(gctx, q)
		res.Tracks = tracks
		return err
	})
	g.Go(func() error {
		images, err := s.Images(gctx, q)
		res.Images = images
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

// cached serves dest from the cache or fills it via fetch. Cache errors are
// logged and bypassed.
func (s *Service) cached(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error)) error {
	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("media cache read failed", "key", key, "error", err)
		} else if ok {
			if err := json.Unmarshal(raw, dest); err == nil {
				return nil
			}
		}
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode media results: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode media results: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.logger.Warn("media cache write failed", "key", key, "error", err)
		}
	}
	return nil
}

func cacheKey(kind string, q Query) string {
	return fmt.Sprintf("media:%s:%s:%d", kind, strings.ToLower(strings.TrimSpace(q.Text)), q.Page)
}
