package sitemap

import (
	"context"
	"errors"

	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// Service serves documents from a cache and falls back to live emission.
// The index is always emitted live since it carries the current date.
type Service struct {
	emitter *Emitter
	cache   DocumentCache
	logger  interfaces.Logger
}

// NewService builds a cached document source. A nil cache disables caching.
func NewService(emitter *Emitter, cache DocumentCache, logger interfaces.Logger) *Service {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Service{emitter: emitter, cache: cache, logger: logging.Ensure(logger)}
}

// Emitter exposes the underlying emitter.
func (s *Service) Emitter() *Emitter {
	return s.emitter
}

// Document returns the named document from the cache, emitting and storing it on a miss.
func (s *Service) Document(ctx context.Context, name string) ([]byte, error) {
	if name == IndexDocument {
		return s.emitter.Document(ctx, name)
	}
	body, ok, err := s.cache.Get(ctx, name)
	if err != nil {
		s.logger.Warn("sitemap.cache_get_failed", "document", name, "error", err)
	}
	if ok && len(body) > 0 {
		return body, nil
	}
	body, err = s.emitter.Document(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, name, body); err != nil {
		s.logger.Warn("sitemap.cache_set_failed", "document", name, "error", err)
	}
	return body, nil
}

// Refresh regenerates every cached document. Documents that fail keep their
// previous cached copy; the failures are joined into the returned error.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	var (
		refreshed int
		errs      []error
	)
	for _, name := range s.emitter.DocumentNames() {
		if name == IndexDocument {
			continue
		}
		if _, err := s.RefreshDocument(ctx, name); err != nil {
			errs = append(errs, err)
			continue
		}
		refreshed++
	}
	return refreshed, errors.Join(errs...)
}

// RefreshDocument emits name and stores it, bypassing any cached copy.
func (s *Service) RefreshDocument(ctx context.Context, name string) ([]byte, error) {
	body, err := s.emitter.Document(ctx, name)
	if err != nil {
		return nil, err
	}
	if name == IndexDocument {
		return body, nil
	}
	if err := s.cache.Set(ctx, name, body); err != nil {
		return nil, err
	}
	return body, nil
}

// Robots returns robots.txt.
func (s *Service) Robots() []byte {
	return s.emitter.Robots()
}
