package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/ports"
)

// ErrSuperseded is returned when a preview fetch was canceled because a
// newer one started. Callers discard it; it is not a user-visible failure.
var ErrSuperseded = errors.New("preview superseded")

// PreviewService fetches the full-size rendition of one asset at a time.
// Starting a new fetch cancels the previous in-flight download, so at most
// one preview download runs at once.
type PreviewService struct {
	client ports.ContentClient
	cache  ports.CacheStore

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// NewPreviewService creates a new preview service
func NewPreviewService(client ports.ContentClient, cache ports.CacheStore) *PreviewService {
	return &PreviewService{
		client: client,
		cache:  cache,
	}
}

// Fetch ensures the preview rendition of the asset is cached and returns
// its path. Any previous in-flight fetch is canceled first.
func (s *PreviewService) Fetch(ctx context.Context, asset domain.Asset, rendition string) (string, error) {
	if rendition == "" {
		rendition = domain.RenditionLarge
	}

	key := asset.CacheKey(rendition)
	if path, err := s.cache.Path(key); err == nil {
		return path, nil
	}

	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		// Only clear our own cancel func; a newer fetch may have replaced it.
		if s.gen == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	data, err := s.client.DownloadRendition(ctx, &asset, rendition)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("%w: %s", ErrSuperseded, asset.ID)
		}
		return "", fmt.Errorf("failed to fetch preview of %s: %w", asset.Name, err)
	}

	path, err := s.cache.Store(key, data, renditionExt(&asset, rendition))
	if err != nil {
		return "", fmt.Errorf("failed to cache preview of %s: %w", asset.Name, err)
	}

	return path, nil
}

// Cancel aborts the in-flight preview fetch, if any
func (s *PreviewService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
