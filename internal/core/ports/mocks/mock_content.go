package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
)

// MockContentClient is an in-memory implementation of the ContentClient port
// for testing. Categories and assets are registered up front; download bytes
// are synthesized from the asset id unless overridden.
type MockContentClient struct {
	mu         sync.RWMutex
	taxonomies []domain.Taxonomy
	categories map[string][]domain.GalleryCategory // taxonomyID → categories
	assets     map[string][]domain.Asset           // categoryID → assets

	// Error injection. When set, the matching method fails with it.
	TaxonomiesErr error
	CategoriesErr error
	QueryErr      error
	DownloadErr   error

	// DownloadGate, when non-nil, blocks DownloadRendition until the gate is
	// closed or the context is canceled. Used to observe cancellation.
	DownloadGate chan struct{}

	downloads []string
}

// NewMockContentClient creates an empty mock client
func NewMockContentClient() *MockContentClient {
	return &MockContentClient{
		categories: make(map[string][]domain.GalleryCategory),
		assets:     make(map[string][]domain.Asset),
	}
}

// AddTaxonomy registers a taxonomy and its categories
func (m *MockContentClient) AddTaxonomy(tax domain.Taxonomy, categories ...domain.GalleryCategory) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.taxonomies = append(m.taxonomies, tax)
	m.categories[tax.ID] = append(m.categories[tax.ID], categories...)
}

// AddAssets registers the assets returned for a category query
func (m *MockContentClient) AddAssets(categoryID string, assets ...domain.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assets[categoryID] = append(m.assets[categoryID], assets...)
}

// Downloads returns the cache keys of every rendition downloaded so far
func (m *MockContentClient) Downloads() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.downloads))
	copy(out, m.downloads)
	return out
}

// ListTaxonomies returns all registered taxonomies
func (m *MockContentClient) ListTaxonomies(ctx context.Context) ([]domain.Taxonomy, error) {
	if m.TaxonomiesErr != nil {
		return nil, m.TaxonomiesErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Taxonomy, len(m.taxonomies))
	copy(out, m.taxonomies)
	return out, nil
}

// ListCategories returns the categories registered for a taxonomy
func (m *MockContentClient) ListCategories(ctx context.Context, taxonomyID string) ([]domain.GalleryCategory, error) {
	if m.CategoriesErr != nil {
		return nil, m.CategoriesErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	cats, ok := m.categories[taxonomyID]
	if !ok {
		return nil, fmt.Errorf("taxonomy not found: %s", taxonomyID)
	}

	out := make([]domain.GalleryCategory, len(cats))
	copy(out, cats)
	return out, nil
}

// QueryAssets returns one page of the assets registered for a category
func (m *MockContentClient) QueryAssets(ctx context.Context, categoryID string, limit, offset int) (*domain.AssetPage, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.assets[categoryID]
	total := len(all)

	if offset >= total {
		return &domain.AssetPage{Offset: offset, TotalResults: total}, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]domain.Asset, end-offset)
	copy(page, all[offset:end])

	return &domain.AssetPage{
		Items:        page,
		Offset:       offset,
		Count:        len(page),
		TotalResults: total,
	}, nil
}

// DownloadRendition returns synthetic bytes for the asset, honoring the
// gate and context cancellation
func (m *MockContentClient) DownloadRendition(ctx context.Context, asset *domain.Asset, rendition string) ([]byte, error) {
	if m.DownloadErr != nil {
		return nil, m.DownloadErr
	}

	if m.DownloadGate != nil {
		select {
		case <-m.DownloadGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.downloads = append(m.downloads, asset.CacheKey(rendition))
	m.mu.Unlock()

	return []byte("image-bytes-" + asset.ID + "-" + rendition), nil
}
