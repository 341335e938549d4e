package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/ports"
)

// CategoryService loads the full asset list of one category and downloads
// renditions through the cache
type CategoryService struct {
	client ports.ContentClient
	cache  ports.CacheStore
}

// NewCategoryService creates a new category service
func NewCategoryService(client ports.ContentClient, cache ports.CacheStore) *CategoryService {
	return &CategoryService{
		client: client,
		cache:  cache,
	}
}

// LoadRequest represents a request to load a category's assets
type LoadRequest struct {
	Category domain.GalleryCategory
	PageSize int // default 20
}

// LoadResponse represents a fully loaded category
type LoadResponse struct {
	Category domain.GalleryCategory
	Pages    int
}

// Execute pages through the item query until every asset the server counts
// has been fetched. Order is preserved across pages.
func (s *CategoryService) Execute(ctx context.Context, req LoadRequest) (*LoadResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	category := req.Category
	category.Assets = nil

	offset := 0
	pages := 0
	for {
		page, err := s.client.QueryAssets(ctx, category.ID, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to load category %s: %w", category.Name, err)
		}

		pages++
		category.Assets = append(category.Assets, page.Items...)
		category.TotalResults = page.TotalResults

		if !page.HasMore() {
			break
		}
		offset = page.Offset + page.Count
	}

	return &LoadResponse{
		Category: category,
		Pages:    pages,
	}, nil
}

// DownloadProgress reports one finished download to the progress channel
type DownloadProgress struct {
	Current int
	Total   int
	AssetID string
	Cached  bool // satisfied from the cache, no network
	Success bool
	Err     error
}

// DownloadAllRequest represents a request to download a category's renditions
type DownloadAllRequest struct {
	Category   domain.GalleryCategory
	Rendition  string // default Thumbnail
	MaxWorkers int    // default 4
}

// DownloadResult is the outcome of one asset download
type DownloadResult struct {
	AssetID string
	Path    string
	Cached  bool
	Err     error
}

// DownloadAllResponse aggregates the outcomes of a bulk download
type DownloadAllResponse struct {
	Total     int
	Succeeded int
	Failed    int
	FromCache int
	Results   []DownloadResult
}

// DownloadAll fetches the requested rendition of every asset through the
// cache with a bounded worker pool, reporting per-item progress. Each
// download is an independent call; a failure does not stop the others.
func (s *CategoryService) DownloadAll(ctx context.Context, req DownloadAllRequest, progressChan chan<- DownloadProgress) (*DownloadAllResponse, error) {
	if progressChan != nil {
		defer close(progressChan)
	}

	assets := req.Category.Assets
	if len(assets) == 0 {
		return &DownloadAllResponse{}, nil
	}

	rendition := req.Rendition
	if rendition == "" {
		rendition = domain.RenditionThumbnail
	}

	maxWorkers := req.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	jobs := make(chan domain.Asset, len(assets))
	results := make(chan DownloadResult, len(assets))

	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for asset := range jobs {
				results <- s.downloadOne(ctx, asset, rendition)
			}
		}()
	}

	for _, asset := range assets {
		jobs <- asset
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	response := &DownloadAllResponse{Total: len(assets)}
	current := 0
	for result := range results {
		current++
		response.Results = append(response.Results, result)

		switch {
		case result.Err != nil:
			response.Failed++
		case result.Cached:
			response.FromCache++
			response.Succeeded++
		default:
			response.Succeeded++
		}

		if progressChan != nil {
			progressChan <- DownloadProgress{
				Current: current,
				Total:   len(assets),
				AssetID: result.AssetID,
				Cached:  result.Cached,
				Success: result.Err == nil,
				Err:     result.Err,
			}
		}
	}

	return response, nil
}

// Fetch ensures one rendition is cached and returns its path
func (s *CategoryService) Fetch(ctx context.Context, asset domain.Asset, rendition string) (string, error) {
	result := s.downloadOne(ctx, asset, rendition)
	if result.Err != nil {
		return "", result.Err
	}
	return result.Path, nil
}

// downloadOne satisfies one rendition from the cache or the network
func (s *CategoryService) downloadOne(ctx context.Context, asset domain.Asset, rendition string) DownloadResult {
	key := asset.CacheKey(rendition)

	if path, err := s.cache.Path(key); err == nil {
		return DownloadResult{AssetID: asset.ID, Path: path, Cached: true}
	}

	data, err := s.client.DownloadRendition(ctx, &asset, rendition)
	if err != nil {
		return DownloadResult{AssetID: asset.ID, Err: fmt.Errorf("failed to download %s: %w", asset.Name, err)}
	}

	path, err := s.cache.Store(key, data, renditionExt(&asset, rendition))
	if err != nil {
		return DownloadResult{AssetID: asset.ID, Err: fmt.Errorf("failed to cache %s: %w", asset.Name, err)}
	}

	return DownloadResult{AssetID: asset.ID, Path: path}
}

// renditionExt picks a file extension for the stored download
func renditionExt(asset *domain.Asset, rendition string) string {
	if r, ok := asset.Rendition(rendition); ok && r.Format != "" {
		return "." + strings.ToLower(r.Format)
	}

	switch asset.MimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// matchCategory finds a category by exact id, exact name, or name prefix
// (case-insensitive, in that order)
func matchCategory(categories []domain.GalleryCategory, query string) *domain.GalleryCategory {
	for i := range categories {
		if categories[i].ID == query {
			return &categories[i]
		}
	}

	lower := strings.ToLower(query)
	for i := range categories {
		if strings.ToLower(categories[i].Name) == lower {
			return &categories[i]
		}
	}
	for i := range categories {
		if strings.HasPrefix(strings.ToLower(categories[i].Name), lower) {
			return &categories[i]
		}
	}
	return nil
}
