package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/ports/mocks"
)

func makeAssets(n int) []domain.Asset {
	assets := make([]domain.Asset, n)
	for i := range assets {
		assets[i] = domain.Asset{
			ID:   fmt.Sprintf("asset%02d", i),
			Name: fmt.Sprintf("photo%02d.jpg", i),
		}
	}
	return assets
}

func TestCategoryService_Execute(t *testing.T) {
	tests := []struct {
		name       string
		assetCount int
		pageSize   int
		wantPages  int
	}{
		{"single page", 5, 20, 1},
		{"exact page boundary", 20, 20, 1},
		{"multiple pages", 45, 20, 3},
		{"page size one", 3, 1, 3},
		{"empty category", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockContentClient()
			client.AddAssets("cat1", makeAssets(tt.assetCount)...)

			service := NewCategoryService(client, mocks.NewMockCacheStore())

			resp, err := service.Execute(context.Background(), LoadRequest{
				Category: domain.GalleryCategory{ID: "cat1", Name: "Nature"},
				PageSize: tt.pageSize,
			})
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}

			if len(resp.Category.Assets) != tt.assetCount {
				t.Errorf("Got %d assets, want %d", len(resp.Category.Assets), tt.assetCount)
			}
			if resp.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", resp.Pages, tt.wantPages)
			}
			if !resp.Category.Complete() {
				t.Error("Category should be complete after Execute")
			}

			// Order must be preserved across pages.
			for i, asset := range resp.Category.Assets {
				want := fmt.Sprintf("asset%02d", i)
				if asset.ID != want {
					t.Errorf("Asset %d = %s, want %s", i, asset.ID, want)
					break
				}
			}
		})
	}
}

func TestCategoryService_ExecuteError(t *testing.T) {
	client := mocks.NewMockContentClient()
	client.QueryErr = errors.New("server unreachable")

	service := NewCategoryService(client, mocks.NewMockCacheStore())

	_, err := service.Execute(context.Background(), LoadRequest{
		Category: domain.GalleryCategory{ID: "cat1", Name: "Nature"},
	})
	if err == nil {
		t.Fatal("Expected error but got none")
	}
}

func TestCategoryService_DownloadAll(t *testing.T) {
	client := mocks.NewMockContentClient()
	cache := mocks.NewMockCacheStore()
	service := NewCategoryService(client, cache)

	category := domain.GalleryCategory{
		ID:     "cat1",
		Name:   "Nature",
		Assets: makeAssets(9),
	}

	progressChan := make(chan DownloadProgress, len(category.Assets))

	resp, err := service.DownloadAll(context.Background(), DownloadAllRequest{
		Category:   category,
		MaxWorkers: 3,
	}, progressChan)
	if err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}

	if resp.Total != 9 || resp.Succeeded != 9 || resp.Failed != 0 {
		t.Errorf("Unexpected totals: %+v", resp)
	}

	// Every asset must now be cached under its thumbnail key.
	for _, asset := range category.Assets {
		if !cache.Contains(asset.CacheKey(domain.RenditionThumbnail)) {
			t.Errorf("Asset %s not cached", asset.ID)
		}
	}

	// Progress events arrive for every asset and the channel is closed.
	count := 0
	for p := range progressChan {
		count++
		if p.Total != 9 {
			t.Errorf("Progress total = %d, want 9", p.Total)
		}
	}
	if count != 9 {
		t.Errorf("Got %d progress events, want 9", count)
	}
}

func TestCategoryService_DownloadAllSkipsCached(t *testing.T) {
	client := mocks.NewMockContentClient()
	cache := mocks.NewMockCacheStore()
	service := NewCategoryService(client, cache)

	assets := makeAssets(4)

	// Pre-cache two of the four thumbnails.
	for _, asset := range assets[:2] {
		if _, err := cache.Store(asset.CacheKey(domain.RenditionThumbnail), []byte("x"), ".jpg"); err != nil {
			t.Fatalf("Failed to seed cache: %v", err)
		}
	}

	resp, err := service.DownloadAll(context.Background(), DownloadAllRequest{
		Category: domain.GalleryCategory{ID: "cat1", Assets: assets},
	}, nil)
	if err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}

	if resp.FromCache != 2 {
		t.Errorf("FromCache = %d, want 2", resp.FromCache)
	}
	if got := len(client.Downloads()); got != 2 {
		t.Errorf("Network downloads = %d, want 2 (cache hits skip the network)", got)
	}
}

func TestCategoryService_DownloadAllPartialFailure(t *testing.T) {
	client := mocks.NewMockContentClient()
	client.DownloadErr = errors.New("rendition unavailable")

	service := NewCategoryService(client, mocks.NewMockCacheStore())

	resp, err := service.DownloadAll(context.Background(), DownloadAllRequest{
		Category: domain.GalleryCategory{ID: "cat1", Assets: makeAssets(3)},
	}, nil)
	if err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}

	// Failures are per-item; the bulk operation itself succeeds.
	if resp.Failed != 3 || resp.Succeeded != 0 {
		t.Errorf("Unexpected totals: %+v", resp)
	}
	for _, result := range resp.Results {
		if result.Err == nil {
			t.Error("Expected per-item error")
		}
	}
}

func TestCategoryService_Fetch(t *testing.T) {
	client := mocks.NewMockContentClient()
	cache := mocks.NewMockCacheStore()
	service := NewCategoryService(client, cache)

	asset := domain.Asset{ID: "a1", Name: "photo.jpg", MimeType: "image/png"}

	path, err := service.Fetch(context.Background(), asset, domain.RenditionMedium)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if path == "" {
		t.Error("Expected a cache path")
	}
	if !cache.Contains("a1-Medium") {
		t.Error("Fetched rendition should be cached")
	}

	// Second fetch is a cache hit.
	if _, err := service.Fetch(context.Background(), asset, domain.RenditionMedium); err != nil {
		t.Fatalf("Cached fetch failed: %v", err)
	}
	if got := len(client.Downloads()); got != 1 {
		t.Errorf("Network downloads = %d, want 1", got)
	}
}

func TestRenditionExt(t *testing.T) {
	tests := []struct {
		name  string
		asset domain.Asset
		usage string
		want  string
	}{
		{
			"rendition format wins",
			domain.Asset{Renditions: []domain.Rendition{{Name: "Thumbnail", Format: "PNG"}}},
			"Thumbnail",
			".png",
		},
		{"png mime", domain.Asset{MimeType: "image/png"}, "Native", ".png"},
		{"gif mime", domain.Asset{MimeType: "image/gif"}, "Native", ".gif"},
		{"default jpg", domain.Asset{}, "Native", ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renditionExt(&tt.asset, tt.usage); got != tt.want {
				t.Errorf("renditionExt = %q, want %q", got, tt.want)
			}
		})
	}
}
