package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/ports/mocks"
)

func TestPreviewService_Fetch(t *testing.T) {
	client := mocks.NewMockContentClient()
	cache := mocks.NewMockCacheStore()
	service := NewPreviewService(client, cache)

	asset := domain.Asset{ID: "a1", Name: "sunset.jpg"}

	path, err := service.Fetch(context.Background(), asset, "")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if path == "" {
		t.Error("Expected a cache path")
	}

	// Default rendition is Large.
	if !cache.Contains("a1-Large") {
		t.Error("Preview should be cached under the Large key")
	}
}

func TestPreviewService_CacheHitSkipsNetwork(t *testing.T) {
	client := mocks.NewMockContentClient()
	cache := mocks.NewMockCacheStore()
	service := NewPreviewService(client, cache)

	asset := domain.Asset{ID: "a1", Name: "sunset.jpg"}
	if _, err := cache.Store(asset.CacheKey(domain.RenditionLarge), []byte("x"), ".jpg"); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}

	if _, err := service.Fetch(context.Background(), asset, domain.RenditionLarge); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got := len(client.Downloads()); got != 0 {
		t.Errorf("Network downloads = %d, want 0", got)
	}
}

func TestPreviewService_NewFetchCancelsPrevious(t *testing.T) {
	client := mocks.NewMockContentClient()
	client.DownloadGate = make(chan struct{})

	cache := mocks.NewMockCacheStore()
	service := NewPreviewService(client, cache)

	first := domain.Asset{ID: "first", Name: "first.jpg"}
	second := domain.Asset{ID: "second", Name: "second.jpg"}

	var wg sync.WaitGroup
	var firstErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = service.Fetch(context.Background(), first, domain.RenditionLarge)
	}()

	// Let the first fetch reach the gate, then start the second one, which
	// must cancel the first.
	time.Sleep(50 * time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(50 * time.Millisecond)
		close(client.DownloadGate)
	}()

	path, err := service.Fetch(context.Background(), second, domain.RenditionLarge)
	wg.Wait()

	if err != nil {
		t.Fatalf("Second fetch failed: %v", err)
	}
	if path == "" {
		t.Error("Expected a path for the second fetch")
	}

	if !errors.Is(firstErr, ErrSuperseded) {
		t.Errorf("First fetch error = %v, want ErrSuperseded", firstErr)
	}

	// Only the second asset made it into the cache.
	if cache.Contains("first-Large") {
		t.Error("Superseded fetch should not be cached")
	}
	if !cache.Contains("second-Large") {
		t.Error("Winning fetch should be cached")
	}
}

func TestPreviewService_Cancel(t *testing.T) {
	client := mocks.NewMockContentClient()
	client.DownloadGate = make(chan struct{}) // never closed

	service := NewPreviewService(client, mocks.NewMockCacheStore())

	done := make(chan error, 1)
	go func() {
		_, err := service.Fetch(context.Background(), domain.Asset{ID: "a1"}, domain.RenditionLarge)
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	service.Cancel()

	select {
	case err := <-done:
		if !errors.Is(err, ErrSuperseded) {
			t.Errorf("Fetch error = %v, want ErrSuperseded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Canceled fetch did not return")
	}
}

func TestPreviewService_DownloadError(t *testing.T) {
	client := mocks.NewMockContentClient()
	client.DownloadErr = errors.New("rendition unavailable")

	service := NewPreviewService(client, mocks.NewMockCacheStore())

	_, err := service.Fetch(context.Background(), domain.Asset{ID: "a1", Name: "x.jpg"}, domain.RenditionLarge)
	if err == nil {
		t.Fatal("Expected error but got none")
	}
	if errors.Is(err, ErrSuperseded) {
		t.Error("A real failure must not look like a superseded fetch")
	}
}
