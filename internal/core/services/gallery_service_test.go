package services

import (
	"context"
	"errors"
	"testing"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/ports/mocks"
)

func TestGalleryService_Execute(t *testing.T) {
	tests := []struct {
		name           string
		request        HomeRequest
		setupMocks     func(*mocks.MockContentClient)
		expectedCount  int
		expectError    bool
	}{
		{
			name:    "single taxonomy with categories",
			request: HomeRequest{},
			setupMocks: func(client *mocks.MockContentClient) {
				client.AddTaxonomy(
					domain.Taxonomy{ID: "tax1", Name: "Gallery"},
					domain.GalleryCategory{ID: "cat1", Name: "Nature", TaxonomyID: "tax1"},
					domain.GalleryCategory{ID: "cat2", Name: "Cities", TaxonomyID: "tax1"},
				)
			},
			expectedCount: 2,
		},
		{
			name:    "multiple taxonomies",
			request: HomeRequest{},
			setupMocks: func(client *mocks.MockContentClient) {
				client.AddTaxonomy(
					domain.Taxonomy{ID: "tax1", Name: "Gallery"},
					domain.GalleryCategory{ID: "cat1", Name: "Nature", TaxonomyID: "tax1"},
				)
				client.AddTaxonomy(
					domain.Taxonomy{ID: "tax2", Name: "Archive"},
					domain.GalleryCategory{ID: "cat2", Name: "Film", TaxonomyID: "tax2"},
					domain.GalleryCategory{ID: "cat3", Name: "Prints", TaxonomyID: "tax2"},
				)
			},
			expectedCount: 3,
		},
		{
			name:          "no taxonomies is done with zero items",
			request:       HomeRequest{},
			setupMocks:    func(client *mocks.MockContentClient) {},
			expectedCount: 0,
		},
		{
			name:    "taxonomy fetch error surfaces",
			request: HomeRequest{},
			setupMocks: func(client *mocks.MockContentClient) {
				client.TaxonomiesErr = errors.New("server unreachable")
			},
			expectError: true,
		},
		{
			name:    "category fetch error surfaces",
			request: HomeRequest{},
			setupMocks: func(client *mocks.MockContentClient) {
				client.AddTaxonomy(domain.Taxonomy{ID: "tax1", Name: "Gallery"})
				client.CategoriesErr = errors.New("server unreachable")
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockContentClient()
			tt.setupMocks(client)

			service := NewGalleryService(client)

			resp, err := service.Execute(context.Background(), tt.request)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if resp.Total != tt.expectedCount {
				t.Errorf("Total = %d, want %d", resp.Total, tt.expectedCount)
			}
			if len(resp.Categories) != tt.expectedCount {
				t.Errorf("Got %d categories, want %d", len(resp.Categories), tt.expectedCount)
			}
		})
	}
}

func TestGalleryService_ExecuteWithCovers(t *testing.T) {
	client := mocks.NewMockContentClient()
	client.AddTaxonomy(
		domain.Taxonomy{ID: "tax1", Name: "Gallery"},
		domain.GalleryCategory{ID: "cat1", Name: "Nature", TaxonomyID: "tax1"},
		domain.GalleryCategory{ID: "cat2", Name: "Empty", TaxonomyID: "tax1"},
	)
	client.AddAssets("cat1",
		domain.Asset{ID: "a1", Name: "first.jpg"},
		domain.Asset{ID: "a2", Name: "second.jpg"},
		domain.Asset{ID: "a3", Name: "third.jpg"},
	)

	service := NewGalleryService(client)

	resp, err := service.Execute(context.Background(), HomeRequest{WithCovers: true})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	nature := resp.Categories[0]
	cover, ok := nature.Cover()
	if !ok {
		t.Fatal("Expected a cover for Nature")
	}
	if cover.ID != "a1" {
		t.Errorf("Cover = %q, want first asset a1", cover.ID)
	}
	if nature.TotalResults != 3 {
		t.Errorf("TotalResults = %d, want 3", nature.TotalResults)
	}

	// An empty category is not an error; it just has no cover.
	empty := resp.Categories[1]
	if _, ok := empty.Cover(); ok {
		t.Error("Expected no cover for empty category")
	}
	if empty.TotalResults != 0 {
		t.Errorf("Empty category TotalResults = %d, want 0", empty.TotalResults)
	}
}

func TestGalleryService_FindCategory(t *testing.T) {
	client := mocks.NewMockContentClient()
	client.AddTaxonomy(
		domain.Taxonomy{ID: "tax1", Name: "Gallery"},
		domain.GalleryCategory{ID: "cat1", Name: "Nature", TaxonomyID: "tax1"},
		domain.GalleryCategory{ID: "cat2", Name: "Night Skies", TaxonomyID: "tax1"},
	)

	service := NewGalleryService(client)
	ctx := context.Background()

	tests := []struct {
		name      string
		query     string
		wantID    string
		expectErr bool
	}{
		{"by id", "cat2", "cat2", false},
		{"by exact name", "Nature", "cat1", false},
		{"by name case-insensitive", "nature", "cat1", false},
		{"by prefix", "night", "cat2", false},
		{"unknown", "mountains", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := service.FindCategory(ctx, tt.query)
			if tt.expectErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if cat.ID != tt.wantID {
				t.Errorf("FindCategory(%q) = %s, want %s", tt.query, cat.ID, tt.wantID)
			}
		})
	}
}
