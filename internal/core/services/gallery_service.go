package services

import (
	"context"
	"fmt"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/ports"
)

// GalleryService assembles the home view: every taxonomy published to the
// channel, each taxonomy's categories, and a cover asset per category.
type GalleryService struct {
	client ports.ContentClient
}

// NewGalleryService creates a new gallery service
func NewGalleryService(client ports.ContentClient) *GalleryService {
	return &GalleryService{
		client: client,
	}
}

// HomeRequest represents a request to build the home view
type HomeRequest struct {
	// WithCovers fetches each category's first asset so the home grid has
	// a thumbnail and a total count per category
	WithCovers bool
}

// HomeResponse represents the assembled home view
type HomeResponse struct {
	Taxonomies []domain.Taxonomy
	Categories []domain.GalleryCategory
	Total      int
}

// Execute fetches taxonomies and their categories
func (s *GalleryService) Execute(ctx context.Context, req HomeRequest) (*HomeResponse, error) {
	taxonomies, err := s.client.ListTaxonomies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch taxonomies: %w", err)
	}

	var categories []domain.GalleryCategory
	for _, tax := range taxonomies {
		cats, err := s.client.ListCategories(ctx, tax.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch categories of %s: %w", tax.Name, err)
		}
		categories = append(categories, cats...)
	}

	if req.WithCovers {
		for i := range categories {
			if err := s.fetchCover(ctx, &categories[i]); err != nil {
				return nil, err
			}
		}
	}

	return &HomeResponse{
		Taxonomies: taxonomies,
		Categories: categories,
		Total:      len(categories),
	}, nil
}

// fetchCover loads the first asset of a category so the grid can show a
// thumbnail and the server-reported total
func (s *GalleryService) fetchCover(ctx context.Context, category *domain.GalleryCategory) error {
	page, err := s.client.QueryAssets(ctx, category.ID, 1, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch cover of %s: %w", category.Name, err)
	}

	category.TotalResults = page.TotalResults
	if len(page.Items) > 0 {
		category.Assets = []domain.Asset{page.Items[0]}
	}
	return nil
}

// FindCategory resolves a category by id or case-insensitive name prefix
func (s *GalleryService) FindCategory(ctx context.Context, query string) (*domain.GalleryCategory, error) {
	resp, err := s.Execute(ctx, HomeRequest{})
	if err != nil {
		return nil, err
	}

	if match := matchCategory(resp.Categories, query); match != nil {
		return match, nil
	}
	return nil, fmt.Errorf("category not found: %s", query)
}
