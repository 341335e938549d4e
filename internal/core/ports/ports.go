package ports

import (
	"context"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
)

// ContentClient defines the port for the published content-delivery API
type ContentClient interface {
	// ListTaxonomies returns all taxonomies published to the channel
	ListTaxonomies(ctx context.Context) ([]domain.Taxonomy, error)

	// ListCategories returns the categories of one taxonomy
	ListCategories(ctx context.Context, taxonomyID string) ([]domain.GalleryCategory, error)

	// QueryAssets returns one page of image assets filed under a category
	QueryAssets(ctx context.Context, categoryID string, limit, offset int) (*domain.AssetPage, error)

	// DownloadRendition fetches the bytes of a named rendition, falling back
	// to the native file when the asset has no rendition by that name
	DownloadRendition(ctx context.Context, asset *domain.Asset, rendition string) ([]byte, error)
}

// CacheStore defines the port for the on-disk download cache
type CacheStore interface {
	// Path resolves a cache key to the absolute path of the stored file.
	// A manifest entry whose backing file is gone counts as a miss.
	Path(key string) (string, error)

	// Contains reports whether the key resolves to an existing file
	Contains(key string) bool

	// Store writes the bytes under a name derived from the key, records the
	// key→filename mapping, and persists the manifest. Returns the absolute
	// path of the stored file.
	Store(key string, data []byte, ext string) (string, error)

	// Keys returns every key currently in the manifest
	Keys() []string

	// Clear removes all stored files and resets the manifest
	Clear() error
}

// FileOpener defines the port for opening files with default applications
type FileOpener interface {
	// Open opens a file with the system's default application
	Open(ctx context.Context, filepath string) error
}
