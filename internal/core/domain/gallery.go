package domain

// Rendition names the server publishes for image assets. "Native" is not a
// real rendition; it addresses the original upload.
const (
	RenditionThumbnail = "Thumbnail"
	RenditionSmall     = "Small"
	RenditionMedium    = "Medium"
	RenditionLarge     = "Large"
	RenditionNative    = "Native"
)

// Taxonomy represents a published taxonomy from the content service
type Taxonomy struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// Rendition is a server-generated variant of an asset (resized/transcoded)
type Rendition struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Href   string `json:"href"`
}

// Asset is a published media item managed by the content service
type Asset struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Caption     string      `json:"caption"`
	MimeType    string      `json:"mimeType"`
	Size        int64       `json:"size"`
	Renditions  []Rendition `json:"renditions"`
	NativeHref  string      `json:"nativeHref"`
	UpdatedDate string      `json:"updatedDate"`
}

// Rendition returns the named rendition and whether it exists
func (a *Asset) Rendition(name string) (Rendition, bool) {
	for _, r := range a.Renditions {
		if r.Name == name {
			return r, true
		}
	}
	return Rendition{}, false
}

// CacheKey derives the cache manifest key for one usage of this asset.
// The key format (assetID-usage) is what the manifest persists.
func (a *Asset) CacheKey(usage string) string {
	return a.ID + "-" + usage
}

// GalleryCategory is one taxonomy category and the image assets filed under it
type GalleryCategory struct {
	ID           string
	Name         string
	TaxonomyID   string
	Assets       []Asset
	TotalResults int
}

// Cover returns the asset used as the category's home-grid thumbnail
func (c *GalleryCategory) Cover() (Asset, bool) {
	if len(c.Assets) == 0 {
		return Asset{}, false
	}
	return c.Assets[0], true
}

// Complete reports whether every asset the server counts has been fetched
func (c *GalleryCategory) Complete() bool {
	return len(c.Assets) >= c.TotalResults
}

// AssetPage is one page of an item query
type AssetPage struct {
	Items        []Asset
	Offset       int
	Count        int
	TotalResults int
}

// HasMore reports whether another page follows this one
func (p *AssetPage) HasMore() bool {
	return p.Count > 0 && p.Offset+p.Count < p.TotalResults
}
