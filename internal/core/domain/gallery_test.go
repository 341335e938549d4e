package domain

import "testing"

func TestAssetRendition(t *testing.T) {
	asset := Asset{
		ID: "CORE123",
		Renditions: []Rendition{
			{Name: RenditionThumbnail, Format: "jpg", Width: 150, Height: 150},
			{Name: RenditionLarge, Format: "jpg", Width: 1024, Height: 768},
		},
	}

	tests := []struct {
		name      string
		rendition string
		wantFound bool
		wantWidth int
	}{
		{"thumbnail exists", RenditionThumbnail, true, 150},
		{"large exists", RenditionLarge, true, 1024},
		{"medium missing", RenditionMedium, false, 0},
		{"empty name", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, found := asset.Rendition(tt.rendition)
			if found != tt.wantFound {
				t.Errorf("Rendition(%q) found = %v, want %v", tt.rendition, found, tt.wantFound)
			}
			if found && r.Width != tt.wantWidth {
				t.Errorf("Rendition(%q) width = %d, want %d", tt.rendition, r.Width, tt.wantWidth)
			}
		})
	}
}

func TestAssetCacheKey(t *testing.T) {
	asset := Asset{ID: "CORE123"}

	if got := asset.CacheKey(RenditionThumbnail); got != "CORE123-Thumbnail" {
		t.Errorf("CacheKey = %q, want %q", got, "CORE123-Thumbnail")
	}
	if got := asset.CacheKey(RenditionNative); got != "CORE123-Native" {
		t.Errorf("CacheKey = %q, want %q", got, "CORE123-Native")
	}
}

func TestGalleryCategoryCover(t *testing.T) {
	empty := GalleryCategory{ID: "cat1", Name: "Empty"}
	if _, ok := empty.Cover(); ok {
		t.Error("Expected no cover for empty category")
	}

	cat := GalleryCategory{
		ID:     "cat2",
		Name:   "Nature",
		Assets: []Asset{{ID: "first"}, {ID: "second"}},
	}
	cover, ok := cat.Cover()
	if !ok {
		t.Fatal("Expected a cover asset")
	}
	if cover.ID != "first" {
		t.Errorf("Cover = %q, want first asset", cover.ID)
	}
}

func TestGalleryCategoryComplete(t *testing.T) {
	cat := GalleryCategory{TotalResults: 3, Assets: []Asset{{ID: "a"}}}
	if cat.Complete() {
		t.Error("Category with 1 of 3 assets should not be complete")
	}

	cat.Assets = append(cat.Assets, Asset{ID: "b"}, Asset{ID: "c"})
	if !cat.Complete() {
		t.Error("Category with all assets should be complete")
	}
}

func TestAssetPageHasMore(t *testing.T) {
	tests := []struct {
		name string
		page AssetPage
		want bool
	}{
		{"first of many", AssetPage{Offset: 0, Count: 10, TotalResults: 25}, true},
		{"middle page", AssetPage{Offset: 10, Count: 10, TotalResults: 25}, true},
		{"last page", AssetPage{Offset: 20, Count: 5, TotalResults: 25}, false},
		{"single page", AssetPage{Offset: 0, Count: 5, TotalResults: 5}, false},
		{"empty result", AssetPage{Offset: 0, Count: 0, TotalResults: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.HasMore(); got != tt.want {
				t.Errorf("HasMore() = %v, want %v", got, tt.want)
			}
		})
	}
}
