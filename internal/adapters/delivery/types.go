package delivery

import (
	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
)

// Wire types for the published content-delivery API. Only the fields the
// gallery consumes are mapped.

type taxonomyList struct {
	Items []taxonomyItem `json:"items"`
}

type taxonomyItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type categoryList struct {
	Items []categoryItem `json:"items"`
}

type categoryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type itemList struct {
	Items        []contentItem `json:"items"`
	Offset       int           `json:"offset"`
	Count        int           `json:"count"`
	TotalResults int           `json:"totalResults"`
}

type contentItem struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Fields      itemFields `json:"fields"`
}

type itemFields struct {
	MimeType   string          `json:"mimeType"`
	Size       int64           `json:"size"`
	Caption    string          `json:"caption"`
	Native     nativeField     `json:"native"`
	Renditions []renditionItem `json:"renditions"`
	UpdatedAt  string          `json:"updatedDate"`
}

type nativeField struct {
	Links []link `json:"links"`
}

type renditionItem struct {
	Name    string            `json:"name"`
	Formats []renditionFormat `json:"formats"`
}

type renditionFormat struct {
	Format   string       `json:"format"`
	Links    []link       `json:"links"`
	Metadata formatBounds `json:"metadata"`
}

type formatBounds struct {
	Width  int `json:"width,string"`
	Height int `json:"height,string"`
}

type link struct {
	Href string `json:"href"`
}

// serviceError is the error payload the delivery API returns on non-2xx
type serviceError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

func (t taxonomyItem) toDomain() domain.Taxonomy {
	return domain.Taxonomy{
		ID:        t.ID,
		Name:      t.Name,
		ShortName: t.ShortName,
	}
}

func (i contentItem) toDomain() domain.Asset {
	asset := domain.Asset{
		ID:       i.ID,
		Name:     i.Name,
		Type:     i.Type,
		Caption:  i.Fields.Caption,
		MimeType: i.Fields.MimeType,
		Size:     i.Fields.Size,
	}

	if asset.Caption == "" {
		asset.Caption = i.Description
	}
	asset.UpdatedDate = i.Fields.UpdatedAt

	if len(i.Fields.Native.Links) > 0 {
		asset.NativeHref = i.Fields.Native.Links[0].Href
	}

	for _, r := range i.Fields.Renditions {
		if len(r.Formats) == 0 || len(r.Formats[0].Links) == 0 {
			continue
		}
		// The first format is the preferred one (jpg before webp).
		f := r.Formats[0]
		asset.Renditions = append(asset.Renditions, domain.Rendition{
			Name:   r.Name,
			Format: f.Format,
			Width:  f.Metadata.Width,
			Height: f.Metadata.Height,
			Href:   f.Links[0].Href,
		})
	}

	return asset
}
