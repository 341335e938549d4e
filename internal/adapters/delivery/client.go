package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
)

const apiBase = "/content/published/api/v1.1"

// Client talks to the published content-delivery REST API of a content
// service instance. Every request carries the channel token.
type Client struct {
	serverURL    string
	channelToken string
	http         *http.Client
}

// New creates a delivery client for the given server and channel token
func New(serverURL, channelToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		serverURL:    strings.TrimRight(serverURL, "/"),
		channelToken: channelToken,
		http:         &http.Client{Timeout: timeout},
	}
}

// ListTaxonomies returns all taxonomies published to the channel
func (c *Client) ListTaxonomies(ctx context.Context) ([]domain.Taxonomy, error) {
	var list taxonomyList
	if err := c.getJSON(ctx, apiBase+"/taxonomies", nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list taxonomies: %w", err)
	}

	taxonomies := make([]domain.Taxonomy, 0, len(list.Items))
	for _, item := range list.Items {
		taxonomies = append(taxonomies, item.toDomain())
	}
	return taxonomies, nil
}

// ListCategories returns the categories of one taxonomy
func (c *Client) ListCategories(ctx context.Context, taxonomyID string) ([]domain.GalleryCategory, error) {
	path := apiBase + "/taxonomies/" + url.PathEscape(taxonomyID) + "/categories"

	var list categoryList
	if err := c.getJSON(ctx, path, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list categories of taxonomy %s: %w", taxonomyID, err)
	}

	categories := make([]domain.GalleryCategory, 0, len(list.Items))
	for _, item := range list.Items {
		categories = append(categories, domain.GalleryCategory{
			ID:         item.ID,
			Name:       item.Name,
			TaxonomyID: taxonomyID,
		})
	}
	return categories, nil
}

// QueryAssets returns one page of image assets filed under a category
func (c *Client) QueryAssets(ctx context.Context, categoryID string, limit, offset int) (*domain.AssetPage, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf(`(taxonomies.categories.nodes.id eq "%s") AND (type eq "Image")`, categoryID))
	query.Set("fields", "all")
	query.Set("totalResults", "true")
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var list itemList
	if err := c.getJSON(ctx, apiBase+"/items", query, &list); err != nil {
		return nil, fmt.Errorf("failed to query assets of category %s: %w", categoryID, err)
	}

	page := &domain.AssetPage{
		Offset:       list.Offset,
		Count:        list.Count,
		TotalResults: list.TotalResults,
	}
	for _, item := range list.Items {
		page.Items = append(page.Items, item.toDomain())
	}

	// Some server versions omit count; fall back to the item slice.
	if page.Count == 0 {
		page.Count = len(page.Items)
	}

	return page, nil
}

// DownloadRendition fetches the bytes of the named rendition, falling back
// to the native file when the asset has no rendition by that name
func (c *Client) DownloadRendition(ctx context.Context, asset *domain.Asset, rendition string) ([]byte, error) {
	href := ""
	if r, ok := asset.Rendition(rendition); ok {
		href = r.Href
	} else if asset.NativeHref != "" {
		href = asset.NativeHref
	} else {
		href = c.serverURL + apiBase + "/assets/" + url.PathEscape(asset.ID) + "/native"
	}

	req, err := c.newRequest(ctx, href, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s of asset %s: %w", rendition, asset.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s of asset %s: %w", rendition, asset.ID, decodeError(resp))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read download of asset %s: %w", asset.ID, err)
	}
	return data, nil
}

// getJSON performs a GET against the API and decodes the JSON response
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, c.serverURL+path, query)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newRequest builds a GET request with the channel token applied. Rendition
// hrefs returned by the server may already be absolute; relative hrefs are
// resolved against the server URL.
func (c *Client) newRequest(ctx context.Context, rawURL string, query url.Values) (*http.Request, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = c.serverURL + "/" + strings.TrimLeft(rawURL, "/")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request URL: %w", err)
	}

	q := u.Query()
	for key, vals := range query {
		for _, v := range vals {
			q.Set(key, v)
		}
	}
	if c.channelToken != "" {
		q.Set("channelToken", c.channelToken)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// decodeError maps a non-2xx response to an error, using the service error
// payload when one is present
func decodeError(resp *http.Response) error {
	var svcErr serviceError
	if err := json.NewDecoder(resp.Body).Decode(&svcErr); err == nil && svcErr.Detail != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, svcErr.Detail)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
