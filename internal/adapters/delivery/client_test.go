package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.Handler) (*httptest.Server, *Client) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(srv.URL, "test-token", 5*time.Second)
	return srv, client
}

func TestListTaxonomies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/content/published/api/v1.1/taxonomies", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("channelToken"); got != "test-token" {
			t.Errorf("channelToken = %q, want test-token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"id":"tax1","name":"Gallery","shortName":"GAL"},
			{"id":"tax2","name":"Archive","shortName":"ARC"}
		]}`))
	})

	_, client := newTestServer(t, mux)

	taxonomies, err := client.ListTaxonomies(context.Background())
	if err != nil {
		t.Fatalf("ListTaxonomies failed: %v", err)
	}
	if len(taxonomies) != 2 {
		t.Fatalf("Got %d taxonomies, want 2", len(taxonomies))
	}
	if taxonomies[0].ID != "tax1" || taxonomies[0].ShortName != "GAL" {
		t.Errorf("Unexpected first taxonomy: %+v", taxonomies[0])
	}
}

func TestListCategories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/content/published/api/v1.1/taxonomies/tax1/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"id":"cat1","name":"Nature"},
			{"id":"cat2","name":"Cities"}
		]}`))
	})

	_, client := newTestServer(t, mux)

	categories, err := client.ListCategories(context.Background(), "tax1")
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("Got %d categories, want 2", len(categories))
	}
	if categories[0].TaxonomyID != "tax1" {
		t.Errorf("TaxonomyID = %q, want tax1", categories[0].TaxonomyID)
	}
	if categories[1].Name != "Cities" {
		t.Errorf("Second category name = %q, want Cities", categories[1].Name)
	}
}

func TestQueryAssets(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/content/published/api/v1.1/items", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if !strings.Contains(q, `taxonomies.categories.nodes.id eq "cat1"`) {
			t.Errorf("Query missing category filter: %q", q)
		}
		if !strings.Contains(q, `type eq "Image"`) {
			t.Errorf("Query missing image filter: %q", q)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("limit = %q, want 2", got)
		}
		if got := r.URL.Query().Get("offset"); got != "4" {
			t.Errorf("offset = %q, want 4", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"offset": 4, "count": 2, "totalResults": 9,
			"items": [
				{
					"id": "asset1", "name": "sunset.jpg", "type": "Image",
					"fields": {
						"mimeType": "image/jpeg", "size": 1024,
						"native": {"links": [{"href": "http://example.com/native1"}]},
						"renditions": [
							{"name": "Thumbnail", "formats": [
								{"format": "jpg", "links": [{"href": "http://example.com/thumb1"}],
								 "metadata": {"width": "150", "height": "150"}}
							]}
						]
					}
				},
				{"id": "asset2", "name": "dunes.jpg", "type": "Image", "fields": {"mimeType": "image/jpeg"}}
			]
		}`))
	})

	_, client := newTestServer(t, mux)

	page, err := client.QueryAssets(context.Background(), "cat1", 2, 4)
	if err != nil {
		t.Fatalf("QueryAssets failed: %v", err)
	}

	if page.TotalResults != 9 {
		t.Errorf("TotalResults = %d, want 9", page.TotalResults)
	}
	if !page.HasMore() {
		t.Error("Expected HasMore for partial page")
	}
	if len(page.Items) != 2 {
		t.Fatalf("Got %d items, want 2", len(page.Items))
	}

	first := page.Items[0]
	if first.NativeHref != "http://example.com/native1" {
		t.Errorf("NativeHref = %q", first.NativeHref)
	}
	thumb, ok := first.Rendition(domain.RenditionThumbnail)
	if !ok {
		t.Fatal("Expected Thumbnail rendition")
	}
	if thumb.Width != 150 || thumb.Href != "http://example.com/thumb1" {
		t.Errorf("Unexpected thumbnail: %+v", thumb)
	}
}

func TestDownloadRendition(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/renditions/thumb1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("channelToken"); got != "test-token" {
			t.Errorf("channelToken = %q, want test-token", got)
		}
		w.Write([]byte("thumbnail-bytes"))
	})
	mux.HandleFunc("/native/asset1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("native-bytes"))
	})

	srv, client := newTestServer(t, mux)

	asset := &domain.Asset{
		ID:         "asset1",
		NativeHref: srv.URL + "/native/asset1",
		Renditions: []domain.Rendition{
			{Name: domain.RenditionThumbnail, Href: srv.URL + "/renditions/thumb1"},
		},
	}

	data, err := client.DownloadRendition(context.Background(), asset, domain.RenditionThumbnail)
	if err != nil {
		t.Fatalf("DownloadRendition failed: %v", err)
	}
	if string(data) != "thumbnail-bytes" {
		t.Errorf("Downloaded %q, want thumbnail bytes", data)
	}

	// Missing rendition falls back to the native file.
	data, err = client.DownloadRendition(context.Background(), asset, domain.RenditionLarge)
	if err != nil {
		t.Fatalf("DownloadRendition (native fallback) failed: %v", err)
	}
	if string(data) != "native-bytes" {
		t.Errorf("Downloaded %q, want native bytes", data)
	}
}

func TestDownloadRenditionRelativeHref(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/content/published/api/v1.1/assets/asset7/Thumbnail", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("relative-bytes"))
	})

	_, client := newTestServer(t, mux)

	asset := &domain.Asset{
		ID: "asset7",
		Renditions: []domain.Rendition{
			{Name: domain.RenditionThumbnail, Href: "/content/published/api/v1.1/assets/asset7/Thumbnail"},
		},
	}

	data, err := client.DownloadRendition(context.Background(), asset, domain.RenditionThumbnail)
	if err != nil {
		t.Fatalf("DownloadRendition failed: %v", err)
	}
	if string(data) != "relative-bytes" {
		t.Errorf("Downloaded %q, want relative bytes", data)
	}
}

func TestServerErrorPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/content/published/api/v1.1/taxonomies", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"title":"Forbidden","detail":"invalid channel token","status":403}`))
	})

	_, client := newTestServer(t, mux)

	_, err := client.ListTaxonomies(context.Background())
	if err == nil {
		t.Fatal("Expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "invalid channel token") {
		t.Errorf("Error should carry the service detail, got: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/content/published/api/v1.1/items", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	_, client := newTestServer(t, mux)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.QueryAssets(ctx, "cat1", 10, 0); err == nil {
		t.Fatal("Expected error for canceled context")
	}
}
