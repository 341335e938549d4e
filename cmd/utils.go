package cmd

import (
	"strings"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/services"
	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

// newLoadRequest builds a category load request with the configured page size
func newLoadRequest(category domain.GalleryCategory) services.LoadRequest {
	return services.LoadRequest{
		Category: category,
		PageSize: cfg.PageSize,
	}
}

// truncate shortens a string to max characters with an ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// renderProgressBar creates an ASCII progress bar
func renderProgressBar(percentage float64, width int) string {
	filled := int(percentage / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}

	return ui.StyleAccent.Render(b.String())
}
