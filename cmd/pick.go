package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/services"
	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var pickOpen bool

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Fuzzy-find an asset across all categories",
	Long: `Load every category and fuzzy-search across all assets. The
selected asset's download URL is copied to the clipboard; with --open the
asset is downloaded and opened.`,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().BoolVarP(&pickOpen, "open", "o", false, "Download and open the selected asset")
}

// pickEntry pairs an asset with the category it was found in
type pickEntry struct {
	Asset    domain.Asset
	Category string
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	home, err := galleryService.Execute(ctx, services.HomeRequest{})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load gallery"))
		return err
	}

	var entries []pickEntry
	for _, category := range home.Categories {
		resp, err := categoryService.Execute(ctx, newLoadRequest(category))
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", category.Name, err)
		}
		for _, asset := range resp.Category.Assets {
			entries = append(entries, pickEntry{Asset: asset, Category: category.Name})
		}
	}

	if len(entries) == 0 {
		fmt.Println(ui.FormatWarning("No assets published to this channel"))
		return nil
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			e := entries[i]
			return fmt.Sprintf("%s  %s  %s", e.Asset.Name, e.Category, e.Asset.ID)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			e := entries[i]

			var s strings.Builder
			s.WriteString(fmt.Sprintf("Name: %s\n", ui.StyleBold.Render(e.Asset.Name)))
			s.WriteString(fmt.Sprintf("Category: %s\n", e.Category))
			s.WriteString(fmt.Sprintf("ID: %s\n", e.Asset.ID))
			s.WriteString(fmt.Sprintf("Size: %s\n", ui.FormatBytes(e.Asset.Size)))
			s.WriteString("\n")

			if e.Asset.Caption != "" {
				s.WriteString(ui.StyleHeader.Render("Caption") + "\n")
				s.WriteString(e.Asset.Caption + "\n\n")
			}

			if len(e.Asset.Renditions) > 0 {
				s.WriteString(ui.StyleHeader.Render("Renditions") + "\n")
				for _, r := range e.Asset.Renditions {
					s.WriteString(fmt.Sprintf("• %s (%dx%d %s)\n", r.Name, r.Width, r.Height, r.Format))
				}
			}

			return s.String()
		}),
	)
	if err != nil {
		fmt.Println(ui.FormatInfo("Selection cancelled."))
		return nil
	}

	selected := entries[idx]
	fmt.Println(ui.FormatSuccess("Selected: " + selected.Asset.Name))

	if url := downloadURL(&selected.Asset); url != "" {
		if err := clipboard.WriteAll(url); err != nil {
			fmt.Println(ui.FormatMuted("(Clipboard access failed)"))
		} else {
			fmt.Println(ui.FormatInfo("Download URL copied to clipboard"))
		}
	}

	if pickOpen {
		path, err := categoryService.Fetch(ctx, selected.Asset, cfg.PreviewRendition)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", selected.Asset.Name, err)
		}
		return fileOpener.Open(ctx, path)
	}

	return nil
}

// downloadURL picks the best href to share for an asset
func downloadURL(asset *domain.Asset) string {
	if r, ok := asset.Rendition(domain.RenditionLarge); ok {
		return r.Href
	}
	return asset.NativeHref
}
