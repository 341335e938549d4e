package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/services"
	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var listCmd = &cobra.Command{
	Use:     "list <category>",
	Short:   "List the assets of a category",
	Aliases: []string{"ls"},
	Long: `Fetch every image asset of a category (paging through the item
query) and list id, name, size, and cache status.

The category may be given by id, name, or name prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	category, err := galleryService.FindCategory(ctx, args[0])
	if err != nil {
		fmt.Println(ui.FormatError(err.Error()))
		return err
	}

	resp, err := categoryService.Execute(ctx, services.LoadRequest{
		Category: *category,
		PageSize: cfg.PageSize,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load category"))
		return err
	}

	if len(resp.Category.Assets) == 0 {
		fmt.Println(ui.FormatWarning("Category is empty"))
		return nil
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Width: 12},
		{Header: "NAME", Width: 24},
		{Header: "SIZE", Width: 8, Align: "right"},
		{Header: "CACHED"},
	})

	for _, asset := range resp.Category.Assets {
		cached := ""
		if imageCache.Contains(asset.CacheKey(cfg.ThumbnailRendition)) {
			cached = ui.StyleSuccess.Render(ui.IconCached)
		}
		table.AddRow(
			truncate(asset.ID, 24),
			truncate(asset.Name, 40),
			ui.FormatBytes(asset.Size),
			cached,
		)
	}

	fmt.Println(ui.FormatTitle(ui.IconImage + " " + resp.Category.Name))
	fmt.Println()
	fmt.Print(table.Render())
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Assets", fmt.Sprintf("%d", len(resp.Category.Assets))))
	fmt.Println(ui.RenderKeyValue("Pages fetched", fmt.Sprintf("%d", resp.Pages)))

	return nil
}
