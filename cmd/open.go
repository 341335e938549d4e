package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var openRendition string

var openCmd = &cobra.Command{
	Use:   "open <category> <asset-name>",
	Short: "Download an asset and open it with the system viewer",
	Args:  cobra.ExactArgs(2),
	RunE:  runOpen,
}

func init() {
	openCmd.Flags().StringVarP(&openRendition, "rendition", "r", "", "Rendition to open (default preview rendition)")
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	asset, err := findAsset(args[0], args[1])
	if err != nil {
		fmt.Println(ui.FormatError(err.Error()))
		return err
	}

	rendition := openRendition
	if rendition == "" {
		rendition = cfg.PreviewRendition
	}

	path, err := categoryService.Fetch(ctx, *asset, rendition)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to fetch asset"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Opening " + asset.Name))
	fmt.Println(ui.FormatMuted(path))

	return fileOpener.Open(ctx, path)
}

// findAsset resolves an asset by name or id inside a category
func findAsset(categoryQuery, assetQuery string) (*domain.Asset, error) {
	ctx := getContext()

	category, err := galleryService.FindCategory(ctx, categoryQuery)
	if err != nil {
		return nil, err
	}

	resp, err := categoryService.Execute(ctx, newLoadRequest(*category))
	if err != nil {
		return nil, err
	}

	for i := range resp.Category.Assets {
		asset := &resp.Category.Assets[i]
		if asset.ID == assetQuery || asset.Name == assetQuery {
			return asset, nil
		}
	}
	return nil, fmt.Errorf("asset not found in %s: %s", category.Name, assetQuery)
}
