package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/services"
	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var homeCmd = &cobra.Command{
	Use:     "home",
	Short:   "Show all taxonomies and their categories",
	Aliases: []string{"categories"},
	Long: `Fetch every taxonomy published to the channel and list its
categories with asset counts, the way the gallery home screen does.`,
	RunE: runHome,
}

func runHome(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := galleryService.Execute(ctx, services.HomeRequest{WithCovers: true})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load gallery"))
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No categories published to this channel"))
		return nil
	}

	taxonomyNames := make(map[string]string)
	for _, tax := range resp.Taxonomies {
		taxonomyNames[tax.ID] = tax.Name
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "CATEGORY", Width: 20},
		{Header: "TAXONOMY", Width: 14},
		{Header: "ASSETS", Width: 6, Align: "right"},
		{Header: "COVER"},
	})

	for _, cat := range resp.Categories {
		coverName := ui.FormatMuted("(empty)")
		if cover, ok := cat.Cover(); ok {
			coverName = cover.Name
		}
		table.AddRow(
			cat.Name,
			taxonomyNames[cat.TaxonomyID],
			fmt.Sprintf("%d", cat.TotalResults),
			coverName,
		)
	}

	fmt.Println(ui.FormatTitle(ui.IconFolder + " Gallery"))
	fmt.Println()
	fmt.Print(table.Render())
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Categories", fmt.Sprintf("%d", resp.Total)))

	return nil
}
