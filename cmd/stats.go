package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/domain"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/services"
	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var statsHTML bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show asset counts per category",
	Long: `Show how many assets each category holds and how much of the
gallery is cached locally. With --html an interactive bar chart is written
to the exports directory.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsHTML, "html", false, "Export an HTML chart")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := galleryService.Execute(ctx, services.HomeRequest{WithCovers: true})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load gallery"))
		return err
	}

	cacheSize, err := imageCache.Size()
	if err != nil {
		return fmt.Errorf("failed to measure cache: %w", err)
	}

	totalAssets := 0
	table := ui.NewTable([]ui.TableColumn{
		{Header: "CATEGORY", Width: 20},
		{Header: "ASSETS", Width: 6, Align: "right"},
	})
	for _, cat := range resp.Categories {
		totalAssets += cat.TotalResults
		table.AddRow(cat.Name, fmt.Sprintf("%d", cat.TotalResults))
	}

	fmt.Println(ui.FormatTitle("Gallery statistics"))
	fmt.Println()
	fmt.Print(table.Render())
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Total assets", fmt.Sprintf("%d", totalAssets)))
	fmt.Println(ui.RenderKeyValue("Cached entries", fmt.Sprintf("%d", imageCache.Len())))
	fmt.Println(ui.RenderKeyValue("Cache size", ui.FormatBytes(cacheSize)))

	if !statsHTML {
		return nil
	}

	path, err := exportStatsChart(resp.Categories)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess("Chart exported"))
	fmt.Println(ui.FormatMuted(path))

	return nil
}

// exportStatsChart writes a bar chart of assets per category
func exportStatsChart(categories []domain.GalleryCategory) (string, error) {
	names := make([]string, 0, len(categories))
	values := make([]opts.BarData, 0, len(categories))
	for _, cat := range categories {
		names = append(names, cat.Name)
		values = append(values, opts.BarData{Value: cat.TotalResults})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Gallery",
			Subtitle: "Assets per category",
		}),
	)
	bar.SetXAxis(names).AddSeries("Assets", values)

	if err := os.MkdirAll(appDir.ExportsPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create exports directory: %w", err)
	}

	path := filepath.Join(appDir.ExportsPath, "gallery-stats.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}

	return path, nil
}
