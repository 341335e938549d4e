package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/internal/core/services"
	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var (
	downloadRendition string
	downloadJobs      int
)

var downloadCmd = &cobra.Command{
	Use:   "download <category>",
	Short: "Download a category's renditions into the cache",
	Long: `Download the chosen rendition of every asset in a category using
concurrent workers. Assets already in the cache are skipped.

Examples:
  ocegallery download nature
  ocegallery download nature --rendition Large --jobs 8`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadRendition, "rendition", "r", "", "Rendition to download (default from config)")
	downloadCmd.Flags().IntVarP(&downloadJobs, "jobs", "j", 0, "Number of concurrent workers (default from config)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	category, err := galleryService.FindCategory(ctx, args[0])
	if err != nil {
		fmt.Println(ui.FormatError(err.Error()))
		return err
	}

	loadResp, err := categoryService.Execute(ctx, services.LoadRequest{
		Category: *category,
		PageSize: cfg.PageSize,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load category"))
		return err
	}

	total := len(loadResp.Category.Assets)
	if total == 0 {
		fmt.Println(ui.FormatWarning("Nothing to download"))
		return nil
	}

	rendition := downloadRendition
	if rendition == "" {
		rendition = cfg.ThumbnailRendition
	}
	jobs := downloadJobs
	if jobs <= 0 {
		jobs = cfg.MaxWorkers
	}

	fmt.Println(ui.FormatInfo(fmt.Sprintf("Downloading %s renditions of %s...", rendition, loadResp.Category.Name)))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Assets", fmt.Sprintf("%d", total)))
	fmt.Println(ui.RenderKeyValue("Workers", fmt.Sprintf("%d", jobs)))
	fmt.Println()

	progressChan := make(chan services.DownloadProgress, total)
	resultChan := make(chan *services.DownloadAllResponse, 1)
	errorChan := make(chan error, 1)

	go func() {
		resp, err := categoryService.DownloadAll(ctx, services.DownloadAllRequest{
			Category:   loadResp.Category,
			Rendition:  rendition,
			MaxWorkers: jobs,
		}, progressChan)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- resp
	}()

	for progress := range progressChan {
		status := ui.StyleSuccess.Render("✓")
		if !progress.Success {
			status = ui.StyleError.Render("✗")
		} else if progress.Cached {
			status = ui.StyleMuted.Render(ui.IconCached)
		}

		percentage := float64(progress.Current) / float64(progress.Total) * 100
		fmt.Printf("\r%s [%d/%d] %s %s",
			renderProgressBar(percentage, 30),
			progress.Current,
			progress.Total,
			status,
			truncate(progress.AssetID, 30),
		)
	}

	var response *services.DownloadAllResponse
	select {
	case err := <-errorChan:
		fmt.Println()
		fmt.Println(ui.FormatError("Download failed"))
		return err
	case response = <-resultChan:
	}

	fmt.Println()
	fmt.Println()
	fmt.Println(ui.FormatSuccess("Download completed"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Total", fmt.Sprintf("%d", response.Total)))
	fmt.Println(ui.RenderKeyValue("Downloaded", fmt.Sprintf("%d", response.Succeeded-response.FromCache)))
	fmt.Println(ui.RenderKeyValue("From cache", fmt.Sprintf("%d", response.FromCache)))

	if response.Failed > 0 {
		fmt.Println(ui.RenderKeyValue("Failed", ui.StyleError.Render(fmt.Sprintf("%d", response.Failed))))
		fmt.Println()
		fmt.Println(ui.FormatWarning("Failed downloads:"))
		for _, result := range response.Results {
			if result.Err != nil {
				fmt.Println(ui.FormatMuted("  • " + result.AssetID + ": " + result.Err.Error()))
			}
		}
	}

	return nil
}
