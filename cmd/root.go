package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/internal/adapters/cache"
	"github.com/oracle-samples/oce-gallery-cli/internal/adapters/delivery"
	"github.com/oracle-samples/oce-gallery-cli/internal/adapters/opener"
	"github.com/oracle-samples/oce-gallery-cli/internal/core/services"
	"github.com/oracle-samples/oce-gallery-cli/pkg/appdir"
	"github.com/oracle-samples/oce-gallery-cli/pkg/config"
	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var (
	// Global application state
	appDir *appdir.AppDir
	cfg    *config.Config

	// Adapters
	deliveryClient *delivery.Client
	imageCache     *cache.FileCache
	fileOpener     *opener.SystemOpener

	// Services
	galleryService  *services.GalleryService
	categoryService *services.CategoryService
	previewService  *services.PreviewService

	// Flags
	dataDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ocegallery",
	Short: "Browse an Oracle Content image gallery from the terminal",
	Long: ui.StyleTitle.Render("OCE Gallery") + " - Content Gallery Browser\n\n" +
		"Browse taxonomy-organized image assets published to a content-delivery\n" +
		"channel, download renditions into a local cache, and preview them.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the application data directory")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Resolve the data directory
	if dataDir != "" {
		appDir = appdir.NewAt(dataDir)
	} else {
		d, err := appdir.New()
		if err != nil {
			return fmt.Errorf("failed to resolve data directory: %w", err)
		}
		appDir = d
	}

	// Load configuration (missing file is fine; env can carry everything)
	c, err := config.Load(appDir.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = c

	ui.SetTheme(cfg.ColorTheme)

	// init and version work without a configured server
	if cmd.Name() == "init" || cmd.Name() == "version" {
		return nil
	}

	if !appDir.Exists() {
		fmt.Println(ui.FormatError("Gallery directory not initialized"))
		fmt.Println(ui.FormatInfo("Run 'ocegallery init' to set it up"))
		os.Exit(1)
	}

	// The cache and config commands work offline
	if !isOffline(cmd) {
		if err := cfg.Validate(); err != nil {
			fmt.Println(ui.FormatError(err.Error()))
			fmt.Println(ui.FormatInfo("Set the connection in " + appDir.ConfigPath + " or via OCE_* environment variables"))
			os.Exit(1)
		}
	}

	// Initialize adapters
	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = appDir.CachePath
	}
	imageCache, err = cache.New(cacheDir)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	deliveryClient = delivery.New(cfg.ServerURL, cfg.ChannelToken, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	fileOpener = opener.New()

	// Initialize services
	galleryService = services.NewGalleryService(deliveryClient)
	categoryService = services.NewCategoryService(deliveryClient, imageCache)
	previewService = services.NewPreviewService(deliveryClient, imageCache)

	return nil
}

// isOffline reports whether the command runs without the content service.
// doctor is included so it can diagnose missing connection settings itself.
func isOffline(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "cache", "config", "doctor":
			return true
		}
	}
	return false
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
