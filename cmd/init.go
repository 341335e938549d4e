package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var (
	initServerURL    string
	initChannelToken string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the gallery data directory and config",
	Long: `Create the gallery data directory (cache and exports) and write a
default configuration file.

Examples:
  ocegallery init
  ocegallery init --server https://instance.example.com --token abc123`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initServerURL, "server", "", "Content service URL")
	initCmd.Flags().StringVar(&initChannelToken, "token", "", "Publishing channel token")
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := appDir.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize data directory: %w", err)
	}

	if initServerURL != "" {
		cfg.ServerURL = initServerURL
	}
	if initChannelToken != "" {
		cfg.ChannelToken = initChannelToken
	}

	if _, err := os.Stat(appDir.ConfigPath); os.IsNotExist(err) || initServerURL != "" || initChannelToken != "" {
		if err := cfg.Save(appDir.ConfigPath); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	fmt.Println(ui.FormatSuccess("Gallery initialized"))
	fmt.Println(ui.RenderKeyValue("Data directory", appDir.RootPath))
	fmt.Println(ui.RenderKeyValue("Config", appDir.ConfigPath))

	if cfg.ServerURL == "" {
		fmt.Println()
		fmt.Println(ui.FormatInfo("Set server_url and channel_token in the config to connect"))
	}

	return nil
}
