package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one config key",
	Long: `Update a configuration key and save the file.

Examples:
  ocegallery config set server_url https://instance.example.com
  ocegallery config set preview_rendition Medium
  ocegallery config set max_workers 8`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	RunE:  runConfigEdit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.FormatTitle("Configuration"))
	fmt.Println(ui.FormatMuted(appDir.ConfigPath))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("server_url", cfg.ServerURL))
	fmt.Println(ui.RenderKeyValue("channel_token", maskToken(cfg.ChannelToken)))
	fmt.Println(ui.RenderKeyValue("page_size", fmt.Sprintf("%d", cfg.PageSize)))
	fmt.Println(ui.RenderKeyValue("max_workers", fmt.Sprintf("%d", cfg.MaxWorkers)))
	fmt.Println(ui.RenderKeyValue("http_timeout_seconds", fmt.Sprintf("%d", cfg.HTTPTimeoutSeconds)))
	fmt.Println(ui.RenderKeyValue("thumbnail_rendition", cfg.ThumbnailRendition))
	fmt.Println(ui.RenderKeyValue("preview_rendition", cfg.PreviewRendition))
	fmt.Println(ui.RenderKeyValue("color_theme", cfg.ColorTheme))
	if cfg.CacheDir != "" {
		fmt.Println(ui.RenderKeyValue("cache_dir", cfg.CacheDir))
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := cfg.Set(args[0], args[1]); err != nil {
		fmt.Println(ui.FormatError(err.Error()))
		return err
	}

	if err := cfg.Save(appDir.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Set %s", args[0])))
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := appDir.ConfigPath

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Println(ui.FormatInfo("Opening config: " + path))

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// maskToken hides most of a channel token for display
func maskToken(token string) string {
	if token == "" {
		return ui.FormatMuted("(unset)")
	}
	if len(token) <= 6 {
		return "******"
	}
	return token[:4] + "..." + token[len(token)-2:]
}
