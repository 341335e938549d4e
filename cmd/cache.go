package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var cacheForce bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the download cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache statistics",
	RunE:  runCacheInfo,
}

var cacheVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the manifest against the files on disk",
	RunE:  runCacheVerify,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached file and reset the manifest",
	RunE:  runCacheClear,
}

func init() {
	cacheClearCmd.Flags().BoolVarP(&cacheForce, "force", "f", false, "Skip confirmation")

	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheVerifyCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	size, err := imageCache.Size()
	if err != nil {
		return fmt.Errorf("failed to measure cache: %w", err)
	}

	fmt.Println(ui.FormatTitle("Cache"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Directory", imageCache.Dir()))
	fmt.Println(ui.RenderKeyValue("Entries", fmt.Sprintf("%d", imageCache.Len())))
	fmt.Println(ui.RenderKeyValue("Size", ui.FormatBytes(size)))

	return nil
}

func runCacheVerify(cmd *cobra.Command, args []string) error {
	missing, err := imageCache.Verify()
	if err != nil {
		return fmt.Errorf("failed to verify cache: %w", err)
	}

	if len(missing) == 0 {
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("Cache is consistent (%d entries)", imageCache.Len())))
		return nil
	}

	fmt.Println(ui.FormatWarning(fmt.Sprintf("%d manifest entries have no backing file:", len(missing))))
	for _, key := range missing {
		fmt.Println(ui.FormatMuted("  • " + key))
	}
	fmt.Println()
	fmt.Println(ui.FormatInfo("These entries behave as misses and will be re-downloaded on demand"))

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	entries := imageCache.Len()
	if entries == 0 {
		fmt.Println(ui.FormatInfo("Cache is already empty"))
		return nil
	}

	if !cacheForce {
		fmt.Printf("Remove %d cached files? [y/N] ", entries)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println(ui.FormatInfo("Aborted"))
			return nil
		}
	}

	if err := imageCache.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Println(ui.FormatSuccess("Cache cleared"))
	return nil
}
