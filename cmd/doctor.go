package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oracle-samples/oce-gallery-cli/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your gallery setup",
	Long: `Diagnose issues with the gallery setup.

Checks for:
  - Data directory integrity (cache, exports)
  - Configuration file and connection settings
  - Cache manifest consistency
  - Content service reachability`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("🏥 Gallery Doctor"))
	fmt.Println()

	checkStep("Data Directory", func() error {
		if !appDir.Exists() {
			return fmt.Errorf("not found at %s", appDir.RootPath)
		}
		return nil
	})

	checkStep("Cache Directory", func() error {
		if _, err := os.Stat(imageCache.Dir()); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s", imageCache.Dir())
		}
		return nil
	})

	checkStep("Configuration File", func() error {
		if _, err := os.Stat(appDir.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (environment overrides still apply)", appDir.ConfigPath)
		}
		return nil
	})

	checkStep("Connection Settings", func() error {
		return cfg.Validate()
	})

	checkStep("Cache Manifest", func() error {
		missing, err := imageCache.Verify()
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("%d entries without backing files (run 'cache verify')", len(missing))
		}
		return nil
	})

	checkStep("Content Service", func() error {
		if _, err := deliveryClient.ListTaxonomies(getContext()); err != nil {
			return fmt.Errorf("unreachable: %v", err)
		}
		return nil
	})
}

// checkStep runs one diagnostic and prints its outcome
func checkStep(name string, fn func() error) {
	if err := fn(); err != nil {
		fmt.Printf("%s %s: %s\n", ui.StyleError.Render(ui.IconError), name, ui.FormatMuted(err.Error()))
		return
	}
	fmt.Printf("%s %s\n", ui.StyleSuccess.Render(ui.IconSuccess), name)
}
