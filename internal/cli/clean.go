package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssmelov/snipmark/internal/config"
)

var cleanQuietFlag bool

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated output files",
	Long: `Clean removes the output directory with all generated text files and
markdown stubs. The configuration file (.snipmark/config.yml) and the
metadata directory are preserved.

Use cases:
  - Stale output after renaming or deleting snippets
  - Want a fresh start before a full documentation build

Examples:
  # Clean generated output
  snipmark clean

  # Clean with minimal output
  snipmark clean --quiet
`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVarP(&cleanQuietFlag, "quiet", "q", false, "Suppress output messages")
}

func runClean(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outputDir := cfg.ToGeneratorConfig(rootDir).OutputDir

	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if !cleanQuietFlag {
			fmt.Println("No generated output found")
		}
		return nil
	}

	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("failed to remove output directory: %w", err)
	}

	if !cleanQuietFlag {
		fmt.Printf("✓ Removed %s\n", outputDir)
		fmt.Println("Next 'snipmark generate' will rebuild all output files")
	}

	return nil
}
