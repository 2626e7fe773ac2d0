package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssmelov/snipmark/internal/config"
	"github.com/ssmelov/snipmark/internal/generator"
)

var (
	quietFlag bool
	watchFlag bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Extract snippets and generate documentation files",
	Long: `Generate scans the source tree for labeled snippets, resolves each one
against the documented API members from the metadata directory, and writes
the derivative files the documentation build consumes.

The generator:
  - Discovers snippet source units by glob pattern
  - Extracts Snippet/Sample/Resource blocks from directive comments
  - Resolves member references against the docfx metadata catalog
  - Writes one consolidated text file per unit plus per-member markdown stubs

All problems found in a run (malformed directives, unresolved or ambiguous
member references) are reported together before the command exits with a
failure status.

Examples:
  # Generate in the current directory
  snipmark generate

  # Generate with progress bars disabled
  snipmark generate --quiet

  # Watch for changes and regenerate
  snipmark generate --watch
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and regenerate")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling generation...")
		cancel()
	}()

	// Determine root directory
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	// Load configuration from .snipmark/config.yml
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	progress := NewCLIProgressReporter(quietFlag)

	gen, err := generator.New(cfg.ToGeneratorConfig(rootDir), progress)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	stats, diags, err := gen.Generate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation cancelled")
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	// Every diagnostic is reported; the run fails if there are any.
	for _, msg := range diags.Messages() {
		fmt.Fprintln(os.Stderr, msg)
	}

	if !watchFlag {
		if diags.HasErrors() {
			return fmt.Errorf("generation finished with %d diagnostic(s)", diags.Len())
		}
		// Print summary (if not quiet, OnComplete already printed it)
		if quietFlag {
			fmt.Printf("Generation complete: %d snippets from %d units in %.2fs\n",
				stats.SnippetsExtracted, stats.UnitsProcessed, stats.ProcessingTimeSeconds)
		}
		return nil
	}

	// Watch mode keeps running after diagnostics so authors can fix and save.
	if diags.HasErrors() {
		log.Printf("Initial generation finished with %d diagnostic(s)", diags.Len())
	}
	if !quietFlag {
		log.Println("Starting watch mode...")
	}

	watcher, err := generator.NewWatcher(gen)
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}
	watcher.Start(ctx)
	<-ctx.Done()
	watcher.Stop()

	if !quietFlag {
		log.Println("Watch mode stopped")
	}
	return nil
}
