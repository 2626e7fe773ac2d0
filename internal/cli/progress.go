package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/ssmelov/snipmark/internal/generator"
)

// CLIProgressReporter implements progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet          bool
	unitBar        *progressbar.ProgressBar
	startTime      time.Time
	totalUnits     int
	processedUnits int
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	log.Println("Discovering snippet sources...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(units int) {
	if c.quiet {
		return
	}
	log.Printf("Processing %d snippet source unit(s)\n", units)
	fmt.Println()
}

func (c *CLIProgressReporter) OnExtractionStart(totalUnits int) {
	if c.quiet {
		return
	}
	c.totalUnits = totalUnits
	c.processedUnits = 0

	c.unitBar = progressbar.NewOptions(totalUnits,
		progressbar.OptionSetDescription("Extracting snippets"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("units/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnUnitProcessed(fileName string) {
	if c.quiet {
		return
	}
	if c.unitBar != nil {
		c.processedUnits++
		c.unitBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnWritingOutput() {
	if c.quiet {
		return
	}
	log.Println("Writing output files...")
}

func (c *CLIProgressReporter) OnComplete(stats *generator.Stats) {
	if c.quiet {
		return
	}

	fmt.Println()
	fmt.Printf("✓ Generation complete: %d snippets in %.1fs\n",
		stats.SnippetsExtracted, stats.ProcessingTimeSeconds)
	fmt.Printf("  Source units: %d\n", stats.UnitsProcessed)
	fmt.Printf("  Files written: %d\n", stats.FilesWritten)
}
