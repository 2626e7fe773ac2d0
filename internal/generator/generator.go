package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ssmelov/snipmark/internal/catalog"
	"github.com/ssmelov/snipmark/internal/snippet"
)

// Config holds everything the generator needs for one run.
type Config struct {
	// RootDir is the directory the source patterns are resolved against.
	RootDir string

	// SourcePatterns are glob patterns selecting snippet source units.
	SourcePatterns []string

	// IgnorePatterns are glob patterns excluded from discovery.
	IgnorePatterns []string

	// SnippetSuffix is stripped from a unit's base name to obtain the
	// owning type name (e.g. "Snippets": WidgetSnippets.cs → Widget).
	SnippetSuffix string

	// MetadataDir contains the docfx metadata YAML the catalog is built from.
	MetadataDir string

	// OutputDir receives the consolidated text files and markdown stubs.
	OutputDir string

	// Language is the code-reference language tag (e.g. "cs").
	Language string
}

// Stats tracks statistics about a generation run.
type Stats struct {
	UnitsProcessed        int
	SnippetsExtracted     int
	FilesWritten          int
	ProcessingTimeSeconds float64
}

// Generator runs the full pipeline: discover source units, extract snippets,
// resolve member references against the catalog, and assemble output files.
// One run processes each unit to completion before the next; the catalog is
// read-only after construction and the diagnostics collector is the only
// state shared across units.
type Generator struct {
	config    Config
	catalog   catalog.Catalog
	discovery *Discovery
	progress  ProgressReporter
}

// New creates a generator. The member catalog is loaded eagerly: a missing
// metadata directory fails here rather than after extraction.
func New(cfg Config, progress ProgressReporter) (*Generator, error) {
	if progress == nil {
		progress = NullProgressReporter{}
	}

	cat, err := catalog.Load(cfg.MetadataDir)
	if err != nil {
		return nil, err
	}

	discovery, err := NewDiscovery(cfg.RootDir, cfg.SourcePatterns, cfg.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("invalid source patterns: %w", err)
	}

	return &Generator{
		config:    cfg,
		catalog:   cat,
		discovery: discovery,
		progress:  progress,
	}, nil
}

// Generate runs the pipeline once. It returns run statistics and the
// accumulated diagnostics; the caller decides the exit status from the
// diagnostics. The returned error covers only unrecoverable conditions
// (unreadable files, failed writes, cancellation).
func (g *Generator) Generate(ctx context.Context) (*Stats, *snippet.Diagnostics, error) {
	start := time.Now()
	diags := snippet.NewDiagnostics()

	g.progress.OnDiscoveryStart()
	files, err := g.discovery.Discover()
	if err != nil {
		return nil, nil, fmt.Errorf("source discovery failed: %w", err)
	}
	g.progress.OnDiscoveryComplete(len(files))

	g.progress.OnExtractionStart(len(files))
	extractor := snippet.NewExtractor(osFileReader{}, diags)

	var units []*Unit
	extracted := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		lines, err := readLines(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read source unit %s: %w", file, err)
		}

		snippets, err := extractor.Extract(file, lines)
		if err != nil {
			return nil, nil, err
		}

		typeName := TypeNameForFile(file, g.config.SnippetSuffix)
		catalog.Resolve(snippets, g.catalog.MembersFor(typeName), diags)

		units = append(units, &Unit{
			Key:      g.unitKey(file),
			TypeName: typeName,
			Snippets: snippets,
		})
		extracted += len(snippets)
		g.progress.OnUnitProcessed(file)
	}

	g.progress.OnWritingOutput()
	assembler, err := NewAssembler(g.config.OutputDir, g.config.Language)
	if err != nil {
		return nil, nil, err
	}
	written, err := assembler.Write(units)
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{
		UnitsProcessed:        len(units),
		SnippetsExtracted:     extracted,
		FilesWritten:          written,
		ProcessingTimeSeconds: time.Since(start).Seconds(),
	}
	g.progress.OnComplete(stats)
	return stats, diags, nil
}

// ReloadCatalog rebuilds the member catalog from the metadata directory.
// Watch mode calls this after metadata files change.
func (g *Generator) ReloadCatalog() error {
	cat, err := catalog.Load(g.config.MetadataDir)
	if err != nil {
		return err
	}
	g.catalog = cat
	return nil
}

// TypeNameForFile derives the owning type name from a source unit's path:
// the base name minus extension, minus the snippet suffix, minus any
// trailing separator left behind (e.g. "Widget.Snippets.cs" → "Widget").
func TypeNameForFile(path, suffix string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if suffix != "" {
		name = strings.TrimSuffix(name, suffix)
	}
	name = strings.TrimSuffix(name, ".")
	name = strings.TrimSuffix(name, "_")
	return name
}

// unitKey names a unit's consolidated output file: the root-relative path
// without its extension, with separators flattened to underscores. Keying by
// the full relative path keeps units with the same base name in different
// directories from writing over each other's output.
func (g *Generator) unitKey(path string) string {
	rel, err := filepath.Rel(g.config.RootDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "_")
}

// osFileReader reads resource files from the local filesystem.
type osFileReader struct{}

func (osFileReader) ReadLines(path string) ([]string, error) {
	return readLines(path)
}

// readLines reads a file as a slice of lines, normalizing CRLF endings and
// dropping a trailing final newline.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}, nil
	}
	return strings.Split(text, "\n"), nil
}
