package config

import (
	"path/filepath"

	"github.com/ssmelov/snipmark/internal/generator"
)

// ToGeneratorConfig converts a Config to a generator.Config.
// The rootDir parameter specifies the root of the tree being processed;
// relative metadata and output directories are resolved against it.
func (c *Config) ToGeneratorConfig(rootDir string) generator.Config {
	return generator.Config{
		RootDir:        rootDir,
		SourcePatterns: c.Paths.Sources,
		IgnorePatterns: c.Paths.Ignore,
		SnippetSuffix:  c.Paths.SnippetSuffix,
		MetadataDir:    resolveDir(rootDir, c.Metadata.Dir),
		OutputDir:      resolveDir(rootDir, c.Output.Dir),
		Language:       c.Output.Language,
	}
}

func resolveDir(rootDir, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(rootDir, dir)
}
