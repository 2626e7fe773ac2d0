package config

// Config represents the complete snipmark configuration.
// It can be loaded from .snipmark/config.yml with environment variable overrides.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Metadata MetadataConfig `yaml:"metadata" mapstructure:"metadata"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// PathsConfig defines which source units to scan and which paths to ignore.
type PathsConfig struct {
	Sources       []string `yaml:"sources" mapstructure:"sources"`               // glob patterns for snippet source units
	Ignore        []string `yaml:"ignore" mapstructure:"ignore"`                 // glob patterns to ignore
	SnippetSuffix string   `yaml:"snippet_suffix" mapstructure:"snippet_suffix"` // suffix stripped from a unit name to get its type name
}

// MetadataConfig locates the docfx metadata the member catalog is built from.
type MetadataConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // directory containing metadata .yml files
}

// OutputConfig defines where and how derivative files are written.
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`           // output directory for text files and markdown stubs
	Language string `yaml:"language" mapstructure:"language"` // code-reference language tag, e.g. "cs"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Sources: []string{
				"**/*Snippets.cs",
			},
			Ignore: []string{
				"obj/**",
				"bin/**",
				".git/**",
				"node_modules/**",
			},
			SnippetSuffix: "Snippets",
		},
		Metadata: MetadataConfig{
			Dir: "metadata",
		},
		Output: OutputConfig{
			Dir:      ".snipmark/output",
			Language: "cs",
		},
	}
}
