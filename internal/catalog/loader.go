package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// metadataFile mirrors the docfx managed-reference YAML layout. Only the
// fields the catalog needs are unmarshalled.
type metadataFile struct {
	Items []metadataItem `yaml:"items"`
}

type metadataItem struct {
	UID    string `yaml:"uid"`
	ID     string `yaml:"id"`
	Parent string `yaml:"parent"`
	Type   string `yaml:"type"`
}

// Load builds the member catalog from every .yml/.yaml file under dir.
// Only items whose ID carries a parameter list (methods and constructors)
// participate in snippet matching. A missing metadata directory is fatal:
// without it no member reference can ever resolve.
func Load(dir string) (Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("metadata directory %s not found: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("metadata path %s is not a directory", dir)
	}

	catalog := Catalog{}
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read metadata file %s: %w", path, err)
		}

		var file metadataFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse metadata file %s: %w", path, err)
		}

		for _, item := range file.Items {
			if item.Parent == "" || !strings.Contains(item.ID, "(") {
				continue
			}
			typeName := simpleName(item.Parent)
			catalog[typeName] = append(catalog[typeName], Member{
				UID:    item.UID,
				ID:     item.ID,
				Parent: item.Parent,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return catalog, nil
}

// simpleName returns the last dot-delimited segment of a fully-qualified
// type name.
func simpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
