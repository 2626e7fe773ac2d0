package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Catalog Loader:
// - Loads members from docfx metadata YAML, keyed by simple parent name
// - Items without a parameter list (types, namespaces) are skipped
// - Items without a parent are skipped
// - Multiple files and multiple parents merge into one catalog
// - Non-YAML files in the metadata directory are ignored
// - Missing metadata directory is a fatal error
// - Malformed YAML is a fatal error

func writeMetadata(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoad_BuildsCatalogFromMetadata(t *testing.T) {
	tempDir := t.TempDir()
	writeMetadata(t, tempDir, "widget.yml", `
items:
  - uid: Ns.Widget
    id: Widget
    type: Class
  - uid: Ns.Widget.Create(System.String)
    id: Create(System.String)
    parent: Ns.Widget
    type: Method
  - uid: Ns.Widget.Create(System.String,System.Int32)
    id: Create(System.String,System.Int32)
    parent: Ns.Widget
    type: Method
`)

	catalog, err := Load(tempDir)

	require.NoError(t, err)
	members := catalog.MembersFor("Widget")
	require.Len(t, members, 2)
	assert.Equal(t, "Ns.Widget.Create(System.String)", members[0].UID)
	assert.Equal(t, "Create(System.String)", members[0].ID)
	assert.Equal(t, "Ns.Widget", members[0].Parent)
}

func TestLoad_SkipsItemsWithoutParameterList(t *testing.T) {
	// Test: only methods and constructors (IDs with parentheses) can be
	// snippet targets
	tempDir := t.TempDir()
	writeMetadata(t, tempDir, "widget.yml", `
items:
  - uid: Ns.Widget.Name
    id: Name
    parent: Ns.Widget
    type: Property
  - uid: Ns.Widget.Create(System.String)
    id: Create(System.String)
    parent: Ns.Widget
    type: Method
`)

	catalog, err := Load(tempDir)

	require.NoError(t, err)
	members := catalog.MembersFor("Widget")
	require.Len(t, members, 1)
	assert.Equal(t, "Create(System.String)", members[0].ID)
}

func TestLoad_MergesMultipleFilesAndParents(t *testing.T) {
	tempDir := t.TempDir()
	writeMetadata(t, tempDir, "widget.yml", `
items:
  - uid: Ns.Widget.Create(System.String)
    id: Create(System.String)
    parent: Ns.Widget
    type: Method
`)
	writeMetadata(t, tempDir, "gadget.yaml", `
items:
  - uid: Other.Gadget.Spin(System.Int32)
    id: Spin(System.Int32)
    parent: Other.Gadget
    type: Method
`)

	catalog, err := Load(tempDir)

	require.NoError(t, err)
	assert.Len(t, catalog.MembersFor("Widget"), 1)
	assert.Len(t, catalog.MembersFor("Gadget"), 1)
	assert.Nil(t, catalog.MembersFor("Missing"))
}

func TestLoad_IgnoresNonYAMLFiles(t *testing.T) {
	tempDir := t.TempDir()
	writeMetadata(t, tempDir, "notes.txt", "items: [this is not yaml metadata")

	catalog, err := Load(tempDir)

	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestLoad_MissingDirectoryIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_MalformedYAMLIsFatal(t *testing.T) {
	tempDir := t.TempDir()
	writeMetadata(t, tempDir, "broken.yml", "items: [unclosed")

	_, err := Load(tempDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yml")
}
