package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Generator Pipeline:
// - End-to-end: one unit, one matching member, zero diagnostics, output
//   files contain the snippet body and a resolved code reference
// - Missing metadata directory fails generator construction
// - Unresolved member references become diagnostics, not errors
// - Resource directives produce sample output end to end
// - Units sharing a base name in different directories keep separate output
// - Extraction and matching diagnostics from all units accumulate
// - Cancelled context aborts the run
// - TypeNameForFile strips extension, suffix, and trailing separators

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func testConfig(root string) Config {
	return Config{
		RootDir:        root,
		SourcePatterns: []string{"**/*Snippets.cs"},
		IgnorePatterns: []string{"obj/**"},
		SnippetSuffix:  "Snippets",
		MetadataDir:    filepath.Join(root, "metadata"),
		OutputDir:      filepath.Join(root, "output"),
		Language:       "cs",
	}
}

const widgetMetadata = `
items:
  - uid: Ns.Widget.DoThing
    id: DoThing()
    parent: Ns.Widget
    type: Method
`

func TestGenerate_EndToEnd(t *testing.T) {
	// Test: the full pipeline resolves a snippet to its member and writes
	// both the consolidated text file and the member stub
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"WidgetSnippets.cs": "// Snippet: DoThing\nx = 1;\n// End snippet\n",
		"metadata/api.yml":  widgetMetadata,
	})

	gen, err := New(testConfig(root), nil)
	require.NoError(t, err)

	stats, diags, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, diags.Len())
	assert.Equal(t, 1, stats.UnitsProcessed)
	assert.Equal(t, 1, stats.SnippetsExtracted)
	assert.Equal(t, 2, stats.FilesWritten)

	text, err := os.ReadFile(filepath.Join(root, "output", "WidgetSnippets.txt"))
	require.NoError(t, err)
	assert.Equal(t, "----- DoThing -----\nx = 1;\n\n", string(text))

	stub, err := os.ReadFile(filepath.Join(root, "output", "Ns.Widget.DoThing.md"))
	require.NoError(t, err)
	assert.Equal(t, "[!code-cs[](WidgetSnippets.txt#L2-L2)]\n", string(stub))
}

func TestNew_MissingMetadataDirIsFatal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"WidgetSnippets.cs": "// Snippet: DoThing\nx = 1;\n// End snippet\n",
	})

	_, err := New(testConfig(root), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadata")
}

func TestGenerate_UnresolvedReferenceIsDiagnostic(t *testing.T) {
	// Test: a reference with no matching member is reported but does not
	// abort the run
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"WidgetSnippets.cs": "// Snippet: Missing\nx = 1;\n// End snippet\n",
		"metadata/api.yml":  widgetMetadata,
	})

	gen, err := New(testConfig(root), nil)
	require.NoError(t, err)

	stats, diags, err := gen.Generate(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, diags.Len())
	assert.Contains(t, diags.Messages()[0], "snippet Missing matches no members")
	assert.Equal(t, 1, stats.SnippetsExtracted)
}

func TestGenerate_ResourceEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"WidgetSnippets.cs": "// Resource: widget.xml sample_widget\n",
		"widget.xml":        "<widget>\n  <spin/>\n</widget>\n",
		"metadata/api.yml":  widgetMetadata,
	})

	gen, err := New(testConfig(root), nil)
	require.NoError(t, err)

	stats, diags, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, diags.Len())
	assert.Equal(t, 1, stats.SnippetsExtracted)

	text, err := os.ReadFile(filepath.Join(root, "output", "WidgetSnippets.txt"))
	require.NoError(t, err)
	assert.Equal(t, "----- sample_widget -----\n<widget>\n  <spin/>\n</widget>\n\n", string(text))

	stub, err := os.ReadFile(filepath.Join(root, "output", "sample_widget.md"))
	require.NoError(t, err)
	assert.Equal(t, "[!code-cs[](WidgetSnippets.txt#L2-L4)]\n", string(stub))
}

func TestGenerate_SameBaseNameUnitsKeepSeparateOutput(t *testing.T) {
	// Test: units with the same base name in different directories write
	// distinct text files, and each stub references the right one
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/WidgetSnippets.cs": "// Snippet: DoThing\nfrom_a;\n// End snippet\n",
		"b/WidgetSnippets.cs": "// Snippet: Other\nfrom_b;\n// End snippet\n",
		"metadata/api.yml": `
items:
  - uid: Ns.Widget.DoThing
    id: DoThing()
    parent: Ns.Widget
    type: Method
  - uid: Ns.Widget.Other
    id: Other()
    parent: Ns.Widget
    type: Method
`,
	})

	gen, err := New(testConfig(root), nil)
	require.NoError(t, err)

	stats, diags, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, diags.Len())
	assert.Equal(t, 2, stats.SnippetsExtracted)

	textA, err := os.ReadFile(filepath.Join(root, "output", "a_WidgetSnippets.txt"))
	require.NoError(t, err)
	assert.Equal(t, "----- DoThing -----\nfrom_a;\n\n", string(textA))

	textB, err := os.ReadFile(filepath.Join(root, "output", "b_WidgetSnippets.txt"))
	require.NoError(t, err)
	assert.Equal(t, "----- Other -----\nfrom_b;\n\n", string(textB))

	stubA, err := os.ReadFile(filepath.Join(root, "output", "Ns.Widget.DoThing.md"))
	require.NoError(t, err)
	assert.Equal(t, "[!code-cs[](a_WidgetSnippets.txt#L2-L2)]\n", string(stubA))

	stubB, err := os.ReadFile(filepath.Join(root, "output", "Ns.Widget.Other.md"))
	require.NoError(t, err)
	assert.Equal(t, "[!code-cs[](b_WidgetSnippets.txt#L2-L2)]\n", string(stubB))
}

func TestGenerate_DiagnosticsAccumulateAcrossUnits(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/FirstSnippets.cs":  "// End snippet\n",
		"b/SecondSnippets.cs": "// Snippet: Unknown\nx\n// End snippet\n",
		"metadata/api.yml":    widgetMetadata,
	})

	gen, err := New(testConfig(root), nil)
	require.NoError(t, err)

	_, diags, err := gen.Generate(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, diags.Len())
	assert.Contains(t, diags.Messages()[0], "end snippet/sample without start")
	assert.Contains(t, diags.Messages()[1], "matches no members")
}

func TestGenerate_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"WidgetSnippets.cs": "// Snippet: DoThing\nx = 1;\n// End snippet\n",
		"metadata/api.yml":  widgetMetadata,
	})

	gen, err := New(testConfig(root), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = gen.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTypeNameForFile(t *testing.T) {
	tests := []struct {
		path     string
		suffix   string
		expected string
	}{
		{"src/WidgetSnippets.cs", "Snippets", "Widget"},
		{"src/Widget.Snippets.cs", "Snippets", "Widget"},
		{"src/widget_snippets.go", "snippets", "widget"},
		{"src/Widget.cs", "Snippets", "Widget"},
		{"WidgetSnippets.cs", "", "WidgetSnippets"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TypeNameForFile(tt.path, tt.suffix), tt.path)
	}
}
