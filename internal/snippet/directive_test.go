package snippet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Directive Recognizer:
// - Each marker token is recognized with its payload trimmed
// - Markers are recognized anywhere in the line, not only at line start
// - "End snippet" and "End sample" classify identically
// - Lines without a marker are content with an empty payload
// - End markers carry no meaningful payload

func TestClassify_RecognizesAllDirectives(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		kind    DirectiveKind
		payload string
	}{
		{"start snippet", "// Snippet: DoThing", DirectiveStartSnippet, "DoThing"},
		{"start sample", "// Sample: widget_intro", DirectiveStartSample, "widget_intro"},
		{"end snippet", "// End snippet", DirectiveEnd, ""},
		{"end sample", "// End sample", DirectiveEnd, ""},
		{"additional member", "// Additional: DoThing(string)", DirectiveAdditionalMember, "DoThing(string)"},
		{"resource", "// Resource: foo.xml sample_foo", DirectiveResource, "foo.xml sample_foo"},
		{"content", "var x = 1;", DirectiveContent, ""},
		{"empty line", "", DirectiveContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, payload := Classify(tt.line)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.payload, payload)
		})
	}
}

func TestClassify_MarkerAnywhereInLine(t *testing.T) {
	// Test: markers work inside any comment syntax, at any column
	kind, payload := Classify("        # Snippet: Create(string,*)")
	assert.Equal(t, DirectiveStartSnippet, kind)
	assert.Equal(t, "Create(string,*)", payload)

	kind, _ = Classify("\t\t/* End sample */")
	assert.Equal(t, DirectiveEnd, kind)
}

func TestClassify_PayloadIsTrimmed(t *testing.T) {
	// Test: payload is everything after the marker, trimmed
	_, payload := Classify("// Snippet:    DoThing   ")
	assert.Equal(t, "DoThing", payload)
}

func TestClassify_EndVariantsAreIdentical(t *testing.T) {
	// Test: the two end spellings are semantically the same directive
	endSnippet, _ := Classify("// End snippet")
	endSample, _ := Classify("// End sample")
	assert.Equal(t, endSnippet, endSample)
}
