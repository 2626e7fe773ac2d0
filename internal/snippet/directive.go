package snippet

import "strings"

// DirectiveKind classifies a single line of source text.
type DirectiveKind int

const (
	// DirectiveContent is any line that carries no directive marker.
	DirectiveContent DirectiveKind = iota
	// DirectiveStartSnippet opens a member snippet; payload is a member reference.
	DirectiveStartSnippet
	// DirectiveStartSample opens a sample; payload is a docfx identifier.
	DirectiveStartSample
	// DirectiveEnd closes the open snippet or sample.
	DirectiveEnd
	// DirectiveAdditionalMember adds a member reference to the open snippet.
	DirectiveAdditionalMember
	// DirectiveResource inlines an external file as a sample.
	DirectiveResource
)

// marker tokens are matched by substring containment so the directives work
// inside any comment syntax. "End snippet" and "End sample" are semantically
// identical; the two spellings exist for symmetry with the start markers.
var markers = []struct {
	kind  DirectiveKind
	token string
}{
	{DirectiveStartSnippet, "Snippet:"},
	{DirectiveStartSample, "Sample:"},
	{DirectiveEnd, "End snippet"},
	{DirectiveEnd, "End sample"},
	{DirectiveAdditionalMember, "Additional:"},
	{DirectiveResource, "Resource:"},
}

// Classify recognizes the directive carried by a line, if any. The payload is
// everything after the marker up to end-of-line, trimmed. Lines without a
// marker are classified as DirectiveContent with an empty payload.
func Classify(line string) (DirectiveKind, string) {
	for _, m := range markers {
		if idx := strings.Index(line, m.token); idx >= 0 {
			return m.kind, strings.TrimSpace(line[idx+len(m.token):])
		}
	}
	return DirectiveContent, ""
}
