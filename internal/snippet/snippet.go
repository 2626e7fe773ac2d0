package snippet

import "fmt"

// Location identifies where a snippet or diagnostic originated.
type Location struct {
	File string
	Line int // 1-based
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Snippet represents one extracted example block from a source unit.
//
// A snippet is either a sample (free-form docfx ID, never matched against
// members) or a member snippet (its ID is a member reference and is always
// the first entry of MemberReferences). Member references may only be added
// while Lines is still empty.
type Snippet struct {
	// ID is either a docfx-style identifier (samples, resources) or a
	// member reference expression such as "Create(string,*)".
	ID string

	// IsSample is true for sample and resource snippets. Their IDs are
	// used directly as documentation anchors instead of being resolved
	// against the member catalog.
	IsSample bool

	// MemberReferences are the member reference expressions to resolve.
	// For member snippets the snippet's own ID is the first entry.
	MemberReferences []string

	// Lines is the snippet body, verbatim except for the uniform removal
	// of common leading whitespace applied when the snippet is closed.
	Lines []string

	// Location is where the snippet was opened (or, for resources, the
	// referenced file at line 1).
	Location Location

	// ResolvedMemberIDs holds the catalog UIDs the member references
	// resolved to. Populated by catalog.Resolve.
	ResolvedMemberIDs []string

	// RenderedStart and RenderedEnd are 1-based line positions of the
	// snippet body within the assembled output file. Populated by the
	// output assembler.
	RenderedStart int
	RenderedEnd   int
}

// Diagnostics accumulates problems found during extraction, matching, and
// assembly. Problems never abort the run; they are all collected so a single
// run surfaces every fixable issue in the source tree.
type Diagnostics struct {
	messages []string
}

// NewDiagnostics creates an empty diagnostics collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Add records a diagnostic at the given location.
func (d *Diagnostics) Add(loc Location, message string) {
	d.messages = append(d.messages, fmt.Sprintf("%s: %s", loc, message))
}

// Addf records a formatted diagnostic at the given location.
func (d *Diagnostics) Addf(loc Location, format string, args ...interface{}) {
	d.Add(loc, fmt.Sprintf(format, args...))
}

// Messages returns all accumulated diagnostic messages in the order they
// were recorded.
func (d *Diagnostics) Messages() []string {
	return d.messages
}

// HasErrors reports whether any diagnostics were recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.messages) > 0
}

// Len returns the number of accumulated diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.messages)
}
