package snippet

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// docfxIDPattern is the strict identifier rule for sample and resource IDs.
// These IDs become documentation anchors and file names, so only letters,
// digits, underscores, and dots are allowed.
var docfxIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// FileReader reads the full line content of a file. Resource directives
// resolve their paths against the source unit's directory before calling it.
type FileReader interface {
	ReadLines(path string) ([]string, error)
}

// Extractor runs the line-oriented extraction state machine over source
// units. All malformed-directive and structural problems are recorded on the
// shared diagnostics collector; extraction never aborts on them. The only
// fatal condition is a resource file that cannot be read.
type Extractor struct {
	reader FileReader
	diags  *Diagnostics
}

// NewExtractor creates an extractor that reads resource files through reader
// and records problems on diags.
func NewExtractor(reader FileReader, diags *Diagnostics) *Extractor {
	return &Extractor{
		reader: reader,
		diags:  diags,
	}
}

// Extract consumes the lines of one source unit and returns the completed
// snippets in source order. The state machine has two states: idle (open is
// nil) and open (one snippet collecting lines). Nested starts, stray ends,
// and misplaced directives are dropped with a diagnostic; the surrounding
// parse is not corrupted.
func (e *Extractor) Extract(unitPath string, lines []string) ([]*Snippet, error) {
	var snippets []*Snippet
	var open *Snippet

	for i, raw := range lines {
		loc := Location{File: unitPath, Line: i + 1}
		kind, payload := Classify(raw)

		switch kind {
		case DirectiveStartSnippet, DirectiveStartSample:
			if open != nil {
				e.diags.Add(loc, "invalid start of nested sample/snippet")
				continue
			}
			isSample := kind == DirectiveStartSample
			if isSample && !docfxIDPattern.MatchString(payload) {
				e.diags.Addf(loc, "invalid docfx snippet ID '%s'", payload)
				continue
			}
			if !isSample && !validMemberReference(payload) {
				e.diags.Addf(loc, "invalid snippet ID '%s'", payload)
				continue
			}
			open = &Snippet{
				ID:       payload,
				IsSample: isSample,
				Location: loc,
			}
			if !isSample {
				open.MemberReferences = append(open.MemberReferences, payload)
			}

		case DirectiveEnd:
			if open == nil {
				e.diags.Add(loc, "end snippet/sample without start")
				continue
			}
			open.Lines = TrimCommonIndent(open.Lines)
			snippets = append(snippets, open)
			open = nil

		case DirectiveAdditionalMember:
			switch {
			case open == nil:
				e.diags.Add(loc, "additional member ID not in snippet")
			case len(open.Lines) > 0:
				e.diags.Add(loc, "additional member ID part way through snippet")
			case !validMemberReference(payload):
				e.diags.Addf(loc, "invalid additional member ID '%s'", payload)
			default:
				open.MemberReferences = append(open.MemberReferences, payload)
			}

		case DirectiveResource:
			if open != nil {
				e.diags.Add(loc, "resource specified within snippet")
				continue
			}
			resource, err := e.inlineResource(unitPath, payload, loc)
			if err != nil {
				return nil, err
			}
			if resource != nil {
				snippets = append(snippets, resource)
			}

		case DirectiveContent:
			if open != nil {
				open.Lines = append(open.Lines, raw)
			}
		}
	}

	if open != nil {
		e.diags.Addf(open.Location, "snippet '%s' didn't end", open.ID)
	}

	return snippets, nil
}

// inlineResource synthesizes a whole-file sample from a resource directive.
// The payload must be exactly "<relative-file> <id>". Shape and ID problems
// are diagnostics; a failed read is fatal. Resource content is copied
// verbatim, with no directive scanning inside it.
func (e *Extractor) inlineResource(unitPath, payload string, loc Location) (*Snippet, error) {
	parts := strings.Fields(payload)
	if len(parts) != 2 {
		e.diags.Addf(loc, "invalid resource directive '%s'", payload)
		return nil, nil
	}
	file, id := parts[0], parts[1]
	if !docfxIDPattern.MatchString(id) {
		e.diags.Addf(loc, "invalid docfx snippet ID '%s'", id)
		return nil, nil
	}

	path := filepath.Join(filepath.Dir(unitPath), file)
	lines, err := e.reader.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %s: %w", path, err)
	}

	return &Snippet{
		ID:       id,
		IsSample: true,
		Lines:    lines,
		Location: Location{File: path, Line: 1},
	}, nil
}

// validMemberReference is the weaker ID rule used for member snippet IDs and
// additional member IDs: an ID containing an opening parenthesis must end
// with a closing one. Anything else is accepted here; whether it names a real
// member is decided later by resolution against the catalog.
func validMemberReference(id string) bool {
	if strings.Contains(id, "(") {
		return strings.HasSuffix(id, ")")
	}
	return true
}

// TrimCommonIndent removes the minimum leading-space count shared by all
// non-blank lines from every line, de-indenting the block without breaking
// relative indentation. Trimming is idempotent.
func TrimCommonIndent(lines []string) []string {
	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		n := len(line) - len(trimmed)
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= indent {
			out[i] = line[indent:]
		} else {
			out[i] = strings.TrimLeft(line, " ")
		}
	}
	return out
}
