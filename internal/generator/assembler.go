package generator

import (
	"fmt"
	"strings"

	"github.com/ssmelov/snipmark/internal/snippet"
)

// Unit is one processed source unit: its output key, the type whose members
// its snippets reference, and the snippets extracted from it in source order.
type Unit struct {
	// Key is the base name used for the unit's consolidated text file.
	Key string

	// TypeName is the simple name of the type owning the unit's snippets.
	TypeName string

	// Snippets are the extracted, member-resolved snippets in source order.
	Snippets []*snippet.Snippet
}

// codeRef points at a snippet body inside a consolidated text file.
type codeRef struct {
	file  string
	start int
	end   int
}

// Assembler turns resolved snippets into the final output files: one
// consolidated text file per unit, with a separator line before each snippet
// body, plus one markdown stub per documentation anchor (member UID or
// sample ID) containing docfx code references into the text files.
type Assembler struct {
	writer   *AtomicWriter
	language string
}

// NewAssembler creates an assembler writing into outputDir. The language tag
// is embedded in the generated code references (e.g. "cs" → [!code-cs[...]]).
func NewAssembler(outputDir, language string) (*Assembler, error) {
	writer, err := NewAtomicWriter(outputDir)
	if err != nil {
		return nil, err
	}
	return &Assembler{
		writer:   writer,
		language: language,
	}, nil
}

// Write assembles all units and returns the number of files written. It
// records each snippet's rendered line range as a side effect. Units without
// snippets produce no files. Write errors are fatal: by this point every
// recoverable problem has already been reported as a diagnostic.
func (a *Assembler) Write(units []*Unit) (int, error) {
	written := 0
	refOrder := []string{}
	refs := map[string][]codeRef{}

	for _, u := range units {
		if len(u.Snippets) == 0 {
			continue
		}

		textName := u.Key + ".txt"
		var b strings.Builder
		line := 1

		for _, s := range u.Snippets {
			fmt.Fprintf(&b, "----- %s -----\n", s.ID)
			line++

			s.RenderedStart = line
			for _, content := range s.Lines {
				b.WriteString(content)
				b.WriteByte('\n')
				line++
			}
			s.RenderedEnd = line - 1
			if s.RenderedEnd < s.RenderedStart {
				// Empty body: keep the range non-inverted.
				s.RenderedEnd = s.RenderedStart
			}

			// Blank line between snippets keeps the text file readable.
			b.WriteByte('\n')
			line++

			anchors := s.ResolvedMemberIDs
			if s.IsSample {
				anchors = []string{s.ID}
			}
			for _, anchor := range anchors {
				if _, seen := refs[anchor]; !seen {
					refOrder = append(refOrder, anchor)
				}
				refs[anchor] = append(refs[anchor], codeRef{
					file:  textName,
					start: s.RenderedStart,
					end:   s.RenderedEnd,
				})
			}
		}

		if err := a.writer.WriteTextFile(textName, b.String()); err != nil {
			return written, err
		}
		written++
	}

	for _, anchor := range refOrder {
		var b strings.Builder
		for _, r := range refs[anchor] {
			fmt.Fprintf(&b, "[!code-%s[](%s#L%d-L%d)]\n", a.language, r.file, r.start, r.end)
		}
		if err := a.writer.WriteTextFile(stubFileName(anchor), b.String()); err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}

// stubFileName maps a documentation anchor to a safe markdown file name.
// Member UIDs contain parentheses and commas that have no place in a file
// name; sample IDs pass through unchanged.
func stubFileName(anchor string) string {
	var b strings.Builder
	for _, r := range anchor {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + ".md"
}
