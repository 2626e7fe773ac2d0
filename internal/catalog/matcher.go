package catalog

import (
	"strings"

	"github.com/ssmelov/snipmark/internal/snippet"
)

// fullyQualifiedString is the one type alias the matcher understands: a
// reference parameter written as "string" matches this candidate type.
const fullyQualifiedString = "System.String"

// Resolve annotates each snippet with the catalog UIDs its member references
// match. Every reference must resolve to exactly one member: zero matches and
// multiple matches are both diagnostics, and ambiguity is never resolved by
// picking the first candidate. Samples carry no member references and pass
// through untouched.
func Resolve(snippets []*snippet.Snippet, members []Member, diags *snippet.Diagnostics) {
	for _, s := range snippets {
		for _, ref := range s.MemberReferences {
			matches := matchMembers(ref, members)
			switch len(matches) {
			case 1:
				s.ResolvedMemberIDs = append(s.ResolvedMemberIDs, matches[0].UID)
			case 0:
				diags.Addf(s.Location, "snippet %s matches no members", ref)
			default:
				ids := make([]string, len(matches))
				for i, m := range matches {
					ids[i] = m.ID
				}
				diags.Addf(s.Location, "snippet %s matches multiple members: %s",
					ref, strings.Join(ids, ", "))
			}
		}
	}
}

// matchMembers returns every member whose signature the reference matches.
func matchMembers(ref string, members []Member) []Member {
	var out []Member
	for _, m := range members {
		if matchesReference(ref, m.ID) {
			out = append(out, m)
		}
	}
	return out
}

// matchesReference implements the tolerant signature match. A reference
// without a parameter list matches any candidate with the same name. A
// parenthesized reference must match the candidate's name exactly and its
// parameters positionally. The comparison is a shallow string heuristic, not
// a type system; generic types with arity greater than one are not
// disambiguated precisely.
func matchesReference(ref, candidate string) bool {
	open := strings.Index(ref, "(")
	if open < 0 {
		return strings.HasPrefix(candidate, ref+"(")
	}

	// Name portion, including the opening parenthesis, must match exactly.
	if !strings.HasPrefix(candidate, ref[:open+1]) {
		return false
	}

	refParams := parameterList(ref)
	candParams := parameterList(candidate)

	// An empty-parameter candidate only matches an empty-parameter
	// reference. Without this guard "Name()" would split into one blank
	// token and falsely match single-parameter candidates.
	if candParams == "" {
		return refParams == ""
	}

	refTokens := strings.Split(refParams, ",")
	candTokens := strings.Split(candParams, ",")
	if len(refTokens) != len(candTokens) {
		return false
	}
	for i := range refTokens {
		if !parameterMatches(strings.TrimSpace(refTokens[i]), strings.TrimSpace(candTokens[i])) {
			return false
		}
	}
	return true
}

// parameterMatches compares one positional parameter pair. The reference
// token may be a wildcard, the "string" alias, or a short or fully-qualified
// type name; short vs. qualified names compare by their last dot segment.
func parameterMatches(ref, candidate string) bool {
	if ref == "*" {
		return true
	}
	if ref == "string" && candidate == fullyQualifiedString {
		return true
	}
	return lastSegment(ref) == lastSegment(candidate)
}

// parameterList extracts the substring between the outer parentheses.
func parameterList(id string) string {
	open := strings.Index(id, "(")
	closing := strings.LastIndex(id, ")")
	if open < 0 || closing < open {
		return ""
	}
	return id[open+1 : closing]
}

func lastSegment(s string) string {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
