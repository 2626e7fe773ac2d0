package catalog

// Member is one documented API member from the generated metadata.
type Member struct {
	// UID is the opaque catalog key, e.g. "Ns.Widget.Create(System.String)".
	UID string

	// ID is the member signature relative to its type, of the form
	// "Name(ParamType1,ParamType2)" or "Name()".
	ID string

	// Parent is the fully-qualified name of the declaring type.
	Parent string
}

// Catalog maps simple (unqualified) type names to the members declared on
// that type. It is built once from metadata and read-only afterwards.
type Catalog map[string][]Member

// MembersFor returns the members declared on the named type, or nil if the
// catalog has no entry for it.
func (c Catalog) MembersFor(typeName string) []Member {
	return c[typeName]
}
