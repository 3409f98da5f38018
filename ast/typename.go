package ast

// QualifiedName flattens a node that is either a bare Identifier or a
// left-nested Path of Identifiers (e.g. `FHIR.Patient`, `System.Boolean`)
// into its dotted textual form. It is used when a type name arrives as
// an ordinary expression argument — `.ofType(Quantity)`,
// `.ofType(FHIR.Patient)` — rather than through the `is`/`as` keyword grammar, which already
// carries the name as a string.
func QualifiedName(n Node) (string, bool) {
	switch t := n.(type) {
	case *Identifier:
		return t.Name, true
	case *Path:
		baseName, ok := QualifiedName(t.Base)
		if !ok {
			return "", false
		}
		seg, ok := t.Segment.(*Identifier)
		if !ok {
			return "", false
		}
		return baseName + "." + seg.Name, true
	default:
		return "", false
	}
}
