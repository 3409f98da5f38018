package token

// Position locates a token within the original source string.
type Position struct {
	Offset int // byte offset, zero-based
	Line   int // 1-based line number
	Column int // 1-based column, in runes
}

// Token is an immutable lexical unit. Text is a slice of the original
// source for plain identifiers and number literals, the decoded value
// for string literals and back-tick identifiers, and the canonical
// spelling for punctuation and operators.
type Token struct {
	Kind Kind
	Text string
	Pos  Position

	// Unit is populated only for Kind == Quantity and holds the raw
	// unit text (a UCUM-quoted string or a bare calendar-unit word),
	// still unparsed at this layer.
	Unit string
}

// Is reports whether t has the given kind — a small readability helper
// used pervasively by the parser's lookahead checks.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// String implements fmt.Stringer for debugging and test failure output.
func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.Text + ")"
}
