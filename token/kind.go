// Package token turns FHIRPath source text into a lazy stream of tokens.
//
// The tokenizer is a single-pass scanner: plain identifier and number
// payloads borrow byte ranges from the original source string, while
// string literals and back-tick identifiers are decoded into new
// strings. It works in the same spirit as the
// structural-character state machine in the JSON stream
// parser (process one byte at a time, branch on the current mode).
package token

// Kind discriminates the lexical category of a Token.
type Kind int

const (
	// Invalid marks a token that could not be classified; Tokenizer
	// never emits it directly, it instead returns an *Error.
	Invalid Kind = iota

	EOF

	// Literals.
	Integer
	Decimal
	String
	Boolean
	Date
	DateTime
	Time
	Quantity

	// Identifiers.
	Identifier
	DollarThis
	DollarIndex
	DollarTotal
	ContextVariable // %name or %`quoted`

	// Keywords.
	KwAnd
	KwOr
	KwXor
	KwImplies
	KwNot
	KwIn
	KwContains
	KwIs
	KwAs
	KwDiv
	KwMod
	KwTrue
	KwFalse
	KwWhere
	KwSelect
	KwAll
	KwFirst
	KwLast
	KwTail
	KwSkip
	KwTake
	KwDistinct
	KwCount
	KwOfType
	KwDefine
	KwEmpty

	// Punctuation.
	Dot
	Comma
	Semicolon
	Colon
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Backtick

	// Operators.
	Plus
	Minus
	Star
	Slash
	Eq
	NotEq
	LtEq
	GtEq
	Lt
	Gt
	Equivalent    // ~
	NotEquivalent // !~
	Ampersand     // &
	Pipe          // |
	Arrow         // =>
	Dollar        // $
	Percent       // %
)

// keywords maps reserved identifier text to its keyword Kind. Lookup
// happens only after an identifier has been fully scanned — the
// tokenizer never special-cases keyword characters while reading.
var keywords = map[string]Kind{
	"and":      KwAnd,
	"or":       KwOr,
	"xor":      KwXor,
	"implies":  KwImplies,
	"not":      KwNot,
	"in":       KwIn,
	"contains": KwContains,
	"is":       KwIs,
	"as":       KwAs,
	"div":      KwDiv,
	"mod":      KwMod,
	"true":     KwTrue,
	"false":    KwFalse,
	"where":    KwWhere,
	"select":   KwSelect,
	"all":      KwAll,
	"first":    KwFirst,
	"last":     KwLast,
	"tail":     KwTail,
	"skip":     KwSkip,
	"take":     KwTake,
	"distinct": KwDistinct,
	"count":    KwCount,
	"ofType":   KwOfType,
	"define":   KwDefine,
	"empty":    KwEmpty,
}

// String renders a human-readable name for k, used in parser error
// messages ("expected Identifier, found .").
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	Integer:         "Integer",
	Decimal:         "Decimal",
	String:          "String",
	Boolean:         "Boolean",
	Date:            "Date",
	DateTime:        "DateTime",
	Time:            "Time",
	Quantity:        "Quantity",
	Identifier:      "Identifier",
	DollarThis:      "$this",
	DollarIndex:     "$index",
	DollarTotal:     "$total",
	ContextVariable: "ContextVariable",
	Dot:             ".",
	Comma:           ",",
	Semicolon:       ";",
	Colon:           ":",
	LParen:          "(",
	RParen:          ")",
	LBracket:        "[",
	RBracket:        "]",
	LBrace:          "{",
	RBrace:          "}",
	Backtick:        "`",
	Plus:            "+",
	Minus:           "-",
	Star:            "*",
	Slash:           "/",
	Eq:              "=",
	NotEq:           "!=",
	LtEq:            "<=",
	GtEq:            ">=",
	Lt:              "<",
	Gt:              ">",
	Equivalent:      "~",
	NotEquivalent:   "!~",
	Ampersand:       "&",
	Pipe:            "|",
	Arrow:           "=>",
	Dollar:          "$",
	Percent:         "%",
}

// IsKeyword reports whether name, taken verbatim from source, names a
// reserved word and returns its Kind.
func IsKeyword(name string) (Kind, bool) {
	k, ok := keywords[name]
	return k, ok
}
