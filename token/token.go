// Package token holds the location and token model the semantic-analysis
// core consumes from the (out-of-scope) lexer and grammar driver.
package token

import "fmt"

// Location identifies a point in a compilation unit as a source-string
// index plus a line number, matching how a multi-string shader source
// (glShaderSource-style) is addressed.
type Location struct {
	Source int
	Line   int
}

// NoLocation means a node was synthesized and has no source position.
var NoLocation = Location{Source: -1, Line: -1}

func NewLocation(source, line int) Location {
	return Location{Source: source, Line: line}
}

func (l Location) IsValid() bool {
	return l.Source >= 0 && l.Line > 0
}

func (l Location) String() string {
	if !l.IsValid() {
		return "0:0"
	}
	return fmt.Sprintf("%d:%d", l.Source, l.Line)
}

// Kind identifies the lexical class of a token handed to the core by the
// lexer/preprocessor.
type Kind int

const (
	Invalid Kind = iota
	EOF
	Ident

	IntLiteral
	UintLiteral
	FloatLiteral
	DoubleLiteral
	BoolLiteral
	StringLiteral

	Punct // operators and punctuation; Text carries the exact spelling
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Ident:
		return "identifier"
	case IntLiteral:
		return "int-literal"
	case UintLiteral:
		return "uint-literal"
	case FloatLiteral:
		return "float-literal"
	case DoubleLiteral:
		return "double-literal"
	case BoolLiteral:
		return "bool-literal"
	case StringLiteral:
		return "string-literal"
	case Punct:
		return "punctuation"
	default:
		return "token(?)"
	}
}

// Token is the unit the grammar driver hands to core handlers: a kind, its
// spelling, and where it came from. Numeric/string literal values are
// carried as Text and decoded by the handler that needs them (the lexer
// does not pre-parse literal values, per spec's out-of-scope boundary).
type Token struct {
	Kind Kind
	Text string
	Loc  Location
}

// Synthetic creates a token with no representation in the source, used for
// dummy recovery nodes and compiler-generated identifiers (e.g. anonymous
// block instance names).
func Synthetic(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text, Loc: NoLocation}
}

func (t Token) String() string {
	return fmt.Sprintf("%s: %s", t.Loc, t.Text)
}

func (t Token) IsValid() bool {
	return t.Loc.IsValid()
}
