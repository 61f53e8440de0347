package featuregate

import "github.com/coregx/coregex"

// mustCompile wraps coregex.Compile, panicking on error — both patterns
// below are fixed literals, so a compile failure can only mean a typo in
// this file, not bad runtime input.
func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// extensionTokenRe matches a legal #extension token: an identifier, or
// the literal "all".
var extensionTokenRe = mustCompile(`^(all|[A-Za-z_][A-Za-z0-9_]*)$`)

// reservedIdentifierRe matches identifiers reserved outside the built-in
// symbol-table level: anything starting with "gl_" or containing a
// double underscore (§4.4.7 step 4's reservedErrorCheck).
var reservedIdentifierRe = mustCompile(`^(gl_.*|.*__.*)$`)

// ValidExtensionToken reports whether tok is a syntactically legal
// #extension name.
func ValidExtensionToken(tok string) bool {
	return extensionTokenRe.MatchString(tok)
}

// IsReservedIdentifier reports whether name is reserved for built-ins,
// per the gl_ prefix / double-underscore rule.
func IsReservedIdentifier(name string) bool {
	return reservedIdentifierRe.MatchString(name)
}
