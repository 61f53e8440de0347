package parsectx

import (
	"strings"

	"github.com/coregx/coregex"
)

var (
	pragmaCallForm = mustPragmaCompile(`^[A-Za-z_][A-Za-z0-9_]*\([^()]*\)$`)
	pragmaPairForm = mustPragmaCompile(`^[A-Za-z_][A-Za-z0-9_]*\s+\S+$`)
)

func mustPragmaCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// HandlePragma implements handle_pragma (§4.4.12/§6): `#pragma
// optimize(on|off)` and `#pragma debug(on|off)` update the context's
// pragma flags; anything else matching `name(value)` or `name value` is
// recorded in the pragma table, and anything else is ignored.
func (c *Context) HandlePragma(tokens []string) {
	joined := strings.TrimSpace(strings.Join(tokens, ""))
	if joined == "" {
		return
	}

	name, value, ok := splitPragmaCall(joined)
	if !ok {
		name, value, ok = splitPragmaPair(strings.Join(tokens, " "))
	}
	if !ok {
		return
	}

	switch name {
	case "optimize":
		c.Pragma.Optimize = value == "on"
	case "debug":
		c.Pragma.Debug = value == "on"
	default:
		c.Pragma.Table[name] = value
	}
}

func splitPragmaCall(s string) (name, value string, ok bool) {
	if !pragmaCallForm.MatchString(s) {
		return "", "", false
	}
	open := strings.IndexByte(s, '(')
	return s[:open], s[open+1 : len(s)-1], true
}

func splitPragmaPair(s string) (name, value string, ok bool) {
	s = strings.TrimSpace(s)
	if !pragmaPairForm.MatchString(s) {
		return "", "", false
	}
	sp := strings.IndexAny(s, " \t")
	return s[:sp], strings.TrimSpace(s[sp+1:]), true
}
