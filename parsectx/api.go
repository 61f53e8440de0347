package parsectx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

// Intermediate is the populated output of a successful (or partially
// recovered) compilation unit, per §6's "Outputs".
type Intermediate struct {
	Linkage   *ir.LinkageAggregate
	CallGraph *ir.CallGraph
	MainCount int
}

// ParseShaderStrings is the driver entry point named in §6:
// `parse_shader_strings(pp_ctx, strings, lengths)`. It validates the raw
// source strings, then hands off to the (out-of-scope) lexer/grammar
// driver — which calls back into this Context's Handle*/Add*/Declare*
// methods for every reduction — and finally runs Finalize. sources[i]
// being nil models a null C-string pointer in the reference API; lengths
// may be nil to mean "use each string's natural length".
//
// This is the core's single panic/recover boundary (§9 "Variadic
// formatted errors" / the internal-error discipline in report.Sink):
// a panic during analysis is converted into a located internal-error
// diagnostic and a wrapped error, rather than propagating past this call.
func (c *Context) ParseShaderStrings(sources []*string, lengths []int, drive func(*Context) error) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.Sink.Internal(c.Loc, "recovered panic: %v", r)
			err = errors.Wrap(fmt.Errorf("%v", r), "panic during shader parse")
			ok = false
		}
	}()

	allEmpty := true
	for i, s := range sources {
		loc := token.NewLocation(i, 1)
		if s == nil {
			c.Sink.Error(loc, "", "null shader source string at index %d", i)
			continue
		}
		text := *s
		if lengths != nil && i < len(lengths) && lengths[i] >= 0 && lengths[i] <= len(text) {
			text = text[:lengths[i]]
		}
		if strings.TrimSpace(text) != "" {
			allEmpty = false
		}
	}

	if allEmpty {
		return !c.Sink.HasErrors(), nil
	}

	if drive != nil {
		if driveErr := drive(c); driveErr != nil {
			return false, driveErr
		}
	}

	c.Finalize()
	return !c.Sink.HasErrors(), nil
}

// Finalize drains needs_index_limitation_checking in FIFO/declaration
// order (§5's ordering guarantee, §8 invariant 6), running
// constantIndexExpressionCheck on each entry, and is the last step of one
// compilation unit before the error_count==0 success contract named in §6
// is evaluated.
func (c *Context) Finalize() {
	for len(c.NeedsIndexLimitationChecking) > 0 {
		c.constantIndexExpressionCheck(c.NeedsIndexLimitationChecking[0])
		c.NeedsIndexLimitationChecking = c.NeedsIndexLimitationChecking[1:]
	}
}

// constantIndexExpressionCheck implements constant_index_expression_check
// (§4.4.2/§4.4.9): once one of the six generalXIndexing overrides is off,
// an indirect index into the value it covers must be either a constant
// (foldable by the time finalize runs) or the index variable of an
// enclosing inductive loop (InductiveLoopIDs, populated by
// inductiveLoopIndex in loop.go) — anything else is rejected.
func (c *Context) constantIndexExpressionCheck(index ir.Node) {
	if _, ok := ir.AsConstant(index); ok {
		return
	}
	if ref, ok := ir.AsSymbolRef(index); ok && c.InductiveLoopIDs[ref.Sym.UniqueID] {
		return
	}
	c.Sink.Error(index.Loc(), "", "index expression must be constant, or the index of an enclosing inductive loop")
}

// ParserError implements parser_error (§6), the grammar driver's syntax-
// error callback. The special "pre-mature EOF" token replaces the
// offending token only when the error occurs at end-of-file with exactly
// one token seen since the driver last set AfterEOF; any other count of
// tokens seen after EOF is reported nowhere at all.
func (c *Context) ParserError(s string) {
	if c.AfterEOF {
		if c.TokensBeforeEOF == 1 {
			c.Sink.Error(c.Loc, "pre-mature EOF", "%s", s)
		}
		return
	}
	c.Sink.Error(c.Loc, "", "%s", s)
}

// Result packages the populated Intermediate once analysis has finished,
// for a driver that wants the output without re-reading Context fields.
func (c *Context) Result() Intermediate {
	return Intermediate{
		Linkage:   c.Linkage,
		CallGraph: c.CallGraph,
		MainCount: c.mainCount,
	}
}
