package parsectx

import (
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

// HandleVariable resolves a name looked up by the grammar driver into an
// HIR reference node, per §4.4.1.
func (c *Context) HandleVariable(name string, loc token.Location) ir.Node {
	sym, _, _ := c.Symbols.Find(name)
	if sym == nil {
		c.Sink.Error(loc, name, "'%s' : undeclared identifier", name)
		return ir.MakeSymbolRef(ir.RecoveryVariable(c.NextUniqueID()), loc)
	}

	if sym.IsAnonMember() {
		container := sym.Container
		field := container.Type.Fields[sym.MemberIndex]
		base := ir.MakeSymbolRef(container, loc)
		return ir.MakeIndexDirectStruct(base, sym.MemberIndex, field.Type, loc)
	}

	if !sym.IsVariable() {
		c.Sink.Error(loc, name, "variable name expected")
		return ir.MakeSymbolRef(ir.RecoveryVariable(c.NextUniqueID()), loc)
	}

	if sym.IsConst() {
		return ir.MakeConst(sym.ConstArray, sym.Type, loc)
	}
	return ir.MakeSymbolRef(sym, loc)
}
