package parsectx

import (
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

// inductiveLoopIndex classifies a loop's init/cond/terminal triple against
// the ES-100 Appendix A inductive-loop shape (§4.4.9), returning the
// loop-index variable's unique id on success.
//
// §9 open question 1: the source's boolean guard, read literally, is
// `(!size) == 1` rather than the evidently intended `size == 1`; this
// implements the intended check.
func (c *Context) inductiveLoopIndex(init, cond, terminal ir.Node, loc token.Location) (int, bool) {
	initAgg, ok := ir.AsAggregate(init)
	if !ok || initAgg.Op != ir.Sequence || len(initAgg.Sequence) != 1 {
		c.Sink.Error(loc, "", "inductive loop init must be a single assignment")
		return 0, false
	}

	assign, ok := ir.AsBinary(initAgg.Sequence[0])
	if !ok || assign.Op != ir.Assign {
		c.Sink.Error(loc, "", "inductive loop init must be a single assignment")
		return 0, false
	}
	lhs, ok := ir.AsSymbolRef(assign.Left)
	if !ok || !lhs.Type().IsScalar() || (lhs.Type().Basic != ir.Int && lhs.Type().Basic != ir.Float) {
		c.Sink.Error(loc, "", "inductive loop index must be a scalar int or float variable")
		return 0, false
	}
	if _, ok := ir.AsConstant(assign.Right); !ok {
		c.Sink.Error(loc, "", "inductive loop index must be initialized to a constant")
		return 0, false
	}
	loopIndex := lhs.Sym.UniqueID

	condBin, ok := ir.AsBinary(cond)
	if !ok || !isRelationalOp(condBin.Op) {
		c.Sink.Error(loc, "", "inductive loop condition must be a relational comparison of the loop index")
		return loopIndex, false
	}
	condLHS, ok := ir.AsSymbolRef(condBin.Left)
	if !ok || condLHS.Sym.UniqueID != loopIndex {
		c.Sink.Error(loc, "", "inductive loop condition must compare the loop index")
		return loopIndex, false
	}
	if _, ok := ir.AsConstant(condBin.Right); !ok {
		c.Sink.Error(loc, "", "inductive loop bound must be a constant")
		return loopIndex, false
	}

	if !isLegalTerminal(terminal, loopIndex) {
		c.Sink.Error(loc, "", "inductive loop terminal must be ++, --, += const or -= const on the loop index")
		return loopIndex, false
	}

	c.InductiveLoopIDs[loopIndex] = true
	return loopIndex, true
}

func isRelationalOp(op ir.BinaryOp) bool {
	switch op {
	case ir.Less, ir.LessEqual, ir.Greater, ir.GreaterEqual, ir.Equal, ir.NotEqual:
		return true
	default:
		return false
	}
}

func isLegalTerminal(terminal ir.Node, loopIndex int) bool {
	if u, ok := terminal.(*ir.Unary); ok {
		switch u.Op {
		case ir.PreIncrement, ir.PreDecrement, ir.PostIncrement, ir.PostDecrement:
			ref, ok := ir.AsSymbolRef(u.Operand)
			return ok && ref.Sym.UniqueID == loopIndex
		}
		return false
	}
	if b, ok := ir.AsBinary(terminal); ok && b.Op == ir.Assign {
		// `i += const` / `i -= const` lower to Assign(i, Add(i, const)) or
		// Assign(i, Sub(i, const)) once the grammar desugars compound
		// assignment, matching the rest of this HIR's shape.
		lhs, ok := ir.AsSymbolRef(b.Left)
		if !ok || lhs.Sym.UniqueID != loopIndex {
			return false
		}
		rhs, ok := ir.AsBinary(b.Right)
		if !ok || (rhs.Op != ir.Add && rhs.Op != ir.Sub) {
			return false
		}
		rlhs, ok := ir.AsSymbolRef(rhs.Left)
		if !ok || rlhs.Sym.UniqueID != loopIndex {
			return false
		}
		_, ok = ir.AsConstant(rhs.Right)
		return ok
	}
	return false
}

// CheckInductiveLoop implements the ES-100 §Appendix A gate for one loop
// statement: on failure it emits one diagnostic and leaves the loop
// intact (body-index-use scanning is delegated, per §4.4.9, outside this
// component's boundary).
func (c *Context) CheckInductiveLoop(loop *ir.Loop) {
	if loop.Init == nil || loop.Cond == nil || loop.Terminal == nil {
		return
	}
	c.inductiveLoopIndex(loop.Init, loop.Cond, loop.Terminal, loop.Loc())
}
