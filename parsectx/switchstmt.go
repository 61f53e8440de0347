package parsectx

import (
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

// switchFrame is one level of the switch_sequence stack (§4.4.10): the
// statements and labels accumulated so far for one `switch` body.
type switchFrame struct {
	seq        []ir.Node
	caseValues []ir.ConstUnion
	hasDefault bool
	hasLabel   bool
}

// PushSwitch begins a new switch body.
func (c *Context) PushSwitch() {
	c.switchSequenceStack = append(c.switchSequenceStack, &switchFrame{})
}

func (c *Context) currentSwitchFrame() *switchFrame {
	return c.switchSequenceStack[len(c.switchSequenceStack)-1]
}

func (c *Context) popSwitchFrame() *switchFrame {
	frame := c.currentSwitchFrame()
	c.switchSequenceStack = c.switchSequenceStack[:len(c.switchSequenceStack)-1]
	return frame
}

// Wrapup implements wrapup(statements?, branch?): ordinary statements push
// onto the current frame's sequence, but only once at least one case or
// default label has been seen; a branch is checked against every prior
// label in the frame before it is recorded.
func (c *Context) Wrapup(statements []ir.Node, branch *ir.Branch, loc token.Location) {
	frame := c.currentSwitchFrame()

	if len(statements) > 0 {
		if !frame.hasLabel {
			c.Sink.Error(loc, "", "statement before first case/default label in switch")
		} else {
			frame.seq = append(frame.seq, statements...)
		}
	}

	if branch == nil {
		return
	}

	switch branch.Op {
	case ir.BranchDefault:
		if frame.hasDefault {
			c.Sink.Error(loc, "", "switch statement already has a default label")
		}
		frame.hasDefault = true
	case ir.BranchCase:
		if val, ok := ir.AsConstant(branch.Expr); ok {
			lane := val.Value.At(0)
			for _, seen := range frame.caseValues {
				if seen.Equals(lane) {
					c.Sink.Error(loc, "", "duplicate case value in switch statement")
					break
				}
			}
			frame.caseValues = append(frame.caseValues, lane)
		}
	}
	frame.hasLabel = true
	frame.seq = append(frame.seq, branch)
}

func isIntegerBasic(b ir.BasicType) bool {
	return b == ir.Int || b == ir.Uint
}

// AddSwitch implements addSwitch(expr, lastStatements): pops the current
// frame, validates expr's type, and assembles the final Switch node — or,
// for an empty body, drops the switch while preserving expr's side
// effects (a plain evaluation of it).
func (c *Context) AddSwitch(expr ir.Node, lastStatements []ir.Node, loc token.Location) ir.Node {
	frame := c.popSwitchFrame()

	if !expr.Type().IsScalar() || !isIntegerBasic(expr.Type().Basic) {
		c.Sink.Error(loc, "", "switch expression must be a scalar integer")
	}

	if !frame.hasLabel && len(lastStatements) == 0 {
		return expr
	}
	if frame.hasLabel && len(lastStatements) == 0 {
		c.Sink.Error(loc, "", "switch statement missing statements after the last label")
	}

	body := append(frame.seq, lastStatements...)
	bodyAgg := ir.SetAggregateOp(ir.GrowAll(body), ir.Sequence, ir.NewType(ir.Void), loc)
	return ir.MakeSwitch(expr, bodyAgg, loc)
}
