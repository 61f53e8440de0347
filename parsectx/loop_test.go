package parsectx

import (
	"testing"

	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
)

func buildInductiveLoopParts(c *Context) (init, cond, terminal ir.Node, loopIndex int) {
	sym := ir.NewVariableSymbol("i", ir.NewType(ir.Int), c.NextUniqueID())
	loopIndex = sym.UniqueID

	initAssign := ir.AddAssign(ir.Assign, ir.MakeSymbolRef(sym, loc()), intConst(0), loc())
	init = ir.GrowAll([]ir.Node{initAssign})

	cond = ir.AddBinary(ir.Less, ir.MakeSymbolRef(sym, loc()), intConst(10), nil, loc())
	terminal = ir.AddUnary(ir.PostIncrement, ir.MakeSymbolRef(sym, loc()), ir.NewType(ir.Int), loc())
	return
}

func TestInductiveLoopIndexAccepts(t *testing.T) {
	c := newTestContext(featuregate.ProfileES, 100, featuregate.StageVertex)
	init, cond, terminal, loopIndex := buildInductiveLoopParts(c)

	got, ok := c.inductiveLoopIndex(init, cond, terminal, loc())
	if !ok {
		t.Fatalf("inductiveLoopIndex rejected a well-formed loop: %s", c.Sink.String())
	}
	if got != loopIndex {
		t.Errorf("inductiveLoopIndex() = %d, want %d", got, loopIndex)
	}
	if !c.InductiveLoopIDs[loopIndex] {
		t.Error("InductiveLoopIDs was not recorded")
	}
}

func TestInductiveLoopIndexRejectsMultiStatementInit(t *testing.T) {
	c := newTestContext(featuregate.ProfileES, 100, featuregate.StageVertex)
	_, cond, terminal, _ := buildInductiveLoopParts(c)
	sym := ir.NewVariableSymbol("j", ir.NewType(ir.Int), c.NextUniqueID())
	extra := ir.AddAssign(ir.Assign, ir.MakeSymbolRef(sym, loc()), intConst(0), loc())
	init := ir.GrowAll([]ir.Node{extra, extra})

	_, ok := c.inductiveLoopIndex(init, cond, terminal, loc())
	if ok {
		t.Error("inductiveLoopIndex accepted a multi-statement init")
	}
	if c.Sink.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", c.Sink.ErrorCount())
	}
}

func TestInductiveLoopIndexRejectsBadTerminal(t *testing.T) {
	c := newTestContext(featuregate.ProfileES, 100, featuregate.StageVertex)
	init, cond, _, _ := buildInductiveLoopParts(c)
	badTerminal := floatConst(1)

	_, ok := c.inductiveLoopIndex(init, cond, badTerminal, loc())
	if ok {
		t.Error("inductiveLoopIndex accepted an illegal terminal expression")
	}
}

func TestInductiveLoopIndexRejectsNonRelationalCond(t *testing.T) {
	c := newTestContext(featuregate.ProfileES, 100, featuregate.StageVertex)
	init, _, terminal, _ := buildInductiveLoopParts(c)
	badCond := floatConst(1)

	_, ok := c.inductiveLoopIndex(init, badCond, terminal, loc())
	if ok {
		t.Error("inductiveLoopIndex accepted a non-relational condition")
	}
}

func TestCheckInductiveLoopSkipsIncompleteLoops(t *testing.T) {
	c := newTestContext(featuregate.ProfileES, 100, featuregate.StageVertex)
	loop := ir.MakeLoop(true, nil, nil, nil, ir.GrowAll(nil), loc())
	c.CheckInductiveLoop(loop)
	if c.Sink.HasErrors() {
		t.Errorf("unexpected error for a loop missing init/cond/terminal: %s", c.Sink.String())
	}
}

func TestCheckInductiveLoopRecordsIndex(t *testing.T) {
	c := newTestContext(featuregate.ProfileES, 100, featuregate.StageVertex)
	init, cond, terminal, loopIndex := buildInductiveLoopParts(c)
	loop := ir.MakeLoop(true, init, cond, terminal, ir.GrowAll(nil), loc())

	c.CheckInductiveLoop(loop)
	if c.Sink.HasErrors() {
		t.Fatalf("unexpected error: %s", c.Sink.String())
	}
	if !c.InductiveLoopIDs[loopIndex] {
		t.Error("CheckInductiveLoop did not record the loop index")
	}
}
