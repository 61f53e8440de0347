package parsectx

import (
	"errors"
	"strings"
	"testing"

	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
)

func TestParseShaderStringsAllEmptySucceeds(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	blank := "   \n\t  "
	ok, err := c.ParseShaderStrings([]*string{&blank}, nil, func(*Context) error {
		t.Fatal("drive should not be called when every source is blank")
		return nil
	})
	if !ok || err != nil {
		t.Errorf("ParseShaderStrings(blank) = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestParseShaderStringsNullSubstring(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	src := "void main() {}"
	ok, err := c.ParseShaderStrings([]*string{nil, &src}, nil, func(*Context) error { return nil })
	if ok {
		t.Error("ParseShaderStrings with a null source string should not succeed")
	}
	if err != nil {
		t.Errorf("unexpected err: %v", err)
	}
	if !strings.Contains(c.Sink.String(), "null shader source string") {
		t.Errorf("String() = %q, want a null-source-string error", c.Sink.String())
	}
}

func TestParseShaderStringsDriveInvokedAndErrorPropagated(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	src := "void main() {}"
	called := false
	driveErr := errors.New("grammar driver failed")

	ok, err := c.ParseShaderStrings([]*string{&src}, nil, func(cc *Context) error {
		called = true
		if cc != c {
			t.Error("drive was not called with this Context")
		}
		return driveErr
	})
	if !called {
		t.Error("drive was not invoked")
	}
	if ok {
		t.Error("ParseShaderStrings should not report success when drive errors")
	}
	if err != driveErr {
		t.Errorf("err = %v, want %v", err, driveErr)
	}
}

func TestParseShaderStringsRecoversPanic(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	src := "void main() {}"
	ok, err := c.ParseShaderStrings([]*string{&src}, nil, func(*Context) error {
		panic("grammar exploded")
	})
	if ok {
		t.Error("ParseShaderStrings should not report success after a recovered panic")
	}
	if err == nil || !strings.Contains(err.Error(), "panic during shader parse") {
		t.Errorf("err = %v, want a wrapped panic error", err)
	}
	if !strings.Contains(c.Sink.String(), "recovered panic") {
		t.Errorf("String() = %q, want an internal recovered-panic diagnostic", c.Sink.String())
	}
}

func TestParseShaderStringsLengthTruncation(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	src := "void main() {}garbage"
	ok, err := c.ParseShaderStrings([]*string{&src}, []int{len("void main() {}")}, func(*Context) error {
		return nil
	})
	if !ok || err != nil {
		t.Fatalf("ParseShaderStrings = (%v, %v)", ok, err)
	}
}

func TestFinalizeDrainsIndexLimitationQueue(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	c.NeedsIndexLimitationChecking = append(c.NeedsIndexLimitationChecking, ir.RecoveryFloatZero(loc()))
	c.Finalize()
	if len(c.NeedsIndexLimitationChecking) != 0 {
		t.Errorf("NeedsIndexLimitationChecking has %d entries after Finalize, want 0", len(c.NeedsIndexLimitationChecking))
	}
}

func TestFinalizeAcceptsConstantIndex(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	c.NeedsIndexLimitationChecking = append(c.NeedsIndexLimitationChecking, ir.RecoveryFloatZero(loc()))
	c.Finalize()
	if c.Sink.HasErrors() {
		t.Errorf("Finalize on a constant index reported errors: %s", c.Sink.String())
	}
}

func TestFinalizeAcceptsInductiveLoopIndex(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	sym := ir.NewVariableSymbol("i", ir.NewType(ir.Int), c.NextUniqueID())
	c.InductiveLoopIDs[sym.UniqueID] = true
	c.NeedsIndexLimitationChecking = append(c.NeedsIndexLimitationChecking, ir.MakeSymbolRef(sym, loc()))
	c.Finalize()
	if c.Sink.HasErrors() {
		t.Errorf("Finalize on an inductive loop index reported errors: %s", c.Sink.String())
	}
}

func TestFinalizeRejectsNonConstantNonInductiveIndex(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	sym := ir.NewVariableSymbol("j", ir.NewType(ir.Int), c.NextUniqueID())
	c.NeedsIndexLimitationChecking = append(c.NeedsIndexLimitationChecking, ir.MakeSymbolRef(sym, loc()))
	c.Finalize()
	if !c.Sink.HasErrors() {
		t.Error("Finalize on a plain variable index should report an error")
	}
	if !strings.Contains(c.Sink.String(), "index expression must be constant") {
		t.Errorf("String() = %q, want an index-expression-must-be-constant error", c.Sink.String())
	}
}

func TestParserErrorNormal(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	c.ParserError("syntax error")
	if !strings.Contains(c.Sink.String(), "syntax error") {
		t.Errorf("String() = %q, want the parser's message", c.Sink.String())
	}
	if strings.Contains(c.Sink.String(), "pre-mature EOF") {
		t.Errorf("String() = %q, should not mention pre-mature EOF when AfterEOF is false", c.Sink.String())
	}
}

func TestParserErrorPreMatureEOF(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	c.AfterEOF = true
	c.TokensBeforeEOF = 1
	c.ParserError("syntax error")
	if !strings.Contains(c.Sink.String(), "pre-mature EOF") {
		t.Errorf("String() = %q, want a pre-mature EOF error", c.Sink.String())
	}
}

func TestParserErrorSuppressedAfterEOF(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	c.AfterEOF = true
	c.TokensBeforeEOF = 3
	c.ParserError("syntax error")
	if c.Sink.HasErrors() {
		t.Errorf("ParserError with AfterEOF and TokensBeforeEOF != 1 should report nothing, got: %s", c.Sink.String())
	}
}

func TestResultPackagesIntermediate(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	sym := ir.NewFunctionSymbol("main", ir.MangleFunctionName("main", nil), ir.NewType(ir.Void), nil, c.NextUniqueID())
	c.HandlePrototype(sym, loc())

	result := c.Result()
	if result.MainCount != 1 {
		t.Errorf("Result().MainCount = %d, want 1", result.MainCount)
	}
	if result.Linkage != c.Linkage {
		t.Error("Result().Linkage does not match Context.Linkage")
	}
	if result.CallGraph != c.CallGraph {
		t.Error("Result().CallGraph does not match Context.CallGraph")
	}
}
