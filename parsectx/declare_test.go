package parsectx

import (
	"strings"
	"testing"

	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
)

func TestDeclareVariableRejectsVoid(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	c.DeclareVariable("x", ir.NewType(ir.Void), ir.NewQualifier(), nil, nil, loc())
	if c.Sink.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", c.Sink.ErrorCount())
	}
}

func TestDeclareVariableRejectsUninitializedConst(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	q := ir.NewQualifier()
	q.Storage = ir.StorConst
	c.DeclareVariable("x", ir.NewType(ir.Float), q, nil, nil, loc())
	if c.Sink.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", c.Sink.ErrorCount())
	}
	if !strings.Contains(c.Sink.String(), "must be initialized") {
		t.Errorf("String() = %q, want a 'must be initialized' message", c.Sink.String())
	}
}

func TestDeclareVariableRejectsReservedIdentifier(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	c.DeclareVariable("gl_Custom", ir.NewType(ir.Float), ir.NewQualifier(), nil, nil, loc())
	if c.Sink.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", c.Sink.ErrorCount())
	}
	if !strings.Contains(c.Sink.String(), "reserved") {
		t.Errorf("String() = %q, want a 'reserved' message", c.Sink.String())
	}
}

func TestDeclareVariableRedefinition(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	c.DeclareVariable("x", ir.NewType(ir.Float), ir.NewQualifier(), nil, nil, loc())
	if c.Sink.HasErrors() {
		t.Fatalf("unexpected error after first declaration: %s", c.Sink.String())
	}
	c.DeclareVariable("x", ir.NewType(ir.Float), ir.NewQualifier(), nil, nil, loc())
	if c.Sink.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1 after redeclaration", c.Sink.ErrorCount())
	}
	if !strings.Contains(c.Sink.String(), "redefinition") {
		t.Errorf("String() = %q, want a 'redefinition' message", c.Sink.String())
	}
}

func TestDeclareVariableWithConstInitializer(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	q := ir.NewQualifier()
	q.Storage = ir.StorConst
	sym := c.DeclareVariable("x", ir.NewType(ir.Float), q, nil, floatConst(3), loc())
	if c.Sink.HasErrors() {
		t.Fatalf("unexpected error: %s", c.Sink.String())
	}
	if sym.ConstArray == nil {
		t.Fatal("const declaration did not fold a ConstArray")
	}
	if sym.ConstArray.At(0).AsFloat32() != 3 {
		t.Errorf("folded const = %v, want 3", sym.ConstArray.At(0))
	}
}

func TestDeclareArrayResizesPriorUnsizedDeclaration(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	unsized := ir.NewArraySizes(0)
	first := c.DeclareVariable("a", ir.NewType(ir.Float), ir.NewQualifier(), unsized, nil, loc())
	if !first.Type.IsUnsizedArray() {
		t.Fatalf("first declaration is not an unsized array: %v", first.Type)
	}

	sized := ir.NewArraySizes(4)
	second := c.DeclareVariable("a", ir.NewType(ir.Float), ir.NewQualifier(), sized, nil, loc())
	if c.Sink.HasErrors() {
		t.Fatalf("unexpected error resizing an unsized array: %s", c.Sink.String())
	}
	if first.Type.ArraySizes().Size() != 4 {
		t.Errorf("first declaration's shared ArraySizes did not observe the resize: size=%d", first.Type.ArraySizes().Size())
	}
	if second != first {
		t.Error("resizing an unsized array declaration should return the existing symbol")
	}
}

func TestAddBlockUniformInterpolationForbidden(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	mq := ir.NewQualifier()
	mq.Flags |= ir.FlagFlat
	fields := []*ir.Field{{Name: "v", Type: ir.NewType(ir.Float)}}

	c.currentBlockName = "Block"
	c.AddBlock(ir.StorUniform, fields, []ir.Qualifier{mq}, "", nil, loc())

	if !strings.Contains(c.Sink.String(), "interpolation") {
		t.Errorf("String() = %q, want an interpolation-forbidden message", c.Sink.String())
	}
}

func TestAddBlockSamplerForbidden(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	fields := []*ir.Field{{Name: "s", Type: ir.NewSamplerType(ir.Sampler{Dim: ir.Dim2D})}}

	c.currentBlockName = "Block"
	c.AddBlock(ir.StorUniform, fields, []ir.Qualifier{ir.NewQualifier()}, "", nil, loc())

	if !strings.Contains(c.Sink.String(), "samplers are not allowed") {
		t.Errorf("String() = %q, want a sampler-forbidden message", c.Sink.String())
	}
}

func TestAddBlockAnonymousRegistersMembers(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	fields := []*ir.Field{
		{Name: "a", Type: ir.NewType(ir.Float)},
		{Name: "b", Type: ir.NewType(ir.Int)},
	}
	mqs := []ir.Qualifier{ir.NewQualifier(), ir.NewQualifier()}

	c.currentBlockName = "AnonBlock"
	c.AddBlock(ir.StorUniform, fields, mqs, "", nil, loc())
	if c.Sink.HasErrors() {
		t.Fatalf("unexpected error: %s", c.Sink.String())
	}

	sym, _, _ := c.Symbols.Find("a")
	if sym == nil || !sym.IsAnonMember() {
		t.Fatalf("Find(a) = %v, want an anon-member symbol", sym)
	}
}

func TestAddBlockNamedInstance(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	fields := []*ir.Field{{Name: "a", Type: ir.NewType(ir.Float)}}
	mqs := []ir.Qualifier{ir.NewQualifier()}

	c.currentBlockName = "NamedBlock"
	sym := c.AddBlock(ir.StorUniform, fields, mqs, "inst", nil, loc())
	if c.Sink.HasErrors() {
		t.Fatalf("unexpected error: %s", c.Sink.String())
	}
	if sym.Name != "inst" {
		t.Errorf("instance symbol name = %q, want 'inst'", sym.Name)
	}
	found, _, _ := c.Symbols.Find("inst")
	if found != sym {
		t.Error("named block instance was not registered in the symbol table")
	}
}

func TestAddBlockRejectsBadStorage(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	fields := []*ir.Field{{Name: "a", Type: ir.NewType(ir.Float)}}
	mqs := []ir.Qualifier{ir.NewQualifier()}

	c.currentBlockName = "BadBlock"
	c.AddBlock(ir.StorConst, fields, mqs, "", nil, loc())
	if c.Sink.ErrorCount() == 0 {
		t.Fatal("expected an error for a const-storage interface block")
	}
}
