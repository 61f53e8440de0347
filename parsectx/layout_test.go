package parsectx

import (
	"strings"
	"testing"

	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
)

func TestSetLayoutQualifierMatrixAndPacking(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	q := ir.NewQualifier()
	c.SetLayoutQualifier(&q, "Row_Major", 0, false, loc())
	if q.Layout.Matrix != ir.MatrixLayoutRow {
		t.Errorf("Layout.Matrix = %v, want Row", q.Layout.Matrix)
	}
	c.SetLayoutQualifier(&q, "std140", 0, false, loc())
	if q.Layout.Packing != ir.PackingStd140 {
		t.Errorf("Layout.Packing = %v, want Std140", q.Layout.Packing)
	}
}

func TestSetLayoutQualifierLocationRequiresValue(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	q := ir.NewQualifier()
	c.SetLayoutQualifier(&q, "location", 0, false, loc())
	if !strings.Contains(c.Sink.String(), "requires a value") {
		t.Errorf("String() = %q, want a 'requires a value' error", c.Sink.String())
	}
}

func TestSetLayoutQualifierLocationWithValue(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	q := ir.NewQualifier()
	c.SetLayoutQualifier(&q, "location", 2, true, loc())
	if c.Sink.HasErrors() {
		t.Fatalf("unexpected error: %s", c.Sink.String())
	}
	if q.Layout.Location != 2 {
		t.Errorf("Layout.Location = %d, want 2", q.Layout.Location)
	}
}

func TestSetLayoutQualifierUnrecognizedWarns(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	q := ir.NewQualifier()
	c.SetLayoutQualifier(&q, "bogus", 0, false, loc())
	if !strings.Contains(c.Sink.String(), "unrecognized layout qualifier") {
		t.Errorf("String() = %q, want an unrecognized-qualifier warning", c.Sink.String())
	}
}

func TestLayoutCheckLocationOnlyAppliesToPipeIOOrUniform(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 330, featuregate.StageVertex)
	typ := ir.NewType(ir.Float)
	typ.Qualifier.Layout = ir.NewLayout()
	typ.Qualifier.Layout.Location = 0
	sym := ir.NewVariableSymbol("x", typ, c.NextUniqueID())

	c.layoutCheck(sym, loc())
	if !strings.Contains(c.Sink.String(), "only applies to in/out/uniform") {
		t.Errorf("String() = %q, want a location-misuse error", c.Sink.String())
	}
}

func TestLayoutCheckBindingOnSamplerPasses(t *testing.T) {
	c := newTestContext(featuregate.ProfileCore, 450, featuregate.StageVertex)
	typ := ir.NewSamplerType(ir.Sampler{Dim: ir.Dim2D})
	typ.Qualifier.Layout = ir.NewLayout()
	typ.Qualifier.Layout.Binding = 0
	sym := ir.NewVariableSymbol("s", typ, c.NextUniqueID())

	c.layoutCheck(sym, loc())
	if c.Sink.HasErrors() {
		t.Errorf("unexpected error for layout(binding=0) on a sampler: %s", c.Sink.String())
	}
}
