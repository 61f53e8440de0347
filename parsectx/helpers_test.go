package parsectx

import (
	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

func newTestContext(profile featuregate.Profile, version int, stage featuregate.Stage) *Context {
	cfg := Config{
		Version:  version,
		Profile:  profile,
		Language: stage,
	}
	return NewContext(cfg, nil)
}

func loc() token.Location {
	return token.NewLocation(0, 1)
}

func intConst(v int32) *ir.ConstantUnion {
	return ir.MakeConst(ir.NewConstArray([]ir.ConstUnion{ir.ConstFromInt(v)}), ir.NewType(ir.Int), loc())
}

func floatConst(v float64) *ir.ConstantUnion {
	return ir.MakeConst(ir.NewConstArray([]ir.ConstUnion{ir.ConstFromDouble(v)}), ir.NewType(ir.Float), loc())
}

func vecConst(vals ...float64) *ir.ConstantUnion {
	lanes := make([]ir.ConstUnion, len(vals))
	for i, v := range vals {
		lanes[i] = ir.ConstFromDouble(v)
	}
	return ir.MakeConst(ir.NewConstArray(lanes), ir.NewVectorType(ir.Float, len(vals)), loc())
}
