package parsectx

import (
	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

// constructorErrorState accumulates the flags constructor_error tracks
// while walking the argument list, per §4.4.5.
type constructorErrorState struct {
	size          int
	full          bool
	overFull      bool
	constAll      bool
	matrixInMatrix bool
	arrayArg      bool
}

// constructorError walks args and classifies the legality of building
// target via op, returning a non-empty reason on failure.
func (c *Context) constructorError(op ir.AggregateOp, target *ir.Type, args []ir.Node, loc token.Location) (state constructorErrorState, reason string) {
	state.constAll = true
	isMatrix := op.IsMatrixConstructor()

	for _, a := range args {
		at := a.Type()
		if at.IsSampler() {
			return state, "cannot construct from a sampler argument"
		}
		if at.IsVoid() {
			return state, "cannot construct from a void argument"
		}
		if at.IsArray() {
			state.arrayArg = true
			if !target.IsStruct() {
				return state, "cannot construct a non-struct from an array argument"
			}
		}
		if isMatrix && at.IsMatrix() {
			state.matrixInMatrix = true
		}
		if !a.IsConst() {
			state.constAll = false
		}

		state.size += at.ObjectSize()
		if state.full {
			state.overFull = true
		}
		if state.size >= target.ObjectSize() {
			state.full = true
		}
	}

	if state.overFull {
		return state, "too many arguments"
	}

	if target.IsStruct() {
		if len(args) != len(target.Fields) {
			return state, "wrong number of arguments to struct constructor"
		}
		if state.size < target.ObjectSize() {
			return state, "not enough data to construct struct"
		}
		return state, ""
	}

	if target.IsArray() {
		if !target.ArraySizes().IsSized() {
			target.ChangeArraySize(len(args))
		} else if len(args) != target.ArraySizes().Size() {
			return state, "array constructor argument count does not match array size"
		}
	}

	if state.matrixInMatrix {
		if !c.Gate.RequireProfile(c.Sink, loc, featuregate.MaskDesktop, "matrix from matrix construction") {
			return state, ""
		}
		if !c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskDesktop, 120, "", "matrix from matrix construction") {
			return state, ""
		}
		if target.IsArray() {
			// §9 open question 3: matrix-in-matrix into an array target has
			// no legality rule in the source; error rather than accept.
			return state, "cannot construct an array of matrices from a matrix argument"
		}
	}

	if state.size != 1 && state.size < target.ObjectSize() {
		return state, "not enough data to construct this type"
	}

	return state, ""
}

// AddConstructor implements the constructor-call path of handle_call
// (§4.4.4/§4.4.5): validates legality and builds the constructor
// aggregate, folding to a ConstantUnion when every argument is constant.
func (c *Context) AddConstructor(op ir.AggregateOp, target *ir.Type, args []ir.Node, loc token.Location) ir.Node {
	state, reason := c.constructorError(op, target, args, loc)
	if reason != "" {
		c.Sink.Error(loc, "", "%s", reason)
		return ir.RecoveryFloatZero(loc)
	}

	agg := ir.SetAggregateOp(ir.GrowAll(args), op, target, loc)

	if state.constAll {
		lanes := make([]ir.ConstUnion, 0, target.ObjectSize())
		for _, a := range args {
			if cn, ok := ir.AsConstant(a); ok {
				lanes = append(lanes, cn.Value.Values()...)
			}
		}
		return ir.MakeConst(ir.NewConstArray(lanes), target, loc)
	}
	return agg
}

// MapTypeToConstructorOp classifies a type-name constructor call by the
// target type's shape, per map_type_to_constructor_op.
func MapTypeToConstructorOp(target *ir.Type) ir.AggregateOp {
	switch {
	case target.IsStruct():
		return ir.ConstructStruct
	case target.IsArray():
		return ir.ConstructArray
	case target.IsMatrix() && target.Basic == ir.Double:
		return ir.ConstructDMatrix
	case target.IsMatrix():
		return ir.ConstructMatrix
	case target.IsVector():
		return ir.ConstructVector
	default:
		return ir.ConstructScalar
	}
}
