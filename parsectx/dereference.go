package parsectx

import (
	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

// HandleBracketDereference implements base[index], §4.4.2.
func (c *Context) HandleBracketDereference(base, index ir.Node, loc token.Location) ir.Node {
	bt := base.Type()
	if !bt.IsArray() && !bt.IsMatrix() && !bt.IsVector() {
		c.Sink.Error(loc, "[", "cannot index a %s value", bt.CompleteString())
		return ir.RecoveryFloatZero(loc)
	}

	elemType, ok := bt.Dereference()
	if !ok {
		return ir.RecoveryFloatZero(loc)
	}

	indexConst, indexIsConst := ir.AsConstant(index)

	if base.IsConst() && indexIsConst {
		k := indexConst.Value.At(0).AsInt()
		folded, foldErr := c.foldIndex(base, bt, k, loc)
		if foldErr {
			return ir.MakeConst(ir.NewConstArray([]ir.ConstUnion{ir.ConstFromDouble(0)}), elemType, loc)
		}
		return folded
	}

	if indexIsConst {
		k := indexConst.Value.At(0).AsInt()
		c.checkIndexBounds(bt, k, loc)
		if bt.IsUnsizedArray() {
			bt.ArraySizes().UpdateMaxObserved(k)
		}
		return ir.MakeIndexDirect(base, indexConst, loc)
	}

	if bt.IsArray() && elemType.IsSampler() {
		c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskCore, 400, "", "variable indexing of sampler arrays")
	}
	if bt.IsArray() && elemType.IsBlock() {
		c.Gate.RequireProfile(c.Sink, loc, featuregate.MaskNotES, "variable indexing of uniform/buffer block arrays")
	}

	result := ir.MakeIndexIndirect(base, index, loc)
	if c.es100IndexLimitsApply(bt) {
		c.AnyIndexLimits = true
		c.NeedsIndexLimitationChecking = append(c.NeedsIndexLimitationChecking, index)
	}
	return result
}

// es100IndexLimitsApply reports whether the deferred ES-100 Appendix-A
// index-limitation check applies to an indirect index into a value of
// this shape, given the configured generalXIndexing override limits.
func (c *Context) es100IndexLimitsApply(bt *ir.Type) bool {
	if c.Config.Profile != featuregate.ProfileES || c.Config.Version > 100 {
		return false
	}
	if bt.Qualifier.Storage == ir.StorUniform && !c.Config.Limits.GeneralUniformIndexing {
		return true
	}
	if bt.IsSampler() && !c.Config.Limits.GeneralSamplerIndexing {
		return true
	}
	if !c.Config.Limits.GeneralVariableIndexing {
		return true
	}
	return false
}

func (c *Context) checkIndexBounds(bt *ir.Type, k int, loc token.Location) {
	if bt.IsArray() && bt.ArraySizes().IsSized() {
		if k < 0 || k >= bt.ArraySizes().Size() {
			c.Sink.Error(loc, "", "array index out of range '%d'", k)
		}
		return
	}
	if bt.IsVector() && (k < 0 || k >= bt.VectorSize) {
		c.Sink.Error(loc, "", "vector index out of range '%d'", k)
	}
	if bt.IsMatrix() && (k < 0 || k >= bt.MatrixCols) {
		c.Sink.Error(loc, "", "matrix column index out of range '%d'", k)
	}
}

// foldIndex constant-folds base[k] using base's backing ConstArray,
// windowing rather than copying per §3's "zero-copy struct/matrix-column
// slicing" contract.
func (c *Context) foldIndex(base ir.Node, bt *ir.Type, k int, loc token.Location) (ir.Node, bool) {
	c.checkIndexBounds(bt, k, loc)
	constNode, ok := ir.AsConstant(base)
	if !ok {
		return nil, true
	}
	elemType, ok := bt.Dereference()
	if !ok {
		return nil, true
	}
	elemSize := elemType.ObjectSize()
	if k < 0 {
		k = 0
	}
	offset := k * elemSize
	if offset < 0 || offset+elemSize > constNode.Value.Len() {
		return nil, true
	}
	window := constNode.Value.Slice(offset, elemSize)
	return ir.MakeConst(window, elemType, loc), false
}

// swizzleSets are the three letter-sets a swizzle character may be drawn
// from (§4.4.3); mixing sets within one swizzle is an error.
var swizzleSets = []string{"xyzw", "rgba", "stpq"}

// decodeSwizzle validates and decodes a swizzle string into 0-based lane
// offsets, all drawn from exactly one set and each below vectorSize.
func decodeSwizzle(fields string, vectorSize int) ([]int, string, bool) {
	if len(fields) < 1 || len(fields) > 4 {
		return nil, "illegal vector field selection", false
	}
	setIdx := -1
	offsets := make([]int, len(fields))
	for i, ch := range fields {
		found := -1
		for s, set := range swizzleSets {
			for pos, c := range set {
				if c == ch {
					found = s
					offsets[i] = pos
					break
				}
			}
			if found >= 0 {
				break
			}
		}
		if found < 0 {
			return nil, "illegal vector field selection", false
		}
		if setIdx < 0 {
			setIdx = found
		} else if setIdx != found {
			return nil, "vector field selection not from the same set", false
		}
		if offsets[i] >= vectorSize {
			return nil, "vector field selection out of range", false
		}
	}
	return offsets, "", true
}

// HandleDotDereference implements base.field / base.method, §4.4.3.
func (c *Context) HandleDotDereference(base ir.Node, field string, loc token.Location) ir.Node {
	bt := base.Type()

	switch {
	case bt.IsArray():
		if field == "length" {
			return ir.MakeMethod(base, "length", ir.NewType(ir.Int), loc)
		}
		c.Sink.Error(loc, field, "no such field for array type")
		return ir.RecoveryFloatZero(loc)

	case bt.IsMatrix():
		c.Sink.Error(loc, field, "field selection not allowed on matrix type")
		return ir.RecoveryFloatZero(loc)

	case bt.IsStruct() || bt.IsBlock():
		for i, f := range bt.Fields {
			if f.Name == field {
				if base.IsConst() {
					return c.foldStructField(base, bt, i, loc)
				}
				return ir.MakeIndexDirectStruct(base, i, f.Type, loc)
			}
		}
		c.Sink.Error(loc, field, "no such field")
		return ir.RecoveryFloatZero(loc)

	case bt.IsScalar():
		offsets, reason, ok := decodeSwizzle(field, 1)
		if !ok {
			c.Sink.Error(loc, field, "%s", reason)
			return ir.RecoveryFloatZero(loc)
		}
		if len(offsets) == 1 {
			return base
		}
		c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskCore, 420, "420pack", "swizzle of a scalar")
		return c.buildSwizzle(base, offsets, loc)

	case bt.IsVector():
		offsets, reason, ok := decodeSwizzle(field, bt.VectorSize)
		if !ok {
			c.Sink.Error(loc, field, "%s", reason)
			return ir.RecoveryFloatZero(loc)
		}
		return c.buildSwizzle(base, offsets, loc)

	default:
		c.Sink.Error(loc, field, "no such field")
		return ir.RecoveryFloatZero(loc)
	}
}

func (c *Context) buildSwizzle(base ir.Node, offsets []int, loc token.Location) ir.Node {
	if len(offsets) == 1 {
		return ir.MakeIndexDirect(base, ir.MakeConst(ir.NewConstArray([]ir.ConstUnion{ir.ConstFromInt(int32(offsets[0]))}), ir.NewType(ir.Int), loc), loc)
	}
	if base.IsConst() {
		constNode, _ := ir.AsConstant(base)
		lanes := make([]ir.ConstUnion, len(offsets))
		for i, off := range offsets {
			lanes[i] = constNode.Value.At(off)
		}
		t := base.Type().ShallowCopy()
		t.VectorSize = len(offsets)
		return ir.MakeConst(ir.NewConstArray(lanes), t, loc)
	}
	return ir.MakeSwizzle(base, offsets, loc)
}

// foldStructField constant-folds base.field for struct/block field index i
// using the field layout's flattened offset within base's const array.
func (c *Context) foldStructField(base ir.Node, bt *ir.Type, i int, loc token.Location) ir.Node {
	constNode, ok := ir.AsConstant(base)
	if !ok {
		return ir.MakeIndexDirectStruct(base, i, bt.Fields[i].Type, loc)
	}
	offset := 0
	for j := 0; j < i; j++ {
		offset += bt.Fields[j].Type.ObjectSize()
	}
	size := bt.Fields[i].Type.ObjectSize()
	window := constNode.Value.Slice(offset, size)
	return ir.MakeConst(window, bt.Fields[i].Type, loc)
}
