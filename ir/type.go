package ir

import (
	"bytes"
	"fmt"

	"github.com/cjo5/glslfront/common"
)

// Field is one member of a struct or interface-block type.
type Field struct {
	Name string
	Type *Type
}

// Type is the GLSL type model (spec component C1): a single flat struct
// describing every dimension simultaneously — basic kind, vector/matrix
// shape, array dimension, qualifiers, and (for struct/block/sampler types)
// the extra payload those kinds carry. Dereference strips exactly one
// outer dimension at a time rather than nesting Types inside each other,
// which keeps array-of-matrix-of-vector shapes flat and cheap to compare.
type Type struct {
	Basic      BasicType
	VectorSize int // 1..4; 1 for scalars, the row count for matrices
	MatrixCols int // 0 when not a matrix
	MatrixRows int // 0 when not a matrix

	arraySizes *ArraySizes // nil when not an array

	Qualifier Qualifier

	Fields    []*Field // non-nil only when Basic is Struct or Block
	Sampler   *Sampler // non-nil only when Basic is SamplerT
	BlockName string   // non-empty only when Basic is Block
	FieldName string   // name this Type was declared under, when known
}

// NewType creates a scalar (or struct/sampler placeholder) type of the
// given basic kind with default shape and qualifier.
func NewType(basic BasicType) *Type {
	return &Type{Basic: basic, VectorSize: 1, Qualifier: NewQualifier()}
}

// NewVectorType creates a vector type of the given basic scalar kind.
func NewVectorType(basic BasicType, size int) *Type {
	common.Assert(size >= 1 && size <= 4, "bad vector size %d", size)
	t := NewType(basic)
	t.VectorSize = size
	return t
}

// NewMatrixType creates a cols x rows matrix of float or double columns.
func NewMatrixType(basic BasicType, cols, rows int) *Type {
	common.Assert(cols >= 2 && cols <= 4 && rows >= 2 && rows <= 4, "bad matrix shape %dx%d", cols, rows)
	t := NewType(basic)
	t.VectorSize = rows
	t.MatrixCols = cols
	t.MatrixRows = rows
	return t
}

// NewSamplerType creates a sampler type from its parameterization.
func NewSamplerType(s Sampler) *Type {
	t := NewType(SamplerT)
	t.Sampler = &s
	return t
}

// NewStructType creates a struct type from an ordered field list.
func NewStructType(name string, fields []*Field) *Type {
	t := NewType(Struct)
	t.FieldName = name
	t.Fields = fields
	return t
}

// NewArrayOf returns a copy of elem with a fresh (unshared) array
// dimension of the given size. size == 0 means unsized.
func NewArrayOf(elem *Type, size int) *Type {
	t := elem.shallowCopy()
	t.arraySizes = NewArraySizes(size)
	return t
}

// shallowCopy duplicates the Type header but shares the Fields slice —
// mutating a copy's scalar fields never mutates the original's shape, but
// both still see the same struct field list, matching the "shallow_copy
// shares the field-list" rule in §3.
func (t *Type) shallowCopy() *Type {
	c := *t
	return &c
}

// ShallowCopy is the exported form of shallowCopy, used by callers (e.g.
// the HIR façade) that need an independent Type value describing the same
// shape.
func (t *Type) ShallowCopy() *Type {
	return t.shallowCopy()
}

// ShareArraySizes makes t reference the same ArraySizes handle as other,
// so later resolving other's unsized dimension is observed through t too.
func (t *Type) ShareArraySizes(other *Type) {
	t.arraySizes = other.arraySizes
}

// SetArraySizes attaches an explicit (possibly shared) ArraySizes handle.
func (t *Type) SetArraySizes(sizes *ArraySizes) {
	t.arraySizes = sizes
}

// ArraySizes exposes the underlying handle, or nil if t is not an array.
func (t *Type) ArraySizes() *ArraySizes {
	return t.arraySizes
}

// ChangeArraySize mutates the shared size cell in place; every Type
// sharing the handle observes the new size afterward.
func (t *Type) ChangeArraySize(n int) {
	common.Assert(t.arraySizes != nil, "ChangeArraySize on non-array type")
	t.arraySizes.ChangeSize(n)
}

func (t *Type) IsScalar() bool {
	return !t.IsArray() && t.MatrixCols == 0 && t.VectorSize == 1
}

func (t *Type) IsVector() bool {
	return !t.IsArray() && t.MatrixCols == 0 && t.VectorSize > 1
}

func (t *Type) IsMatrix() bool {
	return !t.IsArray() && t.MatrixCols > 0
}

func (t *Type) IsArray() bool {
	return t.arraySizes != nil
}

func (t *Type) IsUnsizedArray() bool {
	return t.IsArray() && t.arraySizes.Size() == 0
}

func (t *Type) IsStruct() bool {
	return t.Basic == Struct
}

func (t *Type) IsBlock() bool {
	return t.Basic == Block
}

func (t *Type) IsSampler() bool {
	return t.Basic == SamplerT
}

func (t *Type) IsVoid() bool {
	return t.Basic == Void
}

func (t *Type) ContainsArray() bool {
	if t.IsArray() {
		return true
	}
	for _, f := range t.Fields {
		if f.Type.ContainsArray() {
			return true
		}
	}
	return false
}

func (t *Type) ContainsSampler() bool {
	if t.IsSampler() {
		return true
	}
	for _, f := range t.Fields {
		if f.Type.ContainsSampler() {
			return true
		}
	}
	return false
}

// ObjectSize is the element count after flattening arrays, matrices and
// vectors: for a struct, the sum of its fields' sizes; otherwise the
// matrix cell count (or vector length for non-matrices), times the array
// length when t is a sized array (an unsized array counts as 1 element,
// matching how constructor-argument counting treats it before resolution).
func (t *Type) ObjectSize() int {
	unit := 0
	if t.IsStruct() || t.IsBlock() {
		for _, f := range t.Fields {
			unit += f.Type.ObjectSize()
		}
	} else if t.MatrixCols > 0 {
		unit = t.MatrixCols * t.MatrixRows
	} else if t.VectorSize > 0 {
		unit = t.VectorSize
	} else {
		unit = 1
	}
	if t.IsArray() && t.arraySizes.IsSized() {
		unit *= t.arraySizes.Size()
	}
	return unit
}

// Dereference reduces the outer dimension: array to element type, matrix
// to column vector, vector to scalar. Returns (nil, false) at rank 0
// (scalars, and structs/samplers with no outer dimension).
func (t *Type) Dereference() (*Type, bool) {
	if t.IsArray() {
		elem := t.shallowCopy()
		elem.arraySizes = nil
		return elem, true
	}
	if t.IsMatrix() {
		col := t.shallowCopy()
		col.MatrixCols = 0
		col.MatrixRows = 0
		col.VectorSize = t.MatrixRows
		return col, true
	}
	if t.IsVector() {
		s := t.shallowCopy()
		s.VectorSize = 1
		return s, true
	}
	return nil, false
}

// SameElementType reports whether t and other describe the same type once
// any outer array dimension on each is stripped.
func (t *Type) SameElementType(other *Type) bool {
	a, b := t, other
	if a.IsArray() {
		a, _ = a.Dereference()
	}
	if b.IsArray() {
		b, _ = b.Dereference()
	}
	return a.Equals(b)
}

// Equals is full structural equality, ignoring qualifiers (GLSL type
// identity does not depend on storage/precision/layout).
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Basic != other.Basic {
		return false
	}
	if t.VectorSize != other.VectorSize || t.MatrixCols != other.MatrixCols || t.MatrixRows != other.MatrixRows {
		return false
	}
	if t.IsArray() != other.IsArray() {
		return false
	}
	if t.IsArray() && t.arraySizes.Size() != other.arraySizes.Size() {
		return false
	}
	if t.IsSampler() {
		if other.Sampler == nil || !t.Sampler.Equals(*other.Sampler) {
			return false
		}
	}
	if t.IsBlock() && t.BlockName != other.BlockName {
		return false
	}
	if len(t.Fields) != len(other.Fields) {
		return false
	}
	for i, f := range t.Fields {
		if !f.Type.Equals(other.Fields[i].Type) {
			return false
		}
	}
	return true
}

// BasicString returns the GLSL spelling of the type's basic kind alone.
func (t *Type) BasicString() string {
	return BasicString(t.Basic)
}

// CompleteString renders a full type signature for diagnostics, e.g.
// "vec3", "mat4x3", "sampler2DArrayShadow", "struct Light".
func (t *Type) CompleteString() string {
	var buf bytes.Buffer
	if t.IsArray() {
		if t.arraySizes.IsSized() {
			fmt.Fprintf(&buf, "%s[%d]", t.elementString(), t.arraySizes.Size())
		} else {
			fmt.Fprintf(&buf, "%s[]", t.elementString())
		}
		return buf.String()
	}
	return t.elementString()
}

func (t *Type) elementString() string {
	switch {
	case t.IsSampler():
		return samplerString(*t.Sampler)
	case t.IsBlock():
		return "block " + t.BlockName
	case t.IsStruct():
		name := t.FieldName
		if name == "" {
			name = "<anonymous>"
		}
		return "struct " + name
	case t.MatrixCols > 0:
		return matrixString(t.Basic, t.MatrixCols, t.MatrixRows)
	case t.VectorSize > 1:
		return vectorString(t.Basic, t.VectorSize)
	default:
		return t.BasicString()
	}
}

func vectorString(b BasicType, size int) string {
	prefix := ""
	switch b {
	case Int:
		prefix = "i"
	case Uint:
		prefix = "u"
	case Bool:
		prefix = "b"
	case Double:
		prefix = "d"
	}
	return fmt.Sprintf("%svec%d", prefix, size)
}

func matrixString(b BasicType, cols, rows int) string {
	prefix := ""
	if b == Double {
		prefix = "d"
	}
	if cols == rows {
		return fmt.Sprintf("%smat%d", prefix, cols)
	}
	return fmt.Sprintf("%smat%dx%d", prefix, cols, rows)
}

func samplerString(s Sampler) string {
	var buf bytes.Buffer
	switch s.Scalar {
	case SamplerInt:
		buf.WriteString("i")
	case SamplerUint:
		buf.WriteString("u")
	}
	if s.Image {
		buf.WriteString("image")
	} else {
		buf.WriteString("sampler")
	}
	switch s.Dim {
	case Dim1D:
		buf.WriteString("1D")
	case Dim2D:
		buf.WriteString("2D")
	case Dim3D:
		buf.WriteString("3D")
	case DimCube:
		buf.WriteString("Cube")
	case DimRect:
		buf.WriteString("2DRect")
	case DimBuffer:
		buf.WriteString("Buffer")
	case Dim2DMS:
		buf.WriteString("2DMS")
	}
	if s.Arrayed {
		buf.WriteString("Array")
	}
	if s.Shadow {
		buf.WriteString("Shadow")
	}
	return buf.String()
}

func (t *Type) String() string {
	return t.CompleteString()
}

// CompatibleTypes reports whether an implicit conversion path could make
// from assignable to to. It only checks the coarse shape: equal types, or
// non-array, non-struct types of the same vector/matrix shape whose basic
// kinds are both numeric. The direction of the conversion is not checked,
// so narrowing pairs such as float to int are also reported compatible;
// AddConversion relies on this check alone.
func CompatibleTypes(from, to *Type) bool {
	if from.Equals(to) {
		return true
	}
	if from.IsArray() || to.IsArray() || from.IsStruct() || to.IsStruct() {
		return false
	}
	if from.VectorSize != to.VectorSize || from.MatrixCols != to.MatrixCols || from.MatrixRows != to.MatrixRows {
		return false
	}
	return isNumericBasic(from.Basic) && isNumericBasic(to.Basic)
}

func isNumericBasic(b BasicType) bool {
	switch b {
	case Int, Uint, Float, Double:
		return true
	default:
		return false
	}
}
