package ir

// StorageQualifier enumerates where a value lives / how it's shared.
type StorageQualifier int

const (
	StorTemporary StorageQualifier = iota
	StorGlobal
	StorConst
	StorConstReadonly
	StorIn
	StorOut
	StorInout
	StorVaryingIn
	StorVaryingOut
	StorUniform
	StorBuffer
	StorShared
	StorPointCoord
	StorVertexID
	StorInstanceID
	StorFragCoord
	StorFace
)

var storageStrings = map[StorageQualifier]string{
	StorTemporary:     "temp",
	StorGlobal:        "global",
	StorConst:         "const",
	StorConstReadonly: "const readonly",
	StorIn:            "in",
	StorOut:           "out",
	StorInout:         "inout",
	StorVaryingIn:     "varying in",
	StorVaryingOut:    "varying out",
	StorUniform:       "uniform",
	StorBuffer:        "buffer",
	StorShared:        "shared",
	StorPointCoord:    "gl_PointCoord",
	StorVertexID:      "gl_VertexID",
	StorInstanceID:    "gl_InstanceID",
	StorFragCoord:     "gl_FragCoord",
	StorFace:          "gl_FrontFacing",
}

func (s StorageQualifier) String() string {
	if str, ok := storageStrings[s]; ok {
		return str
	}
	return "storage(?)"
}

// Precision is the GLSL precision qualifier axis.
type Precision int

const (
	PrecisionNone Precision = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

func (p Precision) String() string {
	switch p {
	case PrecisionLow:
		return "lowp"
	case PrecisionMedium:
		return "mediump"
	case PrecisionHigh:
		return "highp"
	default:
		return ""
	}
}

// MatrixLayout is the layout(row_major|column_major) axis.
type MatrixLayout int

const (
	MatrixLayoutNone MatrixLayout = iota
	MatrixLayoutRow
	MatrixLayoutColumn
)

// Packing is the layout(packed|shared|std140|std430) axis.
type Packing int

const (
	PackingNone Packing = iota
	PackingPacked
	PackingShared
	PackingStd140
	PackingStd430
)

// NoLayoutValue marks location/binding as unset, per the §3 invariant that
// layout fields carry a sentinel rather than a meaningful zero.
const NoLayoutValue = -1

// Layout groups the layout(...) qualifier fields. Fields are merged
// field-by-field by whichever non-none/non-sentinel value is present; see
// parsectx's qualifier-merge logic for the merge policy itself.
type Layout struct {
	Matrix   MatrixLayout
	Packing  Packing
	Location int
	Binding  int
}

// NewLayout returns a Layout with every field at its unset sentinel.
func NewLayout() Layout {
	return Layout{Matrix: MatrixLayoutNone, Packing: PackingNone, Location: NoLayoutValue, Binding: NoLayoutValue}
}

// Boolean qualifier flags. At most one auxiliary flag (Centroid, Patch,
// Sample) and at most one interpolation flag (Smooth, Flat, NoPerspective)
// may be set at once; Qualifier.Validate checks this.
const (
	FlagInvariant = 1 << iota
	FlagCentroid
	FlagSmooth
	FlagFlat
	FlagNoPerspective
	FlagPatch
	FlagSample
	FlagShared
	FlagCoherent
	FlagVolatile
	FlagRestrict
	FlagReadOnly
	FlagWriteOnly
)

const auxiliaryFlags = FlagCentroid | FlagPatch | FlagSample
const interpolationFlags = FlagSmooth | FlagFlat | FlagNoPerspective

// Qualifier is the full packed qualifier set attached to a Type.
type Qualifier struct {
	Storage   StorageQualifier
	Precision Precision
	Flags     int
	Layout    Layout
}

// NewQualifier returns the default (temporary storage, no precision, no
// flags, unset layout) qualifier.
func NewQualifier() Qualifier {
	return Qualifier{Storage: StorTemporary, Precision: PrecisionNone, Layout: NewLayout()}
}

func (q Qualifier) Has(flag int) bool {
	return q.Flags&flag != 0
}

// Validate checks the §3 invariant: at most one auxiliary flag, at most one
// interpolation flag. Precision uniqueness is structural (a single field)
// and layout sentinels are enforced by construction, so neither needs a
// runtime check here.
func (q Qualifier) Validate() (reason string, ok bool) {
	if bitsSet(q.Flags&auxiliaryFlags) > 1 {
		return "multiple auxiliary storage qualifiers", false
	}
	if bitsSet(q.Flags&interpolationFlags) > 1 {
		return "multiple interpolation qualifiers", false
	}
	return "", true
}

func bitsSet(mask int) int {
	n := 0
	for mask != 0 {
		mask &= mask - 1
		n++
	}
	return n
}

func (q Qualifier) IsConst() bool {
	return q.Storage == StorConst || q.Storage == StorConstReadonly
}

func (q Qualifier) IsReadOnly() bool {
	return q.IsConst() || q.Storage == StorGlobal && false || q.Has(FlagReadOnly)
}

func (q Qualifier) IsUniformOrBuffer() bool {
	return q.Storage == StorUniform || q.Storage == StorBuffer
}

func (q Qualifier) IsPipeIO() bool {
	switch q.Storage {
	case StorIn, StorOut, StorVaryingIn, StorVaryingOut:
		return true
	default:
		return false
	}
}
