package parsectx

import (
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

// qualifierPhase orders the qualifier categories named in §4.4.6's
// ordering rule: invariant, then interpolation, then auxiliary, then
// storage, then precision. ResetQualifierPhase starts a fresh sequence
// for each declarator list the grammar begins accumulating qualifiers for.
type qualifierPhase int

const (
	phaseInvariant qualifierPhase = iota
	phaseInterpolation
	phaseAuxiliary
	phaseStorage
	phasePrecision
)

// ResetQualifierPhase must be called by the grammar driver before it
// starts folding qualifier tokens for a new declaration, so ordering is
// checked within one declarator list rather than across the whole file.
func (c *Context) ResetQualifierPhase() {
	c.qualifierPhase = phaseInvariant
}

var storageMergeTable = map[[2]ir.StorageQualifier]ir.StorageQualifier{
	{ir.StorIn, ir.StorOut}:    ir.StorInout,
	{ir.StorOut, ir.StorIn}:    ir.StorInout,
	{ir.StorIn, ir.StorConst}:  ir.StorConstReadonly,
	{ir.StorConst, ir.StorIn}:  ir.StorConstReadonly,
}

// MergeQualifiers implements merge(dst, src, force), §4.4.6. srcPhase
// identifies which category of qualifier src represents, for the
// ordering check; pass phaseStorage etc. from the grammar action that
// calls this for a given token class.
func (c *Context) MergeQualifiers(dst ir.Qualifier, src ir.Qualifier, srcFlagsOnly int, srcPhase qualifierPhase, force bool, loc token.Location) ir.Qualifier {
	if !force && c.Config.Version < 420 {
		if srcPhase < c.qualifierPhase {
			c.Sink.Warn(loc, "", "qualifiers must appear in the order: invariant, interpolation, auxiliary storage, storage, precision")
		}
		if srcPhase == phaseStorage && src.Storage == ir.StorConst && (dst.Storage == ir.StorIn || dst.Storage == ir.StorOut) {
			c.Sink.Error(loc, "", "const must appear before in/out, not after")
		}
		c.qualifierPhase = srcPhase
	}

	if srcFlagsOnly != 0 {
		dupAux := dst.Flags&srcFlagsOnly&auxiliaryFlagsMask() != 0
		dupInterp := dst.Flags&srcFlagsOnly&interpolationFlagsMask() != 0
		if dupAux || dupInterp {
			c.Sink.Error(loc, "", "replicated qualifiers")
		} else {
			dst.Flags |= srcFlagsOnly
		}
	}

	if src.Storage != ir.StorTemporary {
		switch dst.Storage {
		case ir.StorTemporary, ir.StorGlobal:
			dst.Storage = src.Storage
		default:
			if merged, ok := storageMergeTable[[2]ir.StorageQualifier{dst.Storage, src.Storage}]; ok {
				dst.Storage = merged
			} else if dst.Storage != src.Storage {
				c.Sink.Error(loc, "", "too many storage qualifiers")
			}
		}
	}

	if src.Precision != ir.PrecisionNone {
		if dst.Precision != ir.PrecisionNone && dst.Precision != src.Precision && !force {
			c.Sink.Error(loc, "", "too many precision qualifiers")
		}
		dst.Precision = src.Precision
	}

	dst.Layout = mergeLayout(dst.Layout, src.Layout)

	if reason, ok := dst.Validate(); !ok {
		c.Sink.Error(loc, "", "%s", reason)
	}

	return dst
}

func mergeLayout(dst, src ir.Layout) ir.Layout {
	if src.Matrix != ir.MatrixLayoutNone {
		dst.Matrix = src.Matrix
	}
	if src.Packing != ir.PackingNone {
		dst.Packing = src.Packing
	}
	if src.Location != ir.NoLayoutValue {
		dst.Location = src.Location
	}
	if src.Binding != ir.NoLayoutValue {
		dst.Binding = src.Binding
	}
	return dst
}

func auxiliaryFlagsMask() int {
	return ir.FlagCentroid | ir.FlagPatch | ir.FlagSample
}

func interpolationFlagsMask() int {
	return ir.FlagSmooth | ir.FlagFlat | ir.FlagNoPerspective
}
