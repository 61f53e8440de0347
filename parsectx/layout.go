package parsectx

import (
	"strings"

	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

var matrixLayoutTable = map[string]ir.MatrixLayout{
	"column_major": ir.MatrixLayoutColumn,
	"row_major":    ir.MatrixLayoutRow,
}

var packingTable = map[string]ir.Packing{
	"packed":  ir.PackingPacked,
	"shared":  ir.PackingShared,
	"std140":  ir.PackingStd140,
	"std430":  ir.PackingStd430,
}

// SetLayoutQualifier implements setLayoutQualifier(id[, value]) (§4.4.11):
// lowercases id and folds it into the layout fields of qualifier,
// consulting value only for location/binding.
func (c *Context) SetLayoutQualifier(qualifier *ir.Qualifier, id string, value int, hasValue bool, loc token.Location) {
	id = strings.ToLower(id)

	if ml, ok := matrixLayoutTable[id]; ok {
		qualifier.Layout.Matrix = ml
		return
	}
	if pk, ok := packingTable[id]; ok {
		if pk == ir.PackingStd430 {
			c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskAny, 430, "GL_ARB_shader_storage_buffer_object", "std430 layout")
		}
		qualifier.Layout.Packing = pk
		return
	}

	switch id {
	case "location":
		if !hasValue {
			c.Sink.Error(loc, id, "layout(location=...) requires a value")
			return
		}
		c.Gate.RequireStage(c.Sink, loc, featuregate.MaskAllStages, "layout(location=...)")
		c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskAny, 130, "", "layout(location=...)")
		qualifier.Layout.Location = value
	case "binding":
		if !hasValue {
			c.Sink.Error(loc, id, "layout(binding=...) requires a value")
			return
		}
		c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskAny, 420, "GL_ARB_shading_language_420pack", "layout(binding=...)")
		qualifier.Layout.Binding = value
	default:
		c.Sink.Warn(loc, id, "unrecognized layout qualifier '%s'", id)
	}
}

// layoutCheck verifies location/binding qualifiers resolved onto sym's
// type apply to a legal kind of symbol, per §4.4.11's second half.
func (c *Context) layoutCheck(sym *ir.Symbol, loc token.Location) {
	q := sym.Type.Qualifier
	if q.Layout.Location != ir.NoLayoutValue && !q.IsPipeIO() && !q.IsUniformOrBuffer() {
		c.Sink.Error(loc, sym.Name, "layout(location=...) only applies to in/out/uniform declarations")
	}
	if q.Layout.Binding != ir.NoLayoutValue {
		if !sym.Type.IsSampler() && !sym.Type.IsBlock() && !q.IsUniformOrBuffer() {
			c.Sink.Error(loc, sym.Name, "layout(binding=...) only applies to samplers and uniform/buffer blocks")
		}
		c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskAny, 420, "GL_ARB_shading_language_420pack", "layout(binding=...)")
	}
}
