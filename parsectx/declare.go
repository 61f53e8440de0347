package parsectx

import (
	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

// builtInRedeclarable whitelists the gl_ names a desktop shader may
// redeclare at global scope (e.g. `out gl_PerVertex {...};`-style
// redeclaration of an interface built-in), each gated by a minimum
// version. Anything not listed here that still starts with "gl_" falls
// through to the plain reserved-identifier rejection in step 4.
var builtInRedeclarable = map[string]int{
	"gl_FragDepth":  0,
	"gl_PointSize":  0,
	"gl_ClipVertex": 0,
	"gl_Position":   0,
}

// DeclareVariable implements declare_variable (§4.4.7).
func (c *Context) DeclareVariable(name string, declType *ir.Type, qualifier ir.Qualifier, arraySizes *ir.ArraySizes, initializer ir.Node, loc token.Location) *ir.Symbol {
	t := declType.ShallowCopy()
	t.Qualifier = qualifier

	if t.IsVoid() {
		c.Sink.Error(loc, name, "cannot declare a variable of type void")
		return ir.RecoveryVariable(c.NextUniqueID())
	}
	if qualifier.IsConst() && initializer == nil {
		c.Sink.Error(loc, name, "const variable '%s' must be initialized", name)
	}

	newDeclaration := true
	var sym *ir.Symbol

	if minVersion, redeclarable := builtInRedeclarable[name]; redeclarable && c.Config.Profile != featuregate.ProfileES {
		if prior, builtin, _ := c.Symbols.Find(name); prior != nil && builtin {
			if minVersion == 0 || c.Config.Version >= minVersion {
				sym = c.Symbols.CopyUp(prior)
				sym.Type = t
				newDeclaration = false
			}
		}
	}

	if sym == nil {
		if featuregate.IsReservedIdentifier(name) && !c.Config.ParsingBuiltins {
			c.Sink.Error(loc, name, "'%s' is reserved", name)
		}
	}

	if arraySizes != nil {
		if sym == nil {
			if c.Config.Profile == featuregate.ProfileES && initializer == nil && !arraySizes.IsSized() {
				c.Sink.Error(loc, name, "array size required")
			}
			if t.IsArray() {
				c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskAny, 430, "GL_ARB_arrays_of_arrays", "arrays of arrays")
			}
			sym = c.declareArray(name, t, arraySizes, loc)
			newDeclaration = sym != nil
		}
	}

	if sym == nil {
		sym = ir.NewVariableSymbol(name, t, c.NextUniqueID())
		if existing := c.Symbols.Insert(sym); existing != nil {
			c.Sink.Error(loc, name, "redefinition of '%s'", name)
		}
	}

	if initializer != nil {
		c.executeInitializer(sym, initializer, loc)
	}

	c.layoutCheck(sym, loc)

	if newDeclaration && c.IsGlobalScope() {
		c.Linkage.Add(sym)
	}

	return sym
}

// declareArray implements declareArray: creates a fresh array Variable,
// or resizes a prior unsized declaration of the same element type in the
// same scope, sharing its ArraySizes handle so every reference sees the
// resolved size.
func (c *Context) declareArray(name string, elemType *ir.Type, sizes *ir.ArraySizes, loc token.Location) *ir.Symbol {
	arrayType := elemType.ShallowCopy()
	arrayType.SetArraySizes(sizes)

	if prior, _, current := c.Symbols.Find(name); prior != nil && current && prior.IsVariable() {
		if prior.Type.IsUnsizedArray() && prior.Type.SameElementType(arrayType) {
			prior.Type.ShareArraySizes(arrayType)
			prior.Type.ChangeArraySize(sizes.Size())
			return prior
		}
		c.Sink.Error(loc, name, "redefinition of '%s'", name)
		return prior
	}

	sym := ir.NewVariableSymbol(name, arrayType, c.NextUniqueID())
	if existing := c.Symbols.Insert(sym); existing != nil {
		c.Sink.Error(loc, name, "redefinition of '%s'", name)
		return existing
	}
	return sym
}

// executeInitializer implements execute_initializer: uniform and buffer
// variables cannot be initialized (an initializer on one is rejected with
// an error, and nothing is folded or stored for it). Brace-list
// aggregates recurse through convertInitializer; everything else
// converts against the declared type and either folds into a const-array
// (const) or becomes an Assign statement the caller threads into
// the enclosing statement sequence via the returned node (ignored here,
// since declare_variable's contract is the Symbol, not the statement —
// callers needing the Assign node call AddAssign themselves using the
// same conversion this performs).
func (c *Context) executeInitializer(sym *ir.Symbol, initializer ir.Node, loc token.Location) ir.Node {
	if sym.Type.Qualifier.IsUniformOrBuffer() && sym.Type.Qualifier.Storage != ir.StorConst && sym.Type.Qualifier.Storage != ir.StorConstReadonly {
		c.Sink.Error(loc, sym.Name, "cannot initialize a uniform or buffer variable")
		return nil
	}

	converted := c.convertInitializer(sym.Type, initializer, loc)
	if converted == nil {
		c.Sink.Error(loc, sym.Name, "cannot convert initializer to '%s'", sym.Type.CompleteString())
		return nil
	}

	if sym.Type.Qualifier.IsConst() {
		constNode, ok := ir.AsConstant(converted)
		if !ok {
			c.Sink.Error(loc, sym.Name, "initializer of const '%s' is not a compile-time constant", sym.Name)
			return nil
		}
		sym.ConstArray = constNode.Value
		return constNode
	}

	return ir.AddAssign(ir.Assign, ir.MakeSymbolRef(sym, loc), converted, loc)
}

// convertInitializer structurally matches a brace-list Aggregate against
// target's shape (array/struct/matrix/vector), synthesizing the
// corresponding constructor call; a plain expression is converted via the
// ordinary implicit-conversion path.
func (c *Context) convertInitializer(target *ir.Type, initializer ir.Node, loc token.Location) ir.Node {
	agg, isBraceList := ir.AsAggregate(initializer)
	if !isBraceList || agg.Op != ir.Sequence {
		converted, ok := ir.AddConversion(target, initializer.Type(), initializer, loc)
		if !ok {
			return nil
		}
		return converted
	}

	op := MapTypeToConstructorOp(target)
	elems := agg.Sequence
	if target.IsArray() || target.IsStruct() {
		converted := make([]ir.Node, 0, len(elems))
		for i, e := range elems {
			var elemType *ir.Type
			if target.IsStruct() {
				if i >= len(target.Fields) {
					c.Sink.Error(loc, "", "too many initializers for struct")
					break
				}
				elemType = target.Fields[i].Type
			} else {
				elemType, _ = target.Dereference()
			}
			converted = append(converted, c.convertInitializer(elemType, e, loc))
		}
		return c.AddConstructor(op, target, converted, loc)
	}

	return c.AddConstructor(op, target, elems, loc)
}

// blockStorageAllowed restricts which storage qualifiers an interface block
// may carry, per §4.4.8.
func blockStorageAllowed(s ir.StorageQualifier) bool {
	switch s {
	case ir.StorUniform, ir.StorBuffer, ir.StorVaryingIn, ir.StorVaryingOut:
		return true
	default:
		return false
	}
}

// pipeInOutFix normalizes a block member's raw in/out storage qualifier
// to the varying_in/varying_out flavor the block's own storage implies,
// per pipe_in_out_fix.
func pipeInOutFix(member ir.Qualifier, blockStorage ir.StorageQualifier) ir.Qualifier {
	switch member.Storage {
	case ir.StorIn:
		member.Storage = ir.StorVaryingIn
	case ir.StorOut:
		member.Storage = ir.StorVaryingOut
	case ir.StorTemporary:
		member.Storage = blockStorage
	}
	return member
}

// AddBlock implements addBlock (§4.4.8). c.currentBlockName must already
// be set by the caller; it is consumed (cleared) here.
func (c *Context) AddBlock(blockStorage ir.StorageQualifier, fields []*ir.Field, memberQualifiers []ir.Qualifier, instanceName string, instanceArraySizes *ir.ArraySizes, loc token.Location) *ir.Symbol {
	blockName := c.currentBlockName
	c.currentBlockName = ""

	c.NestedBlockCheck(loc)

	if featuregate.IsReservedIdentifier(blockName) {
		c.Sink.Error(loc, blockName, "'%s' is reserved", blockName)
	}
	if !blockStorageAllowed(blockStorage) {
		c.Sink.Error(loc, blockName, "interface blocks must be uniform, buffer, in or out")
	}
	switch blockStorage {
	case ir.StorUniform:
		c.Gate.RequireProfile(c.Sink, loc, featuregate.MaskAny, "uniform block")
	case ir.StorBuffer:
		c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskAny, 430, "GL_ARB_shader_storage_buffer_object", "buffer block")
	case ir.StorVaryingIn, ir.StorVaryingOut:
		c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskAny, 150, "", "in/out block")
	}

	var defaults layoutDefaults
	switch blockStorage {
	case ir.StorUniform:
		defaults = c.UniformDefaults
	case ir.StorBuffer:
		defaults = c.BufferDefaults
	case ir.StorVaryingIn:
		defaults = c.InputDefaults
	case ir.StorVaryingOut:
		defaults = c.OutputDefaults
	}

	for i, f := range fields {
		mq := pipeInOutFix(memberQualifiers[i], blockStorage)
		if mq.Storage != ir.StorTemporary && mq.Storage != blockStorage && mq.Storage != ir.StorConst {
			c.Sink.Error(loc, f.Name, "block member storage qualifier contradicts block storage")
		}
		if blockStorage == ir.StorUniform {
			if mq.Has(ir.FlagSmooth) || mq.Has(ir.FlagFlat) || mq.Has(ir.FlagNoPerspective) || mq.Has(ir.FlagCentroid) || mq.Has(ir.FlagPatch) || mq.Has(ir.FlagSample) {
				c.Sink.Error(loc, f.Name, "interpolation and auxiliary qualifiers are not allowed on uniform block members")
			}
		}
		if f.Type.IsSampler() {
			c.Sink.Error(loc, f.Name, "samplers are not allowed in interface blocks")
		}
		if mq.Layout.Matrix == ir.MatrixLayoutNone {
			mq.Layout.Matrix = defaults.Matrix
		}
		if mq.Layout.Packing == ir.PackingNone {
			mq.Layout.Packing = defaults.Packing
		}
		f.Type = f.Type.ShallowCopy()
		f.Type.Qualifier = mq
		memberQualifiers[i] = mq
	}
	c.ExitNestedStructOrBlock()

	blockType := ir.NewType(ir.Block)
	blockType.Fields = fields
	blockType.BlockName = blockName
	blockType.Qualifier.Storage = blockStorage

	sentinel := ir.NewVariableSymbol(blockName, ir.NewType(ir.Block), c.NextUniqueID())
	sentinel.ReadOnly = true
	if existing := c.Symbols.Insert(sentinel); existing != nil {
		c.Sink.Error(loc, blockName, "redefinition of '%s'", blockName)
	}

	instanceType := blockType
	if instanceArraySizes != nil {
		instanceType = blockType.ShallowCopy()
		instanceType.SetArraySizes(instanceArraySizes)
	}

	if instanceName != "" {
		inst := ir.NewVariableSymbol(instanceName, instanceType, c.NextUniqueID())
		if existing := c.Symbols.Insert(inst); existing != nil {
			c.Sink.Error(loc, instanceName, "redefinition of '%s'", instanceName)
		}
		c.Linkage.Add(inst)
		return inst
	}

	container := ir.NewVariableSymbol(blockName, instanceType, c.NextUniqueID())
	c.Linkage.Add(container)
	for i, f := range fields {
		member := ir.NewAnonMemberSymbol(f.Name, container, i, c.NextUniqueID())
		if existing := c.Symbols.Insert(member); existing != nil {
			c.Sink.Error(loc, f.Name, "redefinition of '%s'", f.Name)
		}
	}
	return container
}
