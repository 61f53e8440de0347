package parsectx

import (
	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/token"
)

// HandleDeclarator implements handle_declarator (§4.4.4): forbids local
// prototypes in ES, checks a prior declaration's signature agrees, and
// inserts the symbol.
func (c *Context) HandleDeclarator(name string, returnType *ir.Type, params []ir.Param, loc token.Location) *ir.Symbol {
	if c.Config.Profile == featuregate.ProfileES && !c.IsGlobalScope() {
		c.Sink.Error(loc, name, "local function prototypes are not allowed")
	}

	mangled := ir.MangleFunctionName(name, params)
	if prior := c.Symbols.FindFunction(mangled); prior != nil {
		if !prior.ReturnType.Equals(returnType) {
			c.Sink.Error(loc, name, "function return type mismatch with previous declaration")
		}
		for i, p := range params {
			if i < len(prior.Params) && p.Qualifier.Storage != prior.Params[i].Qualifier.Storage {
				c.Sink.Error(loc, name, "overloaded functions must have the same parameter qualifiers")
			}
		}
		if prior.ReadOnly {
			c.Gate.RequireNotRemoved(c.Sink, loc, featuregate.Removal{Profile: featuregate.ProfileES, Version: 300, Feature: name})
		}
	}

	sym := ir.NewFunctionSymbol(name, mangled, returnType, params, c.NextUniqueID())
	if existing := c.Symbols.Insert(sym); existing != nil {
		c.Sink.Error(loc, name, "redefinition of '%s'", name)
	}
	return sym
}

// HandlePrototype implements handle_prototype (§4.4.4): marks the current
// caller, validates `main`'s shape, pushes a scope and inserts named
// parameters, and builds the Parameters aggregate.
func (c *Context) HandlePrototype(sym *ir.Symbol, loc token.Location) *ir.Aggregate {
	c.CurrentCaller = sym.MangledName
	c.CurrentFunction = sym
	c.CurrentFunctionReturn = sym.ReturnType
	c.FunctionReturnsValue = false

	if prior := c.Symbols.FindFunction(sym.MangledName); prior != nil && prior.Defined {
		c.Sink.Error(loc, sym.Name, "function '%s' already has a body", sym.Name)
	}
	sym.Defined = true

	if sym.Name == "main" {
		if len(sym.Params) != 0 {
			c.Sink.Error(loc, "main", "function 'main' cannot take parameters")
		}
		if !sym.ReturnType.IsVoid() {
			c.Sink.Error(loc, "main", "function 'main' must return void")
		}
		c.mainCount++
	}

	c.Symbols.Push()
	seq := make([]ir.Node, 0, len(sym.Params))
	for _, p := range sym.Params {
		if p.Name == "" {
			continue
		}
		paramSym := ir.NewVariableSymbol(p.Name, p.Type, c.NextUniqueID())
		if existing := c.Symbols.Insert(paramSym); existing != nil {
			c.Sink.Error(loc, p.Name, "redefinition of parameter '%s'", p.Name)
			continue
		}
		seq = append(seq, ir.MakeSymbolRef(paramSym, loc))
	}
	c.LoopNestingLevel = 0
	return ir.SetAggregateOp(ir.GrowAll(seq), ir.Parameters, sym.ReturnType, loc)
}

// HandleCall implements handle_call (§4.4.4). constructorTarget is non-nil
// when the grammar has already classified name as a constructor via
// map_type_to_constructor_op; constructorOp is the op it classified.
func (c *Context) HandleCall(name string, args []ir.Node, constructorOp ir.AggregateOp, constructorTarget *ir.Type, loc token.Location) ir.Node {
	// array.length() is routed through HandleDotDereference's Method node,
	// not here; HandleCall only ever sees ordinary identifier calls.

	if constructorTarget != nil {
		return c.AddConstructor(constructorOp, constructorTarget, args, loc)
	}

	mangled := mangleCallSite(name, args)
	sym := c.Symbols.FindFunction(mangled)
	if sym == nil {
		c.Sink.Error(loc, name, "no matching overload for call to '%s'", name)
		return ir.RecoveryFloatZero(loc)
	}

	if sym.BuiltInOp != "" {
		return ir.AddBuiltinCall(loc, sym.BuiltInOp, nil, args, c.inheritSamplerPrecision(sym, args))
	}

	call := ir.SetAggregateOp(ir.GrowAll(args), ir.FunctionCall, sym.ReturnType, loc)
	call.Name = sym.MangledName
	call.UserDefined = true

	if c.CurrentFunction != nil {
		ir.AddToCallGraph(c.CallGraph, c.CurrentFunction, sym)
	}

	for i, p := range sym.Params {
		if i >= len(args) {
			break
		}
		if p.Qualifier.Storage == ir.StorOut || p.Qualifier.Storage == ir.StorInout {
			if !isLValue(args[i]) {
				c.Sink.Error(loc, name, "argument %d to '%s' must be an l-value", i+1, name)
			}
		}
	}

	if isTextureGather(name) {
		c.Gate.ProfileRequires(c.Sink, loc, featuregate.MaskCore, 400, "", "textureGather")
		if len(args) > 0 {
			if last, ok := ir.AsConstant(args[len(args)-1]); ok && last.Type().Basic == ir.Int {
				v := last.Value.At(0).AsInt()
				if v < 0 || v > 3 {
					c.Sink.Error(loc, name, "textureGather component must be in [0,3]")
				}
			}
		}
	}

	return call
}

func (c *Context) inheritSamplerPrecision(sym *ir.Symbol, args []ir.Node) *ir.Type {
	rt := sym.ReturnType
	if !rt.IsSampler() || rt.Qualifier.Precision != ir.PrecisionNone {
		return rt
	}
	for _, a := range args {
		if a.Type().IsSampler() {
			derived := rt.ShallowCopy()
			derived.Qualifier.Precision = a.Type().Qualifier.Precision
			return derived
		}
	}
	return rt
}

func isLValue(n ir.Node) bool {
	switch v := n.(type) {
	case *ir.SymbolRef:
		return !v.Sym.ReadOnly
	case *ir.Binary:
		return v.Op == ir.IndexDirect || v.Op == ir.IndexIndirect || v.Op == ir.IndexDirectStruct || v.Op == ir.VectorSwizzle
	default:
		return false
	}
}

func isTextureGather(name string) bool {
	return len(name) >= len("textureGather") && name[:len("textureGather")] == "textureGather"
}

func mangleCallSite(name string, args []ir.Node) string {
	mangled := name + "("
	for i, a := range args {
		if i > 0 {
			mangled += ","
		}
		mangled += a.Type().CompleteString()
	}
	mangled += ")"
	return mangled
}
