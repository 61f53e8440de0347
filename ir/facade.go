package ir

import "github.com/cjo5/glslfront/token"

// This file is the narrow builder API named in §4.3 — the only way
// parsectx constructs HIR nodes. Keeping construction behind these
// functions (rather than literal struct composition at every call site)
// is what lets IsConst, typing and node-kind tagging stay consistent
// everywhere a node is built.

// MakeSymbolRef builds a reference to a non-constant Variable or Function.
func MakeSymbolRef(sym *Symbol, loc token.Location) *SymbolRef {
	return &SymbolRef{header: header{kind: KindSymbolRef, typ: sym.Type, loc: loc}, Sym: sym}
}

// MakeConst builds a ConstantUnion node of the given type from an already
// folded constant array.
func MakeConst(value *ConstArray, t *Type, loc token.Location) *ConstantUnion {
	return &ConstantUnion{header: header{kind: KindConstantUnion, typ: t, loc: loc, isConst: true}, Value: value}
}

// RecoveryFloatZero is the universal error-recovery node named in §4.5/§9:
// a typed, well-formed constant(0.0) substituted wherever a handler must
// return something after emitting a diagnostic.
func RecoveryFloatZero(loc token.Location) *ConstantUnion {
	t := NewType(Float)
	return MakeConst(NewConstArray([]ConstUnion{ConstFromDouble(0)}), t, loc)
}

// RecoveryVariable is the dummy void-typed Variable substituted when a
// symbol lookup resolves to something that isn't a variable (§4.4.1).
func RecoveryVariable(uniqueID int) *Symbol {
	return NewVariableSymbol("<error>", NewType(Void), uniqueID)
}

func makeBinary(op BinaryOp, l, r Node, t *Type, loc token.Location) *Binary {
	return &Binary{
		header: header{kind: KindBinary, typ: t, loc: loc, isConst: l.IsConst() && r.IsConst()},
		Op:     op,
		Left:   l,
		Right:  r,
	}
}

// MakeIndexDirect builds base[k] for a compile-time-constant index k that
// is not itself folded against a constant base (the constant-fold path
// goes through MakeConst directly instead).
func MakeIndexDirect(base Node, index *ConstantUnion, loc token.Location) *Binary {
	elem, ok := base.Type().Dereference()
	if !ok {
		elem = base.Type()
	}
	return makeBinary(IndexDirect, base, index, elem, loc)
}

// MakeIndexIndirect builds base[index] for a non-constant index.
func MakeIndexIndirect(base, index Node, loc token.Location) *Binary {
	elem, ok := base.Type().Dereference()
	if !ok {
		elem = base.Type()
	}
	b := makeBinary(IndexIndirect, base, index, elem, loc)
	b.isConst = false // a non-constant index can never yield a constant result
	return b
}

// MakeIndexDirectStruct builds base.field as a literal-index field
// projection (struct/block field access, or an anonymous-member
// synthesis), typed as the selected field's type.
func MakeIndexDirectStruct(base Node, fieldIndex int, fieldType *Type, loc token.Location) *Binary {
	idx := MakeConst(NewConstArray([]ConstUnion{ConstFromInt(int32(fieldIndex))}), NewType(Int), loc)
	return makeBinary(IndexDirectStruct, base, idx, fieldType, loc)
}

// MakeSwizzle builds a multi-character vector swizzle. fields holds the
// decoded 0-based lane offsets; the result is a vector of len(fields)
// lanes of the base's scalar kind.
func MakeSwizzle(base Node, fields []int, loc token.Location) *Binary {
	resultType := base.Type().shallowCopy()
	resultType.VectorSize = len(fields)
	seq := make([]Node, len(fields))
	for i, f := range fields {
		seq[i] = MakeConst(NewConstArray([]ConstUnion{ConstFromInt(int32(f))}), NewType(Int), loc)
	}
	indices := &Aggregate{header: header{kind: KindAggregate, typ: NewType(Int), loc: loc, isConst: base.IsConst()}, Op: Sequence, Sequence: seq}
	return makeBinary(VectorSwizzle, base, indices, resultType, loc)
}

// MakeMethod builds a `base.name` zero-argument method reference (the
// only one in scope being array.length()).
func MakeMethod(base Node, name string, returnType *Type, loc token.Location) *Method {
	return &Method{header: header{kind: KindMethod, typ: returnType, loc: loc}, Base: base, Name: name}
}

// GrowAggregate appends child to agg's sequence, creating a fresh
// Sequence aggregate if agg is nil (the conventional way a reduction
// accumulates a list before its shape/op is known).
func GrowAggregate(agg *Aggregate, child Node, loc token.Location) *Aggregate {
	if agg == nil {
		agg = &Aggregate{header: header{kind: KindAggregate, typ: NewType(Void), loc: loc, isConst: true}, Op: Sequence}
	}
	agg.Sequence = append(agg.Sequence, child)
	agg.isConst = agg.isConst && child.IsConst()
	return agg
}

// GrowAll folds GrowAggregate over an already-known node list, for
// callers that assemble the full argument/sequence slice before handing
// it to the façade rather than growing it one reduction at a time.
func GrowAll(children []Node) *Aggregate {
	var agg *Aggregate
	loc := token.NoLocation
	if len(children) > 0 {
		loc = children[0].Loc()
	}
	for _, ch := range children {
		agg = GrowAggregate(agg, ch, loc)
	}
	if agg == nil {
		agg = &Aggregate{header: header{kind: KindAggregate, typ: NewType(Void), loc: loc, isConst: true}, Op: Sequence}
	}
	return agg
}

// SetAggregateOp finalizes agg's operation and result type once the
// reduction knows what the sequence actually builds (a constructor call,
// a function call, a parameter list, ...).
func SetAggregateOp(agg *Aggregate, op AggregateOp, t *Type, loc token.Location) *Aggregate {
	agg.Op = op
	agg.typ = t
	agg.loc = loc
	return agg
}

// AddUnary builds a one-child unary node.
func AddUnary(op UnaryOp, operand Node, t *Type, loc token.Location) *Unary {
	return &Unary{header: header{kind: KindUnary, typ: t, loc: loc, isConst: operand.IsConst()}, Op: op, Operand: operand}
}

// AddBuiltinCall builds a built-in function call, with an optional
// distinguished unary operand (some built-ins are represented as a plain
// Unary instead of an Aggregate when they take exactly one argument;
// passing unary != nil selects that shape and args is ignored).
func AddBuiltinCall(loc token.Location, opName string, unary Node, args []Node, returnType *Type) Node {
	if unary != nil {
		return &Unary{
			header:      header{kind: KindUnary, typ: returnType, loc: loc, isConst: unary.IsConst()},
			Op:          BuiltinCall,
			Operand:     unary,
			BuiltinName: opName,
		}
	}
	allConst := true
	for _, a := range args {
		allConst = allConst && a.IsConst()
	}
	return &Aggregate{
		header:   header{kind: KindAggregate, typ: returnType, loc: loc, isConst: allConst},
		Op:       BuiltInFunctionCall,
		Sequence: args,
		Name:     opName,
	}
}

// AddConversion attempts an implicit GLSL conversion of expr to
// targetType. Returns (nil, false) when no implicit conversion exists;
// returns expr unchanged (true) when no conversion is needed.
func AddConversion(targetType, fromType *Type, expr Node, loc token.Location) (Node, bool) {
	if fromType.Equals(targetType) {
		return expr, true
	}
	if !CompatibleTypes(fromType, targetType) {
		return nil, false
	}
	conv := &Unary{
		header:  header{kind: KindUnary, typ: targetType, loc: loc, isConst: expr.IsConst()},
		Op:      Convert,
		Operand: expr,
	}
	return conv, true
}

// AddAssign builds an Assign binary node, typed as the l-value's type.
func AddAssign(op BinaryOp, l, r Node, loc token.Location) *Binary {
	return &Binary{header: header{kind: KindBinary, typ: l.Type(), loc: loc}, Op: Assign, Left: l, Right: r}
}

// AddBinary builds an arithmetic, relational or logical binary node.
// Relational and logical operators always result in a scalar bool;
// everything else is typed as the caller-resolved result type (the widened
// operand type after implicit conversion).
func AddBinary(op BinaryOp, l, r Node, resultType *Type, loc token.Location) *Binary {
	switch op {
	case Less, LessEqual, Greater, GreaterEqual, Equal, NotEqual, LogicalAnd, LogicalOr, LogicalXor:
		resultType = NewType(Bool)
	}
	return makeBinary(op, l, r, resultType, loc)
}

// AddToCallGraph records a caller -> callee edge.
func AddToCallGraph(graph *CallGraph, from, to *Symbol) {
	graph.Add(from, to)
}

// MakeBranch builds a control-transfer node: discard/return/break/continue
// carry no Expr, case/default carry the (possibly nil, for default)
// label's constant expression.
func MakeBranch(op BranchOp, expr Node, loc token.Location) *Branch {
	return &Branch{header: header{kind: KindBranch, typ: NewType(Void), loc: loc}, Op: op, Expr: expr}
}

// MakeSwitch builds a scalar-integer-selector switch node from its already
// assembled body sequence.
func MakeSwitch(expr, body Node, loc token.Location) *Switch {
	return &Switch{header: header{kind: KindSwitch, typ: NewType(Void), loc: loc}, Expr: expr, Body: body}
}

// MakeLoop builds a for/while/do-while node. testFirst distinguishes
// while/for (test before body) from do-while (test after body).
func MakeLoop(testFirst bool, init, cond, terminal, body Node, loc token.Location) *Loop {
	return &Loop{header: header{kind: KindLoop, typ: NewType(Void), loc: loc}, TestFirst: testFirst, Init: init, Cond: cond, Terminal: terminal, Body: body}
}
