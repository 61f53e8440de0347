package ir

import "github.com/cjo5/glslfront/token"

// NodeKind discriminates the HIR tagged variant (§3/§9 "Polymorphic HIR
// nodes": modeled as a tagged variant with a common header rather than
// class inheritance).
type NodeKind int

const (
	KindSymbolRef NodeKind = iota
	KindConstantUnion
	KindBinary
	KindUnary
	KindAggregate
	KindMethod
	KindBranch
	KindSwitch
	KindLoop
)

// Node is the common interface every HIR variant satisfies. as_constant,
// as_symbol and as_aggregate from §9 become the AsXxx helper functions
// below (total match arms returning ok=false on a kind mismatch) instead
// of methods; each is a type assertion on the concrete node type.
type Node interface {
	Kind() NodeKind
	Type() *Type
	Loc() token.Location
	IsConst() bool
	hirNode()
}

type header struct {
	kind     NodeKind
	typ      *Type
	loc      token.Location
	isConst  bool
}

func (h *header) Kind() NodeKind      { return h.kind }
func (h *header) Type() *Type         { return h.typ }
func (h *header) Loc() token.Location { return h.loc }
func (h *header) IsConst() bool       { return h.isConst }
func (h *header) hirNode()            {}

// SymbolRef is a reference to a (non-constant) Variable or Function.
type SymbolRef struct {
	header
	Sym *Symbol
}

// ConstantUnion is a folded compile-time-constant value node — also the
// universal error-recovery node (a dummy float(0.0) constant) per §4.5.
type ConstantUnion struct {
	header
	Value *ConstArray
}

// BinaryOp tags a Binary node's operation.
type BinaryOp int

const (
	IndexDirect BinaryOp = iota
	IndexIndirect
	IndexDirectStruct
	VectorSwizzle
	Assign
	Add
	Sub
	Mul
	Div
	Mod
	Less
	LessEqual
	Greater
	GreaterEqual
	Equal
	NotEqual
	LogicalAnd
	LogicalOr
	LogicalXor
)

// Binary is a two-child HIR node: indexing, swizzle and assignment share
// this shape with the arithmetic/relational/logical binary operators.
type Binary struct {
	header
	Op    BinaryOp
	Left  Node
	Right Node
}

// UnaryOp tags a Unary node's operation.
type UnaryOp int

const (
	Negate UnaryOp = iota
	LogicalNot
	BitwiseNot
	PreIncrement
	PreDecrement
	PostIncrement
	PostDecrement
	Convert      // implicit widening conversion; header.typ is the target type
	BuiltinCall  // single-argument built-in function call; BuiltinName names it
)

// Unary is a one-child HIR node. BuiltinName is only meaningful when
// Op == BuiltinCall.
type Unary struct {
	header
	Op          UnaryOp
	Operand     Node
	BuiltinName string
}

// AggregateOp tags an Aggregate node's operation, including the
// constructor family classified by constructor_error (§4.4.5): the
// matrix_in_matrix rule only ever applies when Op is ConstructMatrix or
// ConstructDMatrix, which is the "one of ConstructMat*/ConstructDMat*"
// check named in the spec.
type AggregateOp int

const (
	Sequence AggregateOp = iota
	Parameters
	FunctionCall
	BuiltInFunctionCall
	ConstructScalar
	ConstructVector
	ConstructMatrix
	ConstructDMatrix
	ConstructStruct
	ConstructArray
)

// IsMatrixConstructor reports whether op is one of the matrix-constructing
// aggregate ops, per the constructor_error classification step.
func (op AggregateOp) IsMatrixConstructor() bool {
	return op == ConstructMatrix || op == ConstructDMatrix
}

// Aggregate is a variable-arity HIR node: sequences, parameter lists,
// calls and constructors all share this shape, distinguished by Op.
type Aggregate struct {
	header
	Op          AggregateOp
	Sequence    []Node
	Name        string // mangled function name, or "" when not a call
	Qualifiers  []Qualifier
	UserDefined bool
}

// Method is a `base.name` reference resolved to a zero-argument method
// call (currently only `array.length()`).
type Method struct {
	header
	Base Node
	Name string
}

// BranchOp tags a Branch node's control-transfer kind.
type BranchOp int

const (
	BranchDiscard BranchOp = iota
	BranchReturn
	BranchBreak
	BranchContinue
	BranchCase
	BranchDefault
)

// Branch is a control-transfer node; Expr carries the return value or the
// case label's constant expression, and is nil otherwise.
type Branch struct {
	header
	Op   BranchOp
	Expr Node
}

// Switch is a scalar-integer-selector multi-way branch. Body is the
// Sequence aggregate assembled by the switch-statement handlers in §4.4.10.
type Switch struct {
	header
	Expr Node
	Body Node
}

// Loop covers for/while/do-while: TestFirst distinguishes `while`/`for`
// (test before body) from `do`/`while` (test after body).
type Loop struct {
	header
	TestFirst bool
	Init      Node
	Cond      Node
	Terminal  Node
	Body      Node
}

// AsConstant returns n as a *ConstantUnion if that's its kind.
func AsConstant(n Node) (*ConstantUnion, bool) {
	c, ok := n.(*ConstantUnion)
	return c, ok
}

// AsSymbolRef returns n as a *SymbolRef if that's its kind.
func AsSymbolRef(n Node) (*SymbolRef, bool) {
	s, ok := n.(*SymbolRef)
	return s, ok
}

// AsAggregate returns n as an *Aggregate if that's its kind.
func AsAggregate(n Node) (*Aggregate, bool) {
	a, ok := n.(*Aggregate)
	return a, ok
}

// AsBinary returns n as a *Binary if that's its kind.
func AsBinary(n Node) (*Binary, bool) {
	b, ok := n.(*Binary)
	return b, ok
}

// CallGraph is an insertion-ordered record of caller->callee edges (§5:
// "the call graph is insertion-ordered").
type CallGraph struct {
	edges []callEdge
}

type callEdge struct {
	From *Symbol
	To   *Symbol
}

func (g *CallGraph) Add(from, to *Symbol) {
	g.edges = append(g.edges, callEdge{From: from, To: to})
}

func (g *CallGraph) Edges() []callEdge {
	return g.edges
}

// LinkageAggregate is the flat, declaration-ordered list of globally
// declared symbols exposed to the (out-of-scope) linker.
type LinkageAggregate struct {
	header
	Symbols []*Symbol
}

func (l *LinkageAggregate) Add(sym *Symbol) {
	l.Symbols = append(l.Symbols, sym)
}

// NewLinkageAggregate creates an empty linkage aggregate located at the
// start of the compilation unit.
func NewLinkageAggregate() *LinkageAggregate {
	return &LinkageAggregate{header: header{kind: KindAggregate, typ: NewType(Void)}}
}
