package ir

import "fmt"

// SymbolKind discriminates the three Symbol variants named in §3.
type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	AnonMemberSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case FunctionSymbol:
		return "function"
	case AnonMemberSymbol:
		return "anon-member"
	default:
		return "symbol(?)"
	}
}

// Param is one entry of a Function symbol's parameter list.
type Param struct {
	Qualifier Qualifier
	Type      *Type
	Name      string // may be empty for unnamed prototype parameters
}

// Symbol is a tagged variant over Variable/Function/AnonMember, per §3.
// Every built-in-level symbol has ReadOnly set; copy_up (SymbolTable.CopyUp)
// clones one into the global level so it becomes writable.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	UniqueID int
	ReadOnly bool

	// Variable
	Type       *Type
	ConstArray *ConstArray // non-nil iff this variable is a compile-time constant

	// Function
	ReturnType   *Type
	Params       []Param
	MangledName  string
	Defined      bool
	BuiltInOp    string // non-empty when this resolves to a built-in operation rather than a user call

	// AnonMember
	Container    *Symbol // the anonymous block-instance Variable
	MemberIndex  int
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s %s", s.Kind, s.Name)
}

func (s *Symbol) IsVariable() bool {
	return s.Kind == VariableSymbol
}

func (s *Symbol) IsFunction() bool {
	return s.Kind == FunctionSymbol
}

func (s *Symbol) IsAnonMember() bool {
	return s.Kind == AnonMemberSymbol
}

// IsConst reports whether a Variable symbol carries a folded constant
// value. Always false for non-variables.
func (s *Symbol) IsConst() bool {
	return s.IsVariable() && s.ConstArray != nil
}

// NewVariableSymbol creates a Variable symbol. uniqueID is assigned by the
// caller (ParseContext owns the counter, since uniqueness spans the whole
// compilation unit, not just one scope).
func NewVariableSymbol(name string, t *Type, uniqueID int) *Symbol {
	return &Symbol{Kind: VariableSymbol, Name: name, Type: t, UniqueID: uniqueID}
}

// NewFunctionSymbol creates a Function symbol. mangledName disambiguates
// overloads and is what the symbol table actually indexes by.
func NewFunctionSymbol(name, mangledName string, returnType *Type, params []Param, uniqueID int) *Symbol {
	return &Symbol{
		Kind:        FunctionSymbol,
		Name:        name,
		MangledName: mangledName,
		ReturnType:  returnType,
		Params:      params,
		UniqueID:    uniqueID,
	}
}

// NewAnonMemberSymbol creates the per-member alias the symbol table
// exposes for each field of an instance-less (anonymous) interface block,
// so `foo` resolves directly to member `foo` of the hidden container.
func NewAnonMemberSymbol(name string, container *Symbol, memberIndex int, uniqueID int) *Symbol {
	return &Symbol{
		Kind:        AnonMemberSymbol,
		Name:        name,
		Container:   container,
		MemberIndex: memberIndex,
		UniqueID:    uniqueID,
	}
}

// MangleFunctionName derives the mangled name used for overload-distinct
// symbol-table lookups: the function name followed by each parameter's
// complete type string, deliberately omitting storage qualifiers so a
// call-site signature built the same way (from argument types alone)
// resolves to the declared overload, and so two declarations that agree
// on types but disagree on in/out qualifiers collide as the same
// overload — which is what lets the caller diagnose the S5-style
// qualifier mismatch instead of silently admitting two unrelated
// overloads.
func MangleFunctionName(name string, params []Param) string {
	mangled := name + "("
	for i, p := range params {
		if i > 0 {
			mangled += ","
		}
		mangled += p.Type.CompleteString()
	}
	mangled += ")"
	return mangled
}
