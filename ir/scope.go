package ir

import "github.com/cjo5/glslfront/common"

// Scope is one level of the symbol table. Symbols holds variables,
// anon-members, and (keyed by plain name, so `f` resolves as "a function
// exists here" for HandleVariable's not-a-variable check) one arbitrary
// overload of each function name. Functions indexes every overload by its
// mangled name, which is what overload resolution actually searches.
// Level 0..BuiltinLevels-1 of a SymbolTable are built-in (read-only);
// everything above is global or a pushed function/block scope.
type Scope struct {
	Symbols   map[string]*Symbol
	Functions map[string]*Symbol
}

func newScope() *Scope {
	return &Scope{
		Symbols:   make(map[string]*Symbol, 8),
		Functions: make(map[string]*Symbol, 8),
	}
}

// SymbolTable is the stack of scope levels described in §3/§4.2: a fixed
// run of built-in levels seeded once by the caller, followed by exactly
// one global level, followed by however many function/block scopes are
// currently pushed. Built-in levels are owned externally (§5: "may be
// shared read-only" across concurrently-compiling units) and are never
// mutated by this type; CopyUp is the only way a built-in name's binding
// changes for one compilation unit, and it writes into the global level.
type SymbolTable struct {
	levels         []*Scope
	builtinLevels  int
	nextUniqueID   int
}

// NewSymbolTable creates a table seeded with the given built-in levels
// (innermost last, i.e. builtins[len(builtins)-1] is searched before
// builtins[0]) and pushes the global level above them.
func NewSymbolTable(builtins []*Scope) *SymbolTable {
	t := &SymbolTable{builtinLevels: len(builtins)}
	t.levels = append(t.levels, builtins...)
	t.levels = append(t.levels, newScope())
	return t
}

// NextUniqueID hands out a compilation-unit-wide unique symbol id, per
// §3's Variable.unique_id field.
func (t *SymbolTable) NextUniqueID() int {
	t.nextUniqueID++
	return t.nextUniqueID
}

// Push adds a new (non-built-in) scope level, e.g. entering a function
// body or a block's member scope.
func (t *SymbolTable) Push() {
	t.levels = append(t.levels, newScope())
}

// Pop removes the innermost scope level.
func (t *SymbolTable) Pop() {
	common.Assert(len(t.levels) > t.builtinLevels+1, "popped past the global scope")
	t.levels = t.levels[:len(t.levels)-1]
}

// Depth reports how many levels are currently pushed, for callers that
// need to restore a saved depth after a recovery path.
func (t *SymbolTable) Depth() int {
	return len(t.levels)
}

// BaseDepth is the Depth() value with nothing but the built-in levels and
// the global level present — i.e. no function/block scope pushed.
func (t *SymbolTable) BaseDepth() int {
	return t.builtinLevels + 1
}

func (t *SymbolTable) current() *Scope {
	return t.levels[len(t.levels)-1]
}

func (t *SymbolTable) isBuiltinIndex(i int) bool {
	return i < t.builtinLevels
}

// Insert adds sym to the current (innermost) scope. Returns the symbol
// already bound to that name in the current scope, or nil on success —
// mirroring the source's "fails if the name exists at the current scope"
// contract without needing a separate error type. Functions are indexed
// by mangled name so overloads coexist; a collision is only reported when
// the exact same overload is redeclared.
func (t *SymbolTable) Insert(sym *Symbol) *Symbol {
	scope := t.current()
	if sym.IsFunction() {
		if existing, ok := scope.Functions[sym.MangledName]; ok {
			return existing
		}
		scope.Functions[sym.MangledName] = sym
		scope.Symbols[sym.Name] = sym
		return nil
	}
	if existing, ok := scope.Symbols[sym.Name]; ok {
		return existing
	}
	scope.Symbols[sym.Name] = sym
	return nil
}

// Find walks the scope stack innermost-out. outBuiltin reports whether the
// hit lives in a built-in level; outCurrentScope reports whether the hit
// was found in the innermost (current) scope, which callers use to decide
// whether a name collides with the active declaration scope or merely
// shadows an outer one.
func (t *SymbolTable) Find(name string) (sym *Symbol, builtin bool, currentScope bool) {
	for i := len(t.levels) - 1; i >= 0; i-- {
		if s, ok := t.levels[i].Symbols[name]; ok {
			return s, t.isBuiltinIndex(i), i == len(t.levels)-1
		}
	}
	return nil, false, false
}

// FindFunction looks up a function overload by its mangled name, searching
// the scope stack innermost-out the same way as Find.
func (t *SymbolTable) FindFunction(mangledName string) *Symbol {
	for i := len(t.levels) - 1; i >= 0; i-- {
		if s, ok := t.levels[i].Functions[mangledName]; ok {
			return s
		}
	}
	return nil
}

// CopyUp materializes a writable clone of a built-in symbol into the
// global level (§4.2: "promotes a built-in symbol into the current
// non-builtin level"), returning the new pointer. Subsequent Find calls
// observe the clone instead of the built-in original, since the global
// level is searched before any built-in level.
func (t *SymbolTable) CopyUp(sym *Symbol) *Symbol {
	common.Assert(sym.ReadOnly, "CopyUp of a non-built-in symbol")
	clone := *sym
	clone.ReadOnly = false
	global := t.levels[t.builtinLevels]
	global.Symbols[clone.Name] = &clone
	return &clone
}
