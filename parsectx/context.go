// Package parsectx is the orchestrator (spec component C7): every grammar
// handler named in the spec's §4.4 is a method on *Context. It reads and
// writes the symbol table and HIR façade in package ir, consults
// featuregate for version/profile/stage predicates, and reports every
// diagnostic through a report.Sink. Grounded on semantics/context.go,
// check.go and api.go's threaded-context shape: one struct, constructed
// once per compilation unit, passed by pointer through every handler, no
// process-wide globals (§9 "Global context state").
package parsectx

import (
	"github.com/cjo5/glslfront/featuregate"
	"github.com/cjo5/glslfront/ir"
	"github.com/cjo5/glslfront/report"
	"github.com/cjo5/glslfront/token"
)

// Language is the shader stage being compiled, aliased here so callers
// configuring a Context don't need to import featuregate directly.
type Language = featuregate.Stage

// Profile re-exports featuregate.Profile for the same reason.
type Profile = featuregate.Profile

// MessageFlags are the boolean knobs named in §6's configuration struct.
type MessageFlags struct {
	SuppressWarnings bool
	RelaxedErrors    bool
	ASTDebug         bool
	SPVRules         bool
	VulkanRules      bool
}

// BuiltInLimits are the generalXIndexing toggles named in §6.
type BuiltInLimits struct {
	GeneralAttributeMatrixVectorIndexing bool
	GeneralConstantMatrixVectorIndexing  bool
	GeneralSamplerIndexing               bool
	GeneralUniformIndexing               bool
	GeneralVariableIndexing              bool
	GeneralVaryingIndexing               bool
}

// Config is the enumerated configuration passed to the context at
// construction, per §6.
type Config struct {
	ParsingBuiltins bool
	Version         int
	Profile         Profile
	Language        Language
	ForwardCompatible bool
	Messages        MessageFlags
	Limits          BuiltInLimits
	Extensions      map[string]bool
}

// pragmaState is ParseContext's context_pragma field.
type pragmaState struct {
	Optimize bool
	Debug    bool
	Table    map[string]string
}

// layoutDefaults is one of the four per-storage-class default-layout
// records tracked by ParseContext (uniform/buffer/input/output).
type layoutDefaults struct {
	Matrix  ir.MatrixLayout
	Packing ir.Packing
	Binding int
}

func newLayoutDefaults() layoutDefaults {
	return layoutDefaults{Binding: ir.NoLayoutValue}
}

// Context is ParseContext (§3): the full mutable state threaded through
// every §4.4 handler for one compilation unit.
type Context struct {
	Config Config

	Sink    *report.Sink
	Gate    *featuregate.Gate
	Symbols *ir.SymbolTable

	Linkage   *ir.LinkageAggregate
	CallGraph *ir.CallGraph

	// Position tracking. AfterEOF and TokensBeforeEOF are set by the
	// grammar driver immediately before calling ParserError; together they
	// select its "pre-mature EOF" phrasing (§6).
	Loc             token.Location
	AfterEOF        bool
	TokensBeforeEOF int

	// LoopNestingLevel is maintained by EnterLoop/ExitLoop and reset by
	// HandlePrototype. StructNestingLevel is shared between
	// NestedBlockCheck and NestedStructCheck.
	LoopNestingLevel   int
	StructNestingLevel int

	CurrentFunction       *ir.Symbol
	CurrentFunctionReturn *ir.Type
	FunctionReturnsValue  bool
	CurrentCaller         string

	// Default precision, indexed by ir.BasicType for scalar kinds and by
	// ir.SamplerTypeIndex for sampler configurations.
	DefaultPrecision       map[ir.BasicType]ir.Precision
	DefaultSamplerPrecision [ir.NumSamplerTypeIndices]ir.Precision

	UniformDefaults layoutDefaults
	BufferDefaults  layoutDefaults
	InputDefaults   layoutDefaults
	OutputDefaults  layoutDefaults

	// currentBlockName is set by the grammar driver, through
	// SetCurrentBlockName, immediately before invoking AddBlock, resolving
	// §9.2's open question about blockName's binding: it is a context field
	// with a caller-managed lifetime,
	// cleared by AddBlock itself once consumed.
	currentBlockName string

	InductiveLoopIDs map[int]bool

	NeedsIndexLimitationChecking []ir.Node

	switchSequenceStack []*switchFrame

	qualifierPhase qualifierPhase

	Pragma pragmaState

	AnyIndexLimits bool

	mainCount int
}

// NewContext constructs a ParseContext for one compilation unit, seeded
// with the caller-owned built-in symbol-table levels (§1's "built-in
// symbol seeding" out-of-scope collaborator).
func NewContext(cfg Config, builtins []*ir.Scope) *Context {
	c := &Context{
		Config:           cfg,
		Sink:             report.NewSink(cfg.Messages.SuppressWarnings, cfg.Messages.RelaxedErrors),
		Gate:             featuregate.NewGate(cfg.Profile, cfg.Version, cfg.Language, cfg.Extensions),
		Symbols:          ir.NewSymbolTable(builtins),
		Linkage:          ir.NewLinkageAggregate(),
		CallGraph:        &ir.CallGraph{},
		DefaultPrecision: map[ir.BasicType]ir.Precision{},
		UniformDefaults:  newLayoutDefaults(),
		BufferDefaults:   newLayoutDefaults(),
		InputDefaults:    newLayoutDefaults(),
		OutputDefaults:   newLayoutDefaults(),
		InductiveLoopIDs: map[int]bool{},
		Pragma:           pragmaState{Table: map[string]string{}},
	}
	c.seedPrecisionDefaults()
	return c
}

// seedPrecisionDefaults installs the §6 "Defaults" table: ES profile gets
// stage-dependent int/uint/float/sampler defaults; desktop profiles start
// at PrecisionNone (meaning qualifiers are ignored, per §6).
func (c *Context) seedPrecisionDefaults() {
	if c.Config.Profile != featuregate.ProfileES {
		return
	}
	switch c.Config.Language {
	case featuregate.StageVertex:
		c.DefaultPrecision[ir.Int] = ir.PrecisionHigh
		c.DefaultPrecision[ir.Uint] = ir.PrecisionHigh
		c.DefaultPrecision[ir.Float] = ir.PrecisionHigh
		c.seedSamplerPrecision(ir.PrecisionLow)
	case featuregate.StageFragment:
		c.DefaultPrecision[ir.Int] = ir.PrecisionMedium
		c.DefaultPrecision[ir.Uint] = ir.PrecisionMedium
		// float is intentionally left PrecisionNone: using it without an
		// explicit precision qualifier or a `precision` statement is an
		// error, per §6.
		c.seedSamplerPrecision(ir.PrecisionLow)
	}
}

func (c *Context) seedSamplerPrecision(p ir.Precision) {
	for i := range c.DefaultSamplerPrecision {
		c.DefaultSamplerPrecision[i] = p
	}
	// float sampler2D / samplerCube default to low even outside the loop
	// above covering everything, matching §6's explicit callout; this is
	// a no-op restatement when p is already Low, kept for clarity at the
	// two sampler-type-index entries the spec names explicitly.
	lowIdx := ir.SamplerTypeIndex(ir.Sampler{Scalar: ir.SamplerFloat, Dim: ir.Dim2D})
	cubeIdx := ir.SamplerTypeIndex(ir.Sampler{Scalar: ir.SamplerFloat, Dim: ir.DimCube})
	c.DefaultSamplerPrecision[lowIdx] = ir.PrecisionLow
	c.DefaultSamplerPrecision[cubeIdx] = ir.PrecisionLow
}

// NextUniqueID hands out a fresh compilation-unit-wide symbol id.
func (c *Context) NextUniqueID() int {
	return c.Symbols.NextUniqueID()
}

// SetLoc updates the context's current source location, called by the
// grammar driver before each reduction that can report a diagnostic.
func (c *Context) SetLoc(loc token.Location) {
	c.Loc = loc
}

// SetCurrentBlockName records the block name the next AddBlock call
// consumes; the grammar driver calls it immediately before AddBlock.
func (c *Context) SetCurrentBlockName(name string) {
	c.currentBlockName = name
}

// IsGlobalScope reports whether no function/block scope is currently
// pushed above the global level.
func (c *Context) IsGlobalScope() bool {
	return c.Symbols.Depth() == c.Symbols.BaseDepth()
}
