package parsectx

import "github.com/cjo5/glslfront/token"

// NestedBlockCheck implements nested_block_check, run before an interface
// block definition is processed (§4.4.8 prelude). StructNestingLevel is
// shared with NestedStructCheck: both forbid defining a block or struct
// while already inside a struct or block body, and both increment the
// same counter regardless of whether the check failed.
func (c *Context) NestedBlockCheck(loc token.Location) {
	if c.StructNestingLevel > 0 {
		c.Sink.Error(loc, "", "cannot nest a block definition inside a structure or block")
	}
	c.StructNestingLevel++
}

// NestedStructCheck implements nested_struct_check, run before a struct
// specifier is processed (§4.4.7 prelude): the struct counterpart of
// NestedBlockCheck.
func (c *Context) NestedStructCheck(loc token.Location) {
	if c.StructNestingLevel > 0 {
		c.Sink.Error(loc, "", "cannot nest a structure definition inside a structure or block")
	}
	c.StructNestingLevel++
}

// ExitNestedStructOrBlock pops one level pushed by NestedBlockCheck or
// NestedStructCheck once the driver finishes reducing that struct/block
// body.
func (c *Context) ExitNestedStructOrBlock() {
	if c.StructNestingLevel > 0 {
		c.StructNestingLevel--
	}
}

// EnterLoop enters one level of loop nesting (§4.4.9 prelude), called by
// the grammar driver on reducing a loop statement's opening.
func (c *Context) EnterLoop() {
	c.LoopNestingLevel++
}

// ExitLoop leaves one level of loop nesting.
func (c *Context) ExitLoop() {
	if c.LoopNestingLevel > 0 {
		c.LoopNestingLevel--
	}
}
