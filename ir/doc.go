// Package ir is the GLSL type model, symbol table, constant-value store
// and HIR node façade (spec components C1-C4): the data ir/facade.go
// exposes is the only thing the orchestrator in package parsectx is
// allowed to build nodes out of.
package ir
