// Package interp provides the reference tree-walking evaluator for the IR
// defined in package ir: given a finalized Module and an initial
// Context value, it walks the entry function's block statement by
// statement, resolving Read/Write paths against a per-call frame and Call
// expressions against the module's function table, until an Output
// statement supplies the function's result.
//
// The interpreter is one Evaluator among possibly several; Dispatch lets a
// faster precompiled or native evaluator run first and fall back to this
// one on UnsupportedFeature, so the same Module can be consumed by
// different backends without the caller choosing up front.
package interp
