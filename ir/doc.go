// Package ir defines the intermediate representation for the Elysian shape
// compiler.
//
// The IR is designed to be:
// - Evaluator-agnostic: the same Module can be walked by a tree-walking
// interpreter or emitted as source for a target language.
// - Property-typed: every value flowing through the IR is a named,
// globally-registered Property (position, distance, gradient, color,...).
// - Specializable: a Shape compiles its body once per requested set of
// output properties (a SpecializationData), producing differently-named
// functions that can coexist in one Module.
//
// # Structure
//
// The IR is organized around a Module that contains:
// - StructDefinitions: struct layouts referenced by Types, including the
// builtin Vector2/3/4 and Matrix2/3/4 structs and the synthesized
// Context struct.
// - FunctionDefinitions: every function a Shape tree contributes.
// - EntryPoint: the FunctionIdentifier to invoke with the input Context.
//
// # Translation pipeline
//
//	Shape tree --Shape.Module(spec)--> ir.Module --interp.Evaluate--> ir.Value
//
// This mirrors naga's AST -> IR -> backend pipeline, but the IR here is
// tree-shaped (Expr/Stmt trees keyed by symbolic Identifier) rather than an
// SSA handle-arena, since Elysian functions are small, pure, and built by
// composition rather than parsed from a large textual source language.
package ir
