package ir

// Expr is an IR expression. Expressions are pure: evaluating one never
// mutates the environment. Modeled as a tagged marker interface, matching
// naga's ExpressionKind pattern.
type Expr interface {
	exprTag()
}

// ExprLiteral is a literal constant value.
type ExprLiteral struct {
	Value Value
}

func (ExprLiteral) exprTag() {}

// ExprRead resolves a path of property names relative to the local
// environment. A path beginning with the reserved CONTEXT identifier reads
// from the function's input struct argument; any other leading segment must
// name an in-scope local binding.
type ExprRead struct {
	Path []PropertyIdentifier
}

func (ExprRead) exprTag() {}

// ExprStructLit constructs a struct value field-by-field. Field order in
// Fields is significant for iteration (matches StructDefinition field
// order) though lookups are by PropertyIdentifier.
type ExprStructLit struct {
	ID StructIdentifier
	Fields *PropertyExprMap
}

func (ExprStructLit) exprTag() {}

// ExprCall invokes a FunctionDefinition by identifier.
type ExprCall struct {
	Function FunctionIdentifier
	Args []Expr
}

func (ExprCall) exprTag() {}

// UnaryOp enumerates the IR's unary operators.
type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpAbs
	OpSign
	OpLength
	OpNormalize
)

// ExprUnary applies a unary operator to an expression.
type ExprUnary struct {
	Op UnaryOp
	X Expr
}

func (ExprUnary) exprTag() {}

// BinaryOp enumerates the IR's binary arithmetic/comparison operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpGt
	OpMin
	OpMax
	OpDot
	// OpEq, OpNeq, OpAnd, OpOr round out the author-facing expression
	// builder's comparison/boolean methods,
	// which the literal Expr enumeration of omits; they evaluate via
	// the Value system's EqV/NeqV/AndV/OrV.
	OpEq
	OpNeq
	OpAnd
	OpOr
)

// ExprBinary applies a binary operator to two expressions.
type ExprBinary struct {
	Op BinaryOp
	A, B Expr
}

func (ExprBinary) exprTag() {}

// ExprMix is the ternary linear-interpolation expression mix(a, b, t).
type ExprMix struct {
	A, B, T Expr
}

func (ExprMix) exprTag() {}

// MathFn enumerates the closed set of additional math intrinsics the Value
// system supports but which don't fit the core unary/binary/ternary
// shape: clamp, mod, round and the trig family. Modeled as an extensible
// function enum rather than individual Expr variants, the same split naga
// draws between its core ExprBinary/ExprUnary ops and its ExprMath enum.
type MathFn uint8

const (
	MathClamp MathFn = iota
	MathMod
	MathRound
	MathSin
	MathCos
	MathTan
	MathAsin
	MathAcos
	MathAtan
	MathAtan2
)

// ExprMathCall applies a MathFn to its arguments.
type ExprMathCall struct {
	Fn MathFn
	Args []Expr
}

func (ExprMathCall) exprTag() {}

// Math builds an ExprMathCall.
func Math(fn MathFn, args...Expr) Expr {
	return ExprMathCall{Fn: fn, Args: args}
}

// Read is a convenience constructor for an ExprRead over the given path.
func Read(path...PropertyIdentifier) Expr {
	return ExprRead{Path: append([]PropertyIdentifier(nil), path...)}
}

// Lit wraps a Value as a literal expression.
func Lit(v Value) Expr { return ExprLiteral{Value: v} }

// Neg, Abs, Sign, Length, Normalize are unary expression constructors.
func Neg(x Expr) Expr { return ExprUnary{Op: OpNeg, X: x} }
func Abs(x Expr) Expr { return ExprUnary{Op: OpAbs, X: x} }
func Sign(x Expr) Expr { return ExprUnary{Op: OpSign, X: x} }
func Length(x Expr) Expr { return ExprUnary{Op: OpLength, X: x} }
func Normalize(x Expr) Expr { return ExprUnary{Op: OpNormalize, X: x} }

// Add, Sub, Mul, Div, Lt, Gt, Min, Max, Dot are binary expression
// constructors.
func Add(a, b Expr) Expr { return ExprBinary{Op: OpAdd, A: a, B: b} }
func Sub(a, b Expr) Expr { return ExprBinary{Op: OpSub, A: a, B: b} }
func Mul(a, b Expr) Expr { return ExprBinary{Op: OpMul, A: a, B: b} }
func Div(a, b Expr) Expr { return ExprBinary{Op: OpDiv, A: a, B: b} }
func Lt(a, b Expr) Expr { return ExprBinary{Op: OpLt, A: a, B: b} }
func Gt(a, b Expr) Expr { return ExprBinary{Op: OpGt, A: a, B: b} }
func Min(a, b Expr) Expr { return ExprBinary{Op: OpMin, A: a, B: b} }
func Max(a, b Expr) Expr { return ExprBinary{Op: OpMax, A: a, B: b} }
func Dot(a, b Expr) Expr { return ExprBinary{Op: OpDot, A: a, B: b} }

// Eq, Neq, And, Or are the remaining binary expression constructors.
func Eq(a, b Expr) Expr { return ExprBinary{Op: OpEq, A: a, B: b} }
func Neq(a, b Expr) Expr { return ExprBinary{Op: OpNeq, A: a, B: b} }
func And(a, b Expr) Expr { return ExprBinary{Op: OpAnd, A: a, B: b} }
func Or(a, b Expr) Expr { return ExprBinary{Op: OpOr, A: a, B: b} }

// MixExpr builds the ternary mix(a, b, t) expression.
func MixExpr(a, b, t Expr) Expr { return ExprMix{A: a, B: b, T: t} }
