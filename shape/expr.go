package shape

import "github.com/elysian-sdf/elysian/ir"

// E is the author-facing expression builder : a thin fluent wrapper
// around ir.Expr supporting operator-overload-style chaining in a language
// without operator overloading.
type E struct{ Expr ir.Expr }

// Wrap lifts a raw ir.Expr into the fluent builder.
func Wrap(e ir.Expr) E { return E{Expr: e} }

// Lit wraps a literal Value.
func Lit(v ir.Value) E { return E{Expr: ir.Lit(v)} }

// Num, Vector2, Vector3, Vector4 build literal expressions for common value
// shapes.
func Num(f float64) E { return Lit(ir.Float(f)) }
func Vector2(x, y float64) E { return Lit(ir.NewVector2(x, y)) }
func Vector3(x, y, z float64) E { return Lit(ir.NewVector3(x, y, z)) }
func Vector4(x, y, z, w float64) E { return Lit(ir.NewVector4(x, y, z, w)) }

// Read builds a path read relative to CONTEXT.
func Read(props...ir.PropertyIdentifier) E { return E{Expr: ctx(props...)} }

// ReadLocal builds a path read relative to a local binding.
func ReadLocal(props...ir.PropertyIdentifier) E { return E{Expr: ir.ExprRead{Path: props}} }

func (a E) Add(b E) E { return E{ir.Add(a.Expr, b.Expr)} }
func (a E) Sub(b E) E { return E{ir.Sub(a.Expr, b.Expr)} }
func (a E) Mul(b E) E { return E{ir.Mul(a.Expr, b.Expr)} }
func (a E) Div(b E) E { return E{ir.Div(a.Expr, b.Expr)} }
func (a E) Min(b E) E { return E{ir.Min(a.Expr, b.Expr)} }
func (a E) Max(b E) E { return E{ir.Max(a.Expr, b.Expr)} }
func (a E) Dot(b E) E { return E{ir.Dot(a.Expr, b.Expr)} }
func (a E) Lt(b E) E { return E{ir.Lt(a.Expr, b.Expr)} }
func (a E) Gt(b E) E { return E{ir.Gt(a.Expr, b.Expr)} }
func (a E) Eq(b E) E { return E{ir.Eq(a.Expr, b.Expr)} }
func (a E) And(b E) E { return E{ir.And(a.Expr, b.Expr)} }
func (a E) Or(b E) E { return E{ir.Or(a.Expr, b.Expr)} }

func (a E) Neg() E { return E{ir.Neg(a.Expr)} }
func (a E) Abs() E { return E{ir.Abs(a.Expr)} }
func (a E) Sign() E { return E{ir.Sign(a.Expr)} }
func (a E) Length() E { return E{ir.Length(a.Expr)} }
func (a E) Normalize() E { return E{ir.Normalize(a.Expr)} }

func (a E) Mix(b, t E) E { return E{ir.MixExpr(a.Expr, b.Expr, t.Expr)} }

func (a E) Clamp(lo, hi E) E { return E{ir.Math(ir.MathClamp, a.Expr, lo.Expr, hi.Expr)} }
func (a E) Mod(b E) E { return E{ir.Math(ir.MathMod, a.Expr, b.Expr)} }
func (a E) Round() E { return E{ir.Math(ir.MathRound, a.Expr)} }
func (a E) Sin() E { return E{ir.Math(ir.MathSin, a.Expr)} }
func (a E) Cos() E { return E{ir.Math(ir.MathCos, a.Expr)} }
func (a E) Tan() E { return E{ir.Math(ir.MathTan, a.Expr)} }
func (a E) Asin() E { return E{ir.Math(ir.MathAsin, a.Expr)} }
func (a E) Acos() E { return E{ir.Math(ir.MathAcos, a.Expr)} }
func (a E) Atan() E { return E{ir.Math(ir.MathAtan, a.Expr)} }
func Atan2(y, x E) E { return E{ir.Math(ir.MathAtan2, y.Expr, x.Expr)} }
