package ir

import "math"

// Value is a runtime value produced by the interpreter. Tagged union of
// Boolean, Number and Struct, matching the ir.Type tagging pattern.
type Value interface {
	valueTag()
}

// BoolValue is a Boolean runtime value.
type BoolValue bool

func (BoolValue) valueTag() {}

// NumberValue is a scalar numeric runtime value. Only the field matching
// Kind is meaningful; operations never read across kinds without an
// explicit conversion.
type NumberValue struct {
	Kind NumberKind
	UInt uint64
	SInt int64
	Float float64
}

func (NumberValue) valueTag() {}

// UInt builds an unsigned-integer NumberValue.
func UInt(n uint64) Value { return NumberValue{Kind: NumberUInt, UInt: n} }

// SInt builds a signed-integer NumberValue.
func SInt(n int64) Value { return NumberValue{Kind: NumberSInt, SInt: n} }

// Float builds a floating-point NumberValue.
func Float(f float64) Value { return NumberValue{Kind: NumberFloat, Float: f} }

// Bool builds a BoolValue.
func Bool(b bool) Value { return BoolValue(b) }

// StructValue is a struct runtime value: an ordered set of member values
// keyed by PropertyIdentifier. Equality uses identifier ordering, iteration
// uses insertion order (via PropertyValueMap).
type StructValue struct {
	ID StructIdentifier
	Members *PropertyValueMap
}

func (StructValue) valueTag() {}

// TypeOf returns v's Type.
func TypeOf(v Value) Type {
	switch t := v.(type) {
	case BoolValue:
		return BooleanType{}
	case NumberValue:
		return NumberType{Kind: t.Kind}
	case StructValue:
		return StructTypeRef{Struct: t.ID}
	default:
		return nil
	}
}

// InvalidOperation reports an arithmetic/comparison operation that received
// operands whose tags or kinds are incompatible.
type InvalidOperation struct {
	Op string
	Operands []Value
}

func (e *InvalidOperation) Error() string {
	return "invalid operation " + e.Op + ": incompatible operands"
}

// AsFloat extracts a float64 from a scalar NumberValue of any kind (UInt
// and SInt are converted), failing if v is a BoolValue or a struct.
func AsFloat(v Value) (float64, error) {
	switch t := v.(type) {
	case NumberValue:
		switch t.Kind {
		case NumberFloat:
			return t.Float, nil
		case NumberUInt:
			return float64(t.UInt), nil
		case NumberSInt:
			return float64(t.SInt), nil
		}
	}
	return 0, &InvalidOperation{Op: "asFloat", Operands: []Value{v}}
}

// AsBool extracts a bool, failing if v is not a BoolValue.
func AsBool(v Value) (bool, error) {
	b, ok := v.(BoolValue)
	if !ok {
		return false, &InvalidOperation{Op: "asBool", Operands: []Value{v}}
	}
	return bool(b), nil
}

// vectorArity returns the number of components for a builtin Vector/Matrix
// struct identifier, or 0 if id does not name one.
func vectorArity(name string) int {
	switch name {
	case "Vector2", "Matrix2":
		return 2
	case "Vector3", "Matrix3":
		return 3
	case "Vector4", "Matrix4":
		return 4
	default:
		return 0
	}
}

func isVector(id StructIdentifier) bool {
	switch id.Name {
	case "Vector2", "Vector3", "Vector4":
		return true
	default:
		return false
	}
}

func isMatrix(id StructIdentifier) bool {
	switch id.Name {
	case "Matrix2", "Matrix3", "Matrix4":
		return true
	default:
		return false
	}
}

// vectorFieldOrder returns the canonical field identifiers for a vector of
// the given arity, in X,Y,Z,W order.
func vectorFieldOrder(arity int) []PropertyIdentifier {
	all := []PropertyIdentifier{PropX, PropY, PropZ, PropW}
	return all[:arity]
}

// matrixFieldOrder returns the canonical axis-field identifiers for a
// matrix of the given arity.
func matrixFieldOrder(arity int) []PropertyIdentifier {
	all := []PropertyIdentifier{PropXAxis, PropYAxis, PropZAxis, PropWAxis}
	return all[:arity]
}

// fieldOrder returns the canonical field order for a builtin vector/matrix
// struct identifier.
func fieldOrder(id StructIdentifier) []PropertyIdentifier {
	n := vectorArity(id.Name)
	if n == 0 {
		return nil
	}
	if isMatrix(id) {
		return matrixFieldOrder(n)
	}
	return vectorFieldOrder(n)
}

// zipStruct applies op componentwise to two struct values of the same
// identifier, returning a new struct value with the same identifier.
func zipStruct(a, b StructValue, op func(Value, Value) (Value, error)) (Value, error) {
	if !a.ID.Equal(b.ID) {
		return nil, &InvalidOperation{Op: "zipStruct", Operands: []Value{a, b}}
	}
	fields := fieldOrder(a.ID)
	if fields == nil {
		return nil, &InvalidOperation{Op: "zipStruct", Operands: []Value{a, b}}
	}
	out := NewPropertyValueMap()
	for _, f := range fields {
		av, ok := a.Members.Get(f)
		if !ok {
			return nil, &InvalidOperation{Op: "zipStruct", Operands: []Value{a, b}}
		}
		bv, ok := b.Members.Get(f)
		if !ok {
			return nil, &InvalidOperation{Op: "zipStruct", Operands: []Value{a, b}}
		}
		rv, err := op(av, bv)
		if err != nil {
			return nil, err
		}
		out.Set(f, rv)
	}
	return StructValue{ID: a.ID, Members: out}, nil
}

// broadcastStruct applies op(number, member) to every member of s, used for
// Number-struct mixed arithmetic (e.g. vector * scalar).
func broadcastStruct(s StructValue, n Value, op func(Value, Value) (Value, error), numberFirst bool) (Value, error) {
	fields := fieldOrder(s.ID)
	if fields == nil {
		return nil, &InvalidOperation{Op: "broadcastStruct", Operands: []Value{s, n}}
	}
	out := NewPropertyValueMap()
	for _, f := range fields {
		mv, _ := s.Members.Get(f)
		var rv Value
		var err error
		if numberFirst {
			rv, err = op(n, mv)
		} else {
			rv, err = op(mv, n)
		}
		if err != nil {
			return nil, err
		}
		out.Set(f, rv)
	}
	return StructValue{ID: s.ID, Members: out}, nil
}

func numberOp(op string, a, b NumberValue, uintOp func(x, y uint64) uint64, sintOp func(x, y int64) int64, floatOp func(x, y float64) float64) (Value, error) {
	if a.Kind != b.Kind {
		return nil, &InvalidOperation{Op: op, Operands: []Value{a, b}}
	}
	switch a.Kind {
	case NumberUInt:
		return NumberValue{Kind: NumberUInt, UInt: uintOp(a.UInt, b.UInt)}, nil
	case NumberSInt:
		return NumberValue{Kind: NumberSInt, SInt: sintOp(a.SInt, b.SInt)}, nil
	case NumberFloat:
		return NumberValue{Kind: NumberFloat, Float: floatOp(a.Float, b.Float)}, nil
	default:
		return nil, &InvalidOperation{Op: op, Operands: []Value{a, b}}
	}
}

// arith dispatches a binary arithmetic op over Number/Number, Struct/Struct
// (matching vector or matrix identifiers) and Number/Struct broadcasts, per
// "arithmetic of mixed Number/Struct broadcasts the number across
// struct members" rule.
func arith(op string, a, b Value, uintOp func(x, y uint64) uint64, sintOp func(x, y int64) int64, floatOp func(x, y float64) float64) (Value, error) {
	binNum := func(x, y Value) (Value, error) {
		return numberOp(op, x.(NumberValue), y.(NumberValue), uintOp, sintOp, floatOp)
	}
	switch at := a.(type) {
	case NumberValue:
		switch bt := b.(type) {
		case NumberValue:
			return numberOp(op, at, bt, uintOp, sintOp, floatOp)
		case StructValue:
			return broadcastStruct(bt, at, binNum, true)
		}
	case StructValue:
		switch bt := b.(type) {
		case StructValue:
			return zipStruct(at, bt, binNum)
		case NumberValue:
			return broadcastStruct(at, bt, binNum, false)
		}
	}
	return nil, &InvalidOperation{Op: op, Operands: []Value{a, b}}
}

// Arithmetic operations. Each preserves the scalar NumberKind;
// mixing kinds fails with InvalidOperation.
func AddV(a, b Value) (Value, error) {
	return arith("add", a, b, func(x, y uint64) uint64 { return x + y }, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y })
}
func SubV(a, b Value) (Value, error) {
	return arith("sub", a, b, func(x, y uint64) uint64 { return x - y }, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y })
}
func MulV(a, b Value) (Value, error) {
	return arith("mul", a, b, func(x, y uint64) uint64 { return x * y }, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y })
}
func DivV(a, b Value) (Value, error) {
	return arith("div", a, b, func(x, y uint64) uint64 { return x / y }, func(x, y int64) int64 { return x / y }, func(x, y float64) float64 { return x / y })
}
func ModV(a, b Value) (Value, error) {
	return arith("mod", a, b, func(x, y uint64) uint64 { return x % y }, func(x, y int64) int64 { return x % y }, func(x, y float64) float64 { return math.Mod(x, y) })
}
func MinV(a, b Value) (Value, error) {
	return arith("min", a, b, func(x, y uint64) uint64 {
		if x < y {
			return x
		}
		return y
	}, func(x, y int64) int64 {
		if x < y {
			return x
		}
		return y
	}, math.Min)
}
func MaxV(a, b Value) (Value, error) {
	return arith("max", a, b, func(x, y uint64) uint64 {
		if x > y {
			return x
		}
		return y
	}, func(x, y int64) int64 {
		if x > y {
			return x
		}
		return y
	}, math.Max)
}

// AndV, OrV implement boolean and/or.
func AndV(a, b Value) (Value, error) {
	ab, ok1 := a.(BoolValue)
	bb, ok2 := b.(BoolValue)
	if !ok1 || !ok2 {
		return nil, &InvalidOperation{Op: "and", Operands: []Value{a, b}}
	}
	return BoolValue(bool(ab) && bool(bb)), nil
}
func OrV(a, b Value) (Value, error) {
	ab, ok1 := a.(BoolValue)
	bb, ok2 := b.(BoolValue)
	if !ok1 || !ok2 {
		return nil, &InvalidOperation{Op: "or", Operands: []Value{a, b}}
	}
	return BoolValue(bool(ab) || bool(bb)), nil
}

// LtV, GtV, EqV, NeqV implement comparison. Comparison is only defined
// between two scalar Numbers and yields a BoolValue.
func cmp(op string, a, b Value, f func(x, y float64) bool) (Value, error) {
	an, ok1 := a.(NumberValue)
	bn, ok2 := b.(NumberValue)
	if !ok1 || !ok2 || an.Kind != bn.Kind {
		return nil, &InvalidOperation{Op: op, Operands: []Value{a, b}}
	}
	af, _ := AsFloat(an)
	bf, _ := AsFloat(bn)
	return BoolValue(f(af, bf)), nil
}

func LtV(a, b Value) (Value, error) { return cmp("lt", a, b, func(x, y float64) bool { return x < y }) }
func GtV(a, b Value) (Value, error) { return cmp("gt", a, b, func(x, y float64) bool { return x > y }) }
func EqV(a, b Value) (Value, error) {
	return cmp("eq", a, b, func(x, y float64) bool { return x == y })
}
func NeqV(a, b Value) (Value, error) {
	return cmp("neq", a, b, func(x, y float64) bool { return x != y })
}

// NegV negates a, componentwise for structs.
func NegV(a Value) (Value, error) {
	switch t := a.(type) {
	case NumberValue:
		switch t.Kind {
		case NumberFloat:
			return NumberValue{Kind: NumberFloat, Float: -t.Float}, nil
		case NumberSInt:
			return NumberValue{Kind: NumberSInt, SInt: -t.SInt}, nil
		default:
			return nil, &InvalidOperation{Op: "neg", Operands: []Value{a}}
		}
	case StructValue:
		fields := fieldOrder(t.ID)
		out := NewPropertyValueMap()
		for _, f := range fields {
			mv, _ := t.Members.Get(f)
			rv, err := NegV(mv)
			if err != nil {
				return nil, err
			}
			out.Set(f, rv)
		}
		return StructValue{ID: t.ID, Members: out}, nil
	}
	return nil, &InvalidOperation{Op: "neg", Operands: []Value{a}}
}

// AbsV, SignV, RoundV apply the corresponding scalar function,
// componentwise for structs.
func scalarMap(name string, a Value, f func(float64) float64) (Value, error) {
	switch t := a.(type) {
	case NumberValue:
		fv, err := AsFloat(t)
		if err != nil {
			return nil, err
		}
		return NumberValue{Kind: t.Kind, Float: f(fv)}.normalizeKind(t.Kind), nil
	case StructValue:
		fields := fieldOrder(t.ID)
		out := NewPropertyValueMap()
		for _, fld := range fields {
			mv, _ := t.Members.Get(fld)
			rv, err := scalarMap(name, mv, f)
			if err != nil {
				return nil, err
			}
			out.Set(fld, rv)
		}
		return StructValue{ID: t.ID, Members: out}, nil
	}
	return nil, &InvalidOperation{Op: name, Operands: []Value{a}}
}

// normalizeKind rewrites a Float-computed NumberValue back into its
// original integer representation when Kind is not Float.
func (n NumberValue) normalizeKind(kind NumberKind) Value {
	switch kind {
	case NumberUInt:
		return NumberValue{Kind: NumberUInt, UInt: uint64(n.Float)}
	case NumberSInt:
		return NumberValue{Kind: NumberSInt, SInt: int64(n.Float)}
	default:
		return NumberValue{Kind: NumberFloat, Float: n.Float}
	}
}

func AbsV(a Value) (Value, error) { return scalarMap("abs", a, math.Abs) }
func RoundV(a Value) (Value, error) { return scalarMap("round", a, math.Round) }
func SignV(a Value) (Value, error) {
	return scalarMap("sign", a, func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	})
}

// ClampV clamps v into [lo, hi], componentwise for structs.
func ClampV(v, lo, hi Value) (Value, error) {
	lof, err := AsFloat(numberOrFirstComponent(lo))
	if err != nil {
		return nil, err
	}
	hif, err := AsFloat(numberOrFirstComponent(hi))
	if err != nil {
		return nil, err
	}
	return scalarMap("clamp", v, func(x float64) float64 {
		if x < lof {
			return lof
		}
		if x > hif {
			return hif
		}
		return x
	})
}

func numberOrFirstComponent(v Value) Value {
	if n, ok := v.(NumberValue); ok {
		return n
	}
	if comps, err := components(v); err == nil && len(comps) > 0 {
		return Float(comps[0])
	}
	return NumberValue{Kind: NumberFloat}
}

// MixV linearly interpolates a to b by fraction t: a*(1-t) + b*t. t must be
// a Float NumberValue. Applied componentwise for structs.
func MixV(a, b, t Value) (Value, error) {
	tn, ok := t.(NumberValue)
	if !ok || tn.Kind != NumberFloat {
		return nil, &InvalidOperation{Op: "mix", Operands: []Value{a, b, t}}
	}
	switch at := a.(type) {
	case NumberValue:
		bt, ok := b.(NumberValue)
		if !ok || bt.Kind != at.Kind {
			return nil, &InvalidOperation{Op: "mix", Operands: []Value{a, b, t}}
		}
		af, _ := AsFloat(at)
		bf, _ := AsFloat(bt)
		return NumberValue{Kind: at.Kind, Float: af*(1-tn.Float) + bf*tn.Float}.normalizeKind(at.Kind), nil
	case StructValue:
		bt, ok := b.(StructValue)
		if !ok || !bt.ID.Equal(at.ID) {
			return nil, &InvalidOperation{Op: "mix", Operands: []Value{a, b, t}}
		}
		fields := fieldOrder(at.ID)
		out := NewPropertyValueMap()
		for _, f := range fields {
			av, _ := at.Members.Get(f)
			bv, _ := bt.Members.Get(f)
			rv, err := MixV(av, bv, t)
			if err != nil {
				return nil, err
			}
			out.Set(f, rv)
		}
		return StructValue{ID: at.ID, Members: out}, nil
	}
	return nil, &InvalidOperation{Op: "mix", Operands: []Value{a, b, t}}
}

// components extracts a struct's fields as float64s in canonical order.
func components(v Value) ([]float64, error) {
	s, ok := v.(StructValue)
	if !ok {
		return nil, &InvalidOperation{Op: "components", Operands: []Value{v}}
	}
	fields := fieldOrder(s.ID)
	if fields == nil {
		return nil, &InvalidOperation{Op: "components", Operands: []Value{v}}
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		mv, _ := s.Members.Get(f)
		fv, err := AsFloat(mv)
		if err != nil {
			return nil, err
		}
		out[i] = fv
	}
	return out, nil
}

// LengthV returns the Euclidean length of a vector value.
func LengthV(v Value) (Value, error) {
	comps, err := components(v)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, c := range comps {
		sum += c * c
	}
	return Float(math.Sqrt(sum)), nil
}

// NormalizeV returns v/‖v‖, or the zero vector if ‖v‖ == 0 (safe-normalize,
// per canonicalization decision).
func NormalizeV(v Value) (Value, error) {
	s, ok := v.(StructValue)
	if !ok {
		return nil, &InvalidOperation{Op: "normalize", Operands: []Value{v}}
	}
	lv, err := LengthV(v)
	if err != nil {
		return nil, err
	}
	length := lv.(NumberValue).Float
	if length == 0 {
		return v, nil
	}
	return broadcastStruct(s, Float(length), func(x, y Value) (Value, error) { return DivV(y, x) }, true)
}

// DotV returns the dot product of two vector values.
func DotV(a, b Value) (Value, error) {
	ac, err := components(a)
	if err != nil {
		return nil, err
	}
	bc, err := components(b)
	if err != nil {
		return nil, err
	}
	if len(ac) != len(bc) {
		return nil, &InvalidOperation{Op: "dot", Operands: []Value{a, b}}
	}
	sum := 0.0
	for i := range ac {
		sum += ac[i] * bc[i]
	}
	return Float(sum), nil
}

// Trig functions take a scalar Number of any kind and return a Float.
func trig1(name string, v Value, f func(float64) float64) (Value, error) {
	fv, err := AsFloat(v)
	if err != nil {
		return nil, err
	}
	return Float(f(fv)), nil
}

func SinV(v Value) (Value, error) { return trig1("sin", v, math.Sin) }
func CosV(v Value) (Value, error) { return trig1("cos", v, math.Cos) }
func TanV(v Value) (Value, error) { return trig1("tan", v, math.Tan) }
func AsinV(v Value) (Value, error) { return trig1("asin", v, math.Asin) }
func AcosV(v Value) (Value, error) { return trig1("acos", v, math.Acos) }
func AtanV(v Value) (Value, error) { return trig1("atan", v, math.Atan) }

// Atan2V returns atan2(y, x).
func Atan2V(y, x Value) (Value, error) {
	yf, err := AsFloat(y)
	if err != nil {
		return nil, err
	}
	xf, err := AsFloat(x)
	if err != nil {
		return nil, err
	}
	return Float(math.Atan2(yf, xf)), nil
}
