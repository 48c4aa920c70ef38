package ir

import (
	"math"
	"testing"
)

func approxEqual(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAddV_NumberBroadcastsAcrossStruct(t *testing.T) {
	v := NewVector2(1, 2)
	out, err := AddV(v, Float(10))
	if err != nil {
		t.Fatal(err)
	}
	comps, err := VectorComponents(out)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, comps[0], 11)
	approxEqual(t, comps[1], 12)
}

func TestAddV_NumberKindMismatch(t *testing.T) {
	_, err := AddV(Float(1), UInt(2))
	if err == nil {
		t.Fatal("expected an error mixing Float and UInt")
	}
}

func TestMulV_StructZip(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, 5, 6)
	out, err := MulV(a, b)
	if err != nil {
		t.Fatal(err)
	}
	comps, _ := VectorComponents(out)
	approxEqual(t, comps[0], 4)
	approxEqual(t, comps[1], 10)
	approxEqual(t, comps[2], 18)
}

func TestNormalizeV_ZeroVectorIsSafe(t *testing.T) {
	zero := NewVector2(0, 0)
	out, err := NormalizeV(zero)
	if err != nil {
		t.Fatal(err)
	}
	comps, _ := VectorComponents(out)
	approxEqual(t, comps[0], 0)
	approxEqual(t, comps[1], 0)
}

func TestNormalizeV_UnitLength(t *testing.T) {
	v := NewVector2(3, 4)
	out, err := NormalizeV(v)
	if err != nil {
		t.Fatal(err)
	}
	lv, err := LengthV(out)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, lv.(NumberValue).Float, 1)
}

func TestDotV(t *testing.T) {
	a := NewVector3(1, 0, 0)
	b := NewVector3(0, 1, 0)
	out, err := DotV(a, b)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, out.(NumberValue).Float, 0)
}

func TestLtV_DifferentKindsRejected(t *testing.T) {
	_, err := LtV(Float(1), SInt(2))
	if err == nil {
		t.Fatal("expected an error comparing Float to SInt")
	}
}

func TestMixV_Scalar(t *testing.T) {
	out, err := MixV(Float(0), Float(10), Float(0.25))
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, out.(NumberValue).Float, 2.5)
}

func TestClampV(t *testing.T) {
	out, err := ClampV(Float(15), Float(0), Float(10))
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, out.(NumberValue).Float, 10)
}

func TestSignV(t *testing.T) {
	for _, tc := range []struct {
		in, want float64
	}{{-5, -1}, {0, 0}, {5, 1}} {
		out, err := SignV(Float(tc.in))
		if err != nil {
			t.Fatal(err)
		}
		approxEqual(t, out.(NumberValue).Float, tc.want)
	}
}

func TestTypeOf(t *testing.T) {
	if _, ok := TypeOf(Bool(true)).(BooleanType); !ok {
		t.Error("expected BooleanType")
	}
	if nt, ok := TypeOf(Float(1)).(NumberType); !ok || nt.Kind != NumberFloat {
		t.Error("expected Float NumberType")
	}
	if st, ok := TypeOf(NewVector2(0, 0)).(StructTypeRef); !ok || st.Struct.Name != "Vector2" {
		t.Error("expected Vector2 StructTypeRef")
	}
}
