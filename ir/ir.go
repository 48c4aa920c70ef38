package ir

import (
	"sort"

	"github.com/google/uuid"
)

// Identifier is a (name, uuid) pair. Equality is by UUID when both operands
// carry one, otherwise by name — this lets hand-authored shapes use bare
// names while generated/specialized identifiers carry a collision-resistant
// UUID.
type Identifier struct {
	Name string
	UUID *uuid.UUID
}

// NewIdentifier builds an Identifier with a deterministic UUID derived from
// name, so that two calls with the same name and the same kind produce
// identical identifiers across runs (required for the property registry's
// collision check and for specialization hashing to be reproducible).
func NewIdentifier(kind, name string) Identifier {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("elysian."+kind+"."+name))
	return Identifier{Name: name, UUID: &id}
}

// Equal reports whether two identifiers denote the same entity.
func (a Identifier) Equal(b Identifier) bool {
	if a.UUID != nil && b.UUID != nil {
		return *a.UUID == *b.UUID
	}
	return a.Name == b.Name
}

// key returns a string suitable for use as a map key, consistent with Equal.
func (a Identifier) key() string {
	if a.UUID != nil {
		return "u:" + a.UUID.String()
	}
	return "n:" + a.Name
}

// PropertyIdentifier names a Property (position, distance, gradient,...).
type PropertyIdentifier Identifier

// FunctionIdentifier names a FunctionDefinition.
type FunctionIdentifier Identifier

// StructIdentifier names a StructDefinition.
type StructIdentifier Identifier

func (a PropertyIdentifier) Equal(b PropertyIdentifier) bool {
	return Identifier(a).Equal(Identifier(b))
}
func (a PropertyIdentifier) key() string { return Identifier(a).key() }

func (a FunctionIdentifier) Equal(b FunctionIdentifier) bool {
	return Identifier(a).Equal(Identifier(b))
}
func (a FunctionIdentifier) key() string { return Identifier(a).key() }

func (a StructIdentifier) Equal(b StructIdentifier) bool {
	return Identifier(a).Equal(Identifier(b))
}
func (a StructIdentifier) key() string { return Identifier(a).key() }

func newPropertyIdentifier(name string) PropertyIdentifier {
	return PropertyIdentifier(NewIdentifier("property", name))
}

// NewFunctionIdentifier builds a base FunctionIdentifier for a shape's entry
// point, prior to specialization.
func NewFunctionIdentifier(name string) FunctionIdentifier {
	return FunctionIdentifier(NewIdentifier("function", name))
}

// NewStructIdentifier builds a StructIdentifier.
func NewStructIdentifier(name string) StructIdentifier {
	return StructIdentifier(NewIdentifier("struct", name))
}

// Property is a named, typed output channel.
type Property struct {
	ID PropertyIdentifier
	Type Type
}

// Type is the tagged union of value types: Boolean, Number(kind) or
// Struct(id). Modeled as a marker interface, matching naga's
// TypeInner pattern (ir.TypeInner in the naga IR this package descends
// from) rather than an explicit discriminant field.
type Type interface {
	typeTag()
}

// BooleanType is the type of Boolean values.
type BooleanType struct{}

func (BooleanType) typeTag() {}

// NumberKind distinguishes the three numeric representations the IR
// supports; arithmetic never implicitly converts between them.
type NumberKind uint8

const (
	NumberUInt NumberKind = iota
	NumberSInt
	NumberFloat
)

// NumberType is the type of Number values of a given NumberKind.
type NumberType struct {
	Kind NumberKind
}

func (NumberType) typeTag() {}

// StructTypeRef is the type of struct values identified by a StructIdentifier
// (this includes the builtin Vector2/3/4 and Matrix2/3/4 structs).
type StructTypeRef struct {
	Struct StructIdentifier
}

func (StructTypeRef) typeTag() {}

// SameType reports whether two types are structurally identical.
func SameType(a, b Type) bool {
	switch at := a.(type) {
	case BooleanType:
		_, ok := b.(BooleanType)
		return ok
	case NumberType:
		bt, ok := b.(NumberType)
		return ok && at.Kind == bt.Kind
	case StructTypeRef:
		bt, ok := b.(StructTypeRef)
		return ok && at.Struct.Equal(bt.Struct)
	default:
		return false
	}
}

// IsVectorOrMatrix reports whether a StructIdentifier names one of the
// builtin Vector2/3/4 or Matrix2/3/4 structs, and if so returns its name.
func IsVectorOrMatrix(id StructIdentifier) (name string, ok bool) {
	switch id.Name {
	case "Vector2", "Vector3", "Vector4", "Matrix2", "Matrix3", "Matrix4":
		return id.Name, true
	default:
		return "", false
	}
}

// SpecializationData is the set of PropertyIdentifiers a compilation is
// required to populate. Shapes intersect this with their own domain set.
type SpecializationData struct {
	props map[string]PropertyIdentifier
}

// NewSpecializationData builds a SpecializationData from a list of
// properties.
func NewSpecializationData(props...PropertyIdentifier) SpecializationData {
	s := SpecializationData{props: make(map[string]PropertyIdentifier, len(props))}
	for _, p := range props {
		s.props[p.key()] = p
	}
	return s
}

// Has reports whether id is a member of the set.
func (s SpecializationData) Has(id PropertyIdentifier) bool {
	_, ok := s.props[id.key()]
	return ok
}

// Intersect returns the subset of s whose members are also in domain.
func (s SpecializationData) Intersect(domain SpecializationData) SpecializationData {
	out := SpecializationData{props: make(map[string]PropertyIdentifier)}
	for k, v := range s.props {
		if _, ok := domain.props[k]; ok {
			out.props[k] = v
		}
	}
	return out
}

// Union returns the union of s and other.
func (s SpecializationData) Union(other SpecializationData) SpecializationData {
	out := SpecializationData{props: make(map[string]PropertyIdentifier, len(s.props)+len(other.props))}
	for k, v := range s.props {
		out.props[k] = v
	}
	for k, v := range other.props {
		out.props[k] = v
	}
	return out
}

// IsSubsetOf reports whether every member of s is also a member of other.
func (s SpecializationData) IsSubsetOf(other SpecializationData) bool {
	for k := range s.props {
		if _, ok := other.props[k]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the members of s ordered by key, for deterministic
// iteration (specialization hashing, CONTEXT struct field order seeding).
func (s SpecializationData) Sorted() []PropertyIdentifier {
	out := make([]PropertyIdentifier, 0, len(s.props))
	keys := make([]string, 0, len(s.props))
	for k := range s.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, s.props[k])
	}
	return out
}

// Len returns the number of members in s.
func (s SpecializationData) Len() int { return len(s.props) }
