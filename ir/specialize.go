package ir

import (
	"sort"

	"github.com/google/uuid"
)

// Specialize rewrites a base FunctionIdentifier into a fresh identifier
// suffixed by spec: a pure function of (base UUID, sorted spec UUIDs)
// producing a deterministic UUID, so the same shape compiled with
// different specializations yields distinct, stably-named functions that
// can coexist in one Module.
func Specialize(base FunctionIdentifier, spec SpecializationData) FunctionIdentifier {
	sorted := spec.Sorted()
	suffix := make([]byte, 0, 64)
	if base.UUID != nil {
		suffix = append(suffix, base.UUID[:]...)
	}
	names := make([]string, 0, len(sorted))
	for _, p := range sorted {
		names = append(names, p.Name)
		if p.UUID != nil {
			suffix = append(suffix, p.UUID[:]...)
		}
	}
	sort.Strings(names)
	id := uuid.NewSHA1(uuid.NameSpaceOID, suffix)

	name := base.Name
	for _, n := range names {
		name += "_" + n
	}
	return FunctionIdentifier{Name: name, UUID: &id}
}

// SpecializeStruct rewrites a base StructIdentifier the same way
// Specialize rewrites a FunctionIdentifier.
func SpecializeStruct(base StructIdentifier, spec SpecializationData) StructIdentifier {
	f := Specialize(FunctionIdentifier(base), spec)
	return StructIdentifier(f)
}
