// Package shape implements the polymorphic Shape node tree:
// primitives, unary modifiers, n-ary combinators, Select and Voronoi, plus
// the fluent author-facing builder surface. Every concrete type
// compiles itself to an ir.Module via the shared Module helper.
package shape

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/elysian-sdf/elysian/ir"
)

// hashCombine folds a sequence of uint64s into one, order-sensitive (so
// Union(A,B) and Union(B,A) hash differently, matching their distinct
// emitted code).
func hashCombine(parts...uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], p)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// hashString hashes a string deterministically for use in hashCombine.
func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// hashFloat hashes a float64 by its bit pattern, so that identical values
// hash equal; -0 and 0 have different bit patterns and hash differently.
func hashFloat(f float64) uint64 {
	return math.Float64bits(f)
}

// hashFloats folds a sequence of float64 parameters into one hash.
func hashFloats(fs...float64) uint64 {
	parts := make([]uint64, len(fs))
	for i, f := range fs {
		parts[i] = hashFloat(f)
	}
	return hashCombine(parts...)
}

// entryIdentifier derives a stable FunctionIdentifier from a shape kind
// name and its structural hash: the same shape value (same kind, same
// parameters, same children) always yields the same identifier, so
// identical sub-trees are deduplicated at Finalize; distinct parameters
// yield distinct identifiers so they never collide in one Module.
func entryIdentifier(kind string, hash uint64) ir.FunctionIdentifier {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], hash)
	return ir.NewFunctionIdentifier(kind + "_" + hexString(buf[:]))
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xf]
	}
	return string(out)
}
