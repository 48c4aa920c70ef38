package ir

import (
	"sync"
	"testing"
)

func resetRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	savedContrib := append([]Property(nil), contributions...)
	registryMu.Unlock()
	savedOnce := registryOnce
	savedByKey := registryByKey
	savedByUUID := registryByUUID

	registryMu.Lock()
	contributions = nil
	registryMu.Unlock()
	registryOnce = sync.Once{}

	t.Cleanup(func() {
		registryMu.Lock()
		contributions = savedContrib
		registryMu.Unlock()
		registryOnce = savedOnce
		registryByKey = savedByKey
		registryByUUID = savedByUUID
	})
}

func TestRegistry_LookupBuiltin(t *testing.T) {
	p, ok := LookupProperty(PropPosition2D)
	if !ok {
		t.Fatal("expected POSITION_2D to be registered")
	}
	st, ok := p.Type.(StructTypeRef)
	if !ok || st.Struct.Name != "Vector2" {
		t.Errorf("expected Vector2 struct type, got %#v", p.Type)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	unknown := newPropertyIdentifier("NOT_A_REAL_PROPERTY")
	if _, ok := LookupProperty(unknown); ok {
		t.Error("expected unregistered property to be absent")
	}
}

func TestRegistry_DuplicateSameNameIsIdempotent(t *testing.T) {
	resetRegistry(t)
	p := Property{ID: newPropertyIdentifier("DUPTEST"), Type: NumberType{Kind: NumberFloat}}
	RegisterProperties(p, p)
	if _, ok := LookupProperty(p.ID); !ok {
		t.Fatal("expected property to resolve after duplicate registration")
	}
}

func TestRegistry_CollisionPanics(t *testing.T) {
	resetRegistry(t)
	id := newPropertyIdentifier("COLLIDE_A")
	a := Property{ID: id, Type: NumberType{Kind: NumberFloat}}
	b := a
	b.ID.Name = "COLLIDE_B" // same UUID, different name: a genuine collision
	RegisterProperties(a, b)

	defer func() {
		if recover() == nil {
			t.Fatal("expected Registry to panic on UUID collision")
		}
	}()
	Registry()
}

func TestSpecializationData_IntersectUnionSubset(t *testing.T) {
	a := NewSpecializationData(PropPosition2D, PropTime)
	b := NewSpecializationData(PropTime, PropColor)

	inter := a.Intersect(b)
	if inter.Len() != 1 || !inter.Has(PropTime) {
		t.Errorf("expected intersect to contain only TIME, got %v", inter.Sorted())
	}

	union := a.Union(b)
	if union.Len() != 3 {
		t.Errorf("expected union of 3 distinct properties, got %d", union.Len())
	}

	if !inter.IsSubsetOf(a) || !inter.IsSubsetOf(b) {
		t.Error("expected intersection to be a subset of both operands")
	}
	if a.IsSubsetOf(inter) {
		t.Error("did not expect the larger set to be a subset of the smaller one")
	}
}
