package ir

import "sync"

// RegistryCollision reports that two distinct properties share a non-nil
// UUID; registry initialization is fatal on this condition.
type RegistryCollision struct {
	A, B Property
}

func (e *RegistryCollision) Error() string {
	return "registry collision: " + e.A.ID.Name + " and " + e.B.ID.Name + " share a UUID"
}

var (
	registryMu sync.Mutex
	contributions []Property
	registryOnce sync.Once
	registryByKey map[string]Property
	registryByUUID map[string]Property
)

// RegisterProperties contributes properties to the global registry. Must be
// called before the registry is first read (e.g. from package init
// functions); contributions after first read are ignored, matching the
// "initialized once per process, reads thereafter immutable" lifecycle.
func RegisterProperties(props...Property) {
	registryMu.Lock()
	defer registryMu.Unlock()
	contributions = append(contributions, props...)
}

// Registry returns the process-wide property registry, building it lazily
// and exactly once via a synchronized first-touch. Panics with a
// *RegistryCollision if two distinct properties share a non-nil UUID.
func Registry() map[string]Property {
	registryOnce.Do(buildRegistry)
	return registryByKey
}

func buildRegistry() {
	registryMu.Lock()
	props := append([]Property(nil), contributions...)
	registryMu.Unlock()

	byKey := make(map[string]Property, len(props))
	byUUID := make(map[string]Property, len(props))
	for _, p := range props {
		k := p.ID.key()
		if existing, ok := byKey[k]; ok {
			if existing.ID.Name != p.ID.Name {
				panic(&RegistryCollision{A: existing, B: p})
			}
			continue
		}
		byKey[k] = p
		if p.ID.UUID != nil {
			uk := p.ID.UUID.String()
			if existing, ok := byUUID[uk]; ok && existing.ID.Name != p.ID.Name {
				panic(&RegistryCollision{A: existing, B: p})
			}
			byUUID[uk] = p
		}
	}
	registryByKey = byKey
	registryByUUID = byUUID
}

// LookupProperty returns the registered Property for id, if any.
func LookupProperty(id PropertyIdentifier) (Property, bool) {
	p, ok := Registry()[id.key()]
	return p, ok
}
