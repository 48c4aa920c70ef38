package interp

import "github.com/elysian-sdf/elysian/ir"

// frame is one function call's environment: a flat set of named
// Value bindings, including the implicit CONTEXT/COMBINE_CONTEXT argument
// alongside any other parameters and StmtBind locals, plus which of those
// names are legal Write targets.
//
// Every binding lives in the same flat PropertyValueMap rather than a
// nested scope stack: the IR has no block-local scoping (StmtBlock just
// groups statements), so one flat map is a faithful model.
type frame struct {
	bindings *ir.PropertyValueMap
	mutable map[string]bool
	output ir.Value
	done bool
	broke bool
}

func newFrame() *frame {
	return &frame{bindings: ir.NewPropertyValueMap(), mutable: make(map[string]bool)}
}

func (f *frame) bind(prop ir.PropertyIdentifier, v ir.Value, mutable bool) {
	f.bindings.Set(prop, v)
	if mutable {
		f.mutable[prop.Name] = true
	}
}

// read resolves a path against the frame: path[0] names a binding, the
// rest descend struct members.
func (f *frame) read(path []ir.PropertyIdentifier) (ir.Value, error) {
	if len(path) == 0 {
		return nil, missingField(path)
	}
	v, ok := f.bindings.Get(path[0])
	if !ok {
		return nil, missingField(path)
	}
	for _, p := range path[1:] {
		s, ok := v.(ir.StructValue)
		if !ok {
			return nil, typeMismatch("read " + p.Name)
		}
		v, ok = s.Members.Get(p)
		if !ok {
			return nil, missingField(path)
		}
	}
	return v, nil
}

// write resolves path[0]'s mutability, then rebuilds the struct chain
// along path[1:] with value spliced in at the leaf (Values are immutable,
// so a write is a copy-on-write rebuild of the root binding).
func (f *frame) write(path []ir.PropertyIdentifier, value ir.Value) error {
	if len(path) == 0 {
		return missingField(path)
	}
	if !f.mutable[path[0].Name] {
		return immutable(path)
	}
	root, ok := f.bindings.Get(path[0])
	if !ok {
		return missingField(path)
	}
	updated, err := setPath(root, path[1:], value)
	if err != nil {
		return err
	}
	f.bindings.Set(path[0], updated)
	return nil
}

func setPath(root ir.Value, path []ir.PropertyIdentifier, value ir.Value) (ir.Value, error) {
	if len(path) == 0 {
		return value, nil
	}
	s, ok := root.(ir.StructValue)
	if !ok {
		return nil, typeMismatch("write " + path[0].Name)
	}
	child, ok := s.Members.Get(path[0])
	if !ok {
		return nil, missingField(path)
	}
	newChild, err := setPath(child, path[1:], value)
	if err != nil {
		return nil, err
	}
	members := s.Members.Clone()
	members.Set(path[0], newChild)
	return ir.StructValue{ID: s.ID, Members: members}, nil
}
