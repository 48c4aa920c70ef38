package shape

import "github.com/elysian-sdf/elysian/ir"

// SelectCase is one branch of a Select: shape is called when cond holds.
// Label is a stable string used only for hashing (cond itself is a closure
// and can't be hashed directly).
type SelectCase struct {
	Label string
	Cond func() ir.Expr
	Shape Shape
}

// Select emits `if cond1 then call s1 else if cond2... else call default`
//. Conditions commonly reference a property populated by a
// preceding Prepass, e.g. REPEAT_ID_2D or CELL_ID.
type Select struct {
	Default Shape
	Cases []SelectCase
}

// NewSelect builds a Select. All branches (default and every case) are
// expected to populate a consistent property set; this is the author's
// responsibility; the interpreter and mesher both assume it.
func NewSelect(def Shape, cases...SelectCase) *Select {
	return &Select{Default: def, Cases: cases}
}

func (s *Select) Hash() uint64 {
	parts := []uint64{hashString("Select"), s.Default.Hash()}
	for _, c := range s.Cases {
		parts = append(parts, hashString(c.Label), c.Shape.Hash())
	}
	return hashCombine(parts...)
}

func (s *Select) Domains() ir.SpecializationData {
	d := s.Default.Domains()
	for _, c := range s.Cases {
		d = d.Union(c.Shape.Domains())
	}
	return d
}

func (s *Select) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("select", s.Hash()) }
func (s *Select) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (s *Select) Structs() []ir.StructDefinition { return nil }

func (s *Select) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	defaultModule := mustModule(s.Default, spec)
	caseModules := make([]ir.Module, len(s.Cases))
	for i, c := range s.Cases {
		caseModules[i] = mustModule(c.Shape, spec)
	}

	var funcs []ir.FunctionDefinition
	funcs = append(funcs, defaultModule.FunctionDefinitions...)
	for _, m := range caseModules {
		funcs = append(funcs, m.FunctionDefinitions...)
	}

	var buildChain func(i int) ir.Block
	buildChain = func(i int) ir.Block {
		if i >= len(s.Cases) {
			return ir.Block{writeCtx(defaultModule.Call(ctx())), output()}
		}
		return ir.Block{
			ir.StmtIf{
				Cond: s.Cases[i].Cond(),
				Then: ir.Block{writeCtx(caseModules[i].Call(ctx())), output()},
				Else: buildChain(i + 1),
			},
		}
	}

	funcs = append(funcs, entryFunction(entry, buildChain(0)))
	return funcs
}
