package shape

import "github.com/elysian-sdf/elysian/ir"

// Voronoi computes, for a fixed compile-time set of site positions, the
// distance from CONTEXT.position to the nearest site and that site's
// index, writing DISTANCE and CELL_ID. The site list is unrolled
// into the emitted function body rather than looped at runtime; neighbor
// comparison is exact, not approximate.
type Voronoi struct {
	Dim int
	Points [][]float64 // each of length Dim
}

func NewVoronoi2D(points [][]float64) *Voronoi { return &Voronoi{Dim: 2, Points: points} }
func NewVoronoi3D(points [][]float64) *Voronoi { return &Voronoi{Dim: 3, Points: points} }

func (v *Voronoi) Hash() uint64 {
	parts := []uint64{hashString("Voronoi"), uint64(v.Dim)}
	for _, p := range v.Points {
		parts = append(parts, hashFloats(p...))
	}
	return hashCombine(parts...)
}

func (v *Voronoi) Domains() ir.SpecializationData {
	return ir.NewSpecializationData(ir.PropDistance, ir.PropCellID)
}

func (v *Voronoi) EntryPoint() ir.FunctionIdentifier { return entryIdentifier("voronoi", v.Hash()) }
func (v *Voronoi) Arguments(input ir.Expr) []ir.Expr { return []ir.Expr{input} }
func (v *Voronoi) Structs() []ir.StructDefinition { return nil }

func (v *Voronoi) Functions(spec ir.SpecializationData, entry ir.FunctionIdentifier) []ir.FunctionDefinition {
	if len(v.Points) == 0 {
		panic("shape: Voronoi with no sites")
	}
	if !hasAny(spec, ir.PropDistance, ir.PropCellID) {
		return []ir.FunctionDefinition{entryFunction(entry, ir.Block{output()})}
	}

	position, _ := dimProps(v.Dim)
	pos := Wrap(ctx(position))

	siteDist := func(i int) ir.Expr {
		return pos.Sub(Wrap(vectorLit(v.Dim, v.Points[i]))).Length().Expr
	}

	bestDist := ir.NewLocalProperty("voronoi_best_dist")
	bestID := ir.NewLocalProperty("voronoi_best_id")

	var body ir.Block
	body = append(body, ir.StmtBind{Prop: bestDist, Expr: siteDist(0)})
	body = append(body, ir.StmtBind{Prop: bestID, Expr: ir.Lit(ir.UInt(0))})

	for i := 1; i < len(v.Points); i++ {
		distLocal := ir.NewLocalProperty("voronoi_dist")
		body = append(body, ir.StmtBind{Prop: distLocal, Expr: siteDist(i)})
		body = append(body, ir.StmtIf{
			Cond: ir.Lt(ir.Read(distLocal), ir.Read(bestDist)),
			Then: ir.Block{
				ir.StmtBind{Prop: bestDist, Expr: ir.Read(distLocal)},
				ir.StmtBind{Prop: bestID, Expr: ir.Lit(ir.UInt(uint64(i)))},
			},
		})
	}

	if spec.Has(ir.PropDistance) {
		body = append(body, writeCtx(ir.Read(bestDist), ir.PropDistance))
	}
	if spec.Has(ir.PropCellID) {
		body = append(body, writeCtx(ir.Read(bestID), ir.PropCellID))
	}
	body = append(body, output())

	return []ir.FunctionDefinition{entryFunction(entry, body)}
}
