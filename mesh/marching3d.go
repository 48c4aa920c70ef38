package mesh

import "math"

// tet is one of the 6 tetrahedra a cube decomposes into when split along
// its main diagonal (corner 0 to corner 7, in Bounds.Corner's
// lexicographic order). Splitting into tetrahedra sidesteps a
// hand-transcribed 256-row cube topology table in favor of a much smaller,
// independently checkable 16-row one; each tetrahedron still contributes
// at most 2 triangles, so a cell can emit up to 12 rather than the
// textbook 4, trading triangle count for transcription safety.
var cubeTets = [6][4]int{
	{0, 1, 3, 7},
	{0, 1, 5, 7},
	{0, 4, 5, 7},
	{0, 4, 6, 7},
	{0, 2, 6, 7},
	{0, 2, 3, 7},
}

// tetEdges enumerates a tetrahedron's 6 edges as corner-index pairs.
var tetEdges = [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

// tetTriangles tabulates, per corner-inside mask (bit i set when corner i
// has DISTANCE <= 0), the triangle(s) as indices into tetEdges. Masks 0 and
// 15 (no crossing) are absent. Single-corner and complementary
// three-corner masks share an edge triple; two-and-two masks share a
// quad split into 2 triangles.
var tetTriangles = map[int][][3]int{
	1: {{0, 1, 2}},
	2: {{0, 3, 4}},
	4: {{1, 3, 5}},
	8: {{2, 4, 5}},
	14: {{0, 1, 2}},
	13: {{0, 3, 4}},
	11: {{1, 3, 5}},
	7: {{2, 4, 5}},
	3: {{1, 4, 3}, {1, 2, 4}},
	12: {{1, 4, 3}, {1, 2, 4}},
	5: {{0, 5, 3}, {0, 2, 5}},
	10: {{0, 5, 3}, {0, 2, 5}},
	6: {{0, 5, 4}, {0, 1, 5}},
	9: {{0, 5, 4}, {0, 1, 5}},
}

// March3D extracts the triangles a cube cell's DISTANCE zero-crossing
// produces, via a 6-tetrahedron decomposition, oriented so each
// triangle's normal points toward positive DISTANCE.
func March3D(b Bounds, f Field) ([][3][]float64, error) {
	corners := make([][]float64, 8)
	samples := make([]float64, 8)
	for i := 0; i < 8; i++ {
		corners[i] = b.Corner(i)
		d, err := f.Distance(corners[i])
		if err != nil {
			return nil, err
		}
		samples[i] = d
	}

	var triangles [][3][]float64
	for _, tet := range cubeTets {
		tris, err := marchTet(f, corners, samples, tet)
		if err != nil {
			return nil, err
		}
		triangles = append(triangles, tris...)
	}
	return triangles, nil
}

func marchTet(f Field, corners [][]float64, samples []float64, tet [4]int) ([][3][]float64, error) {
	var tv [4][]float64
	var ts [4]float64
	for i, idx := range tet {
		tv[i] = corners[idx]
		ts[i] = samples[idx]
	}

	mask := 0
	for i := 0; i < 4; i++ {
		if ts[i] <= 0 {
			mask |= 1 << uint(i)
		}
	}

	edgeRows, ok := tetTriangles[mask]
	if !ok {
		return nil, nil
	}

	point := func(edge int) ([]float64, error) {
		a, b := tetEdges[edge][0], tetEdges[edge][1]
		return edgeCrossing(f, tv[a], tv[b], ts[a], ts[b])
	}

	var out [][3][]float64
	for _, row := range edgeRows {
		p0, err := point(row[0])
		if err != nil {
			return nil, err
		}
		p1, err := point(row[1])
		if err != nil {
			return nil, err
		}
		p2, err := point(row[2])
		if err != nil {
			return nil, err
		}
		p0, p1, p2, err = orientOutward(f, p0, p1, p2)
		if err != nil {
			return nil, err
		}
		out = append(out, [3][]float64{p0, p1, p2})
	}
	return out, nil
}

// orientOutward swaps p1 and p2 if needed so that cross(p1-p0, p2-p0)
// points toward increasing DISTANCE, matching "normals point
// outward (toward positive distance)".
func orientOutward(f Field, p0, p1, p2 []float64) ([]float64, []float64, []float64, error) {
	u := sub(p1, p0)
	v := sub(p2, p0)
	n := cross(u, v)
	nl := norm(n)
	if nl == 0 {
		return p0, p1, p2, nil
	}
	for i := range n {
		n[i] /= nl
	}
	centroid := []float64{
		(p0[0] + p1[0] + p2[0]) / 3,
		(p0[1] + p1[1] + p2[1]) / 3,
		(p0[2] + p1[2] + p2[2]) / 3,
	}
	const eps = 1e-4
	probe := []float64{centroid[0] + n[0]*eps, centroid[1] + n[1]*eps, centroid[2] + n[2]*eps}
	d, err := f.Distance(probe)
	if err != nil {
		return nil, nil, nil, err
	}
	if d < 0 {
		return p0, p2, p1, nil
	}
	return p0, p1, p2, nil
}

func sub(a, b []float64) []float64 {
	return []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm(a []float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}
