package mesh

// edgeCrossingDepth is the fixed binary-search depth used to localize a
// zero-crossing along a cell edge.
const edgeCrossingDepth = 10

// edgeCrossing finds the zero-crossing of DISTANCE between a (inside,
// distance <= 0) and b (outside), assuming a monotonic sign change.
func edgeCrossing(f Field, a, b []float64, da, db float64) ([]float64, error) {
	if da > db {
		a, b = b, a
		da, db = db, da
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < edgeCrossingDepth; i++ {
		mid := (lo + hi) / 2
		p := lerp(a, b, mid)
		d, err := f.Distance(p)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lerp(a, b, (lo+hi)/2), nil
}

func lerp(a, b []float64, t float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// square2DEdgePairs tabulates the non-ambiguous 2D marching-squares cases:
// which pairs of the 4 cell edges (0=bottom v0v1, 1=right v1v2, 2=top
// v2v3, 3=left v3v0) each segment connects. Masks 5 and 10 are the
// diagonal saddle cases, disambiguated separately by center sampling.
var square2DEdgePairs = map[int][][2]int{
	0: {},
	1: {{3, 0}},
	2: {{0, 1}},
	3: {{3, 1}},
	4: {{1, 2}},
	6: {{0, 2}},
	7: {{2, 3}},
	8: {{2, 3}},
	9: {{0, 2}},
	11: {{1, 2}},
	12: {{3, 1}},
	13: {{0, 1}},
	14: {{3, 0}},
	15: {},
}

// saddleSeparate/saddleConnected give the two non-crossing edge pairings
// for the ambiguous masks 5 (v0,v2 inside) and 10 (v1,v3 inside):
// saddleSeparate cuts off corners v0 and v2, saddleConnected cuts off v1
// and v3. An inside center keeps the inside diagonal joined, so it picks
// saddleConnected for mask 5 and saddleSeparate for mask 10.
var saddleSeparate = [][2]int{{3, 0}, {1, 2}}
var saddleConnected = [][2]int{{0, 1}, {2, 3}}

// March2D extracts the 0, 1 or 2 line segments a square cell's DISTANCE
// zero-crossing produces.
func March2D(b Bounds, f Field) ([][2][]float64, error) {
	v0, v1, v2, v3 := b.Corner(0), b.Corner(1), b.Corner(3), b.Corner(2)
	verts := [4][]float64{v0, v1, v2, v3}
	var s [4]float64
	for i, v := range verts {
		d, err := f.Distance(v)
		if err != nil {
			return nil, err
		}
		s[i] = d
	}

	mask := 0
	for i := 0; i < 4; i++ {
		if s[i] <= 0 {
			mask |= 1 << uint(i)
		}
	}

	edgePairs, ok := square2DEdgePairs[mask]
	if !ok {
		center := b.Center()
		cd, err := f.Distance(center)
		if err != nil {
			return nil, err
		}
		cutV1V3 := cd <= 0
		if mask == 10 {
			cutV1V3 = !cutV1V3
		}
		if cutV1V3 {
			edgePairs = saddleConnected
		} else {
			edgePairs = saddleSeparate
		}
	}

	edgeEndpoints := [4][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	point := func(edge int) ([]float64, error) {
		a, bEnd := edgeEndpoints[edge][0], edgeEndpoints[edge][1]
		return edgeCrossing(f, verts[a], verts[bEnd], s[a], s[bEnd])
	}

	var segments [][2][]float64
	for _, pair := range edgePairs {
		p0, err := point(pair[0])
		if err != nil {
			return nil, err
		}
		p1, err := point(pair[1])
		if err != nil {
			return nil, err
		}
		segments = append(segments, [2][]float64{p0, p1})
	}
	return segments, nil
}
