package shape

// TrilistToAdjacency expands a triangle list into its directed edge
// pairs. For each triangle (A, B, C) the pairs (A,B), (B,C) and (C,A)
// are emitted, grouped so that rows [0, n) are the AB pairs, rows
// [n, 2n) the BC pairs and rows [2n, 3n) the CA wrap-around pairs.
// Edge queries rely on this block layout to recover per-triangle
// quantities by slicing instead of walking triangles one at a time.
func TrilistToAdjacency(trilist [][3]int32) [][2]int32 {
	n := len(trilist)
	adj := make([][2]int32, 0, 3*n)
	for _, t := range trilist {
		adj = append(adj, [2]int32{t[0], t[1]})
	}
	for _, t := range trilist {
		adj = append(adj, [2]int32{t[1], t[2]})
	}
	for _, t := range trilist {
		adj = append(adj, [2]int32{t[2], t[0]})
	}
	return adj
}

// maskTrilist returns the triangles whose three corners all survive the
// mask.
func maskTrilist(trilist [][3]int32, mask []bool) [][3]int32 {
	var kept [][3]int32
	for _, t := range trilist {
		if mask[t[0]] && mask[t[1]] && mask[t[2]] {
			kept = append(kept, t)
		}
	}
	return kept
}

// renumberTrilist rewrites corner indices into the contiguous index
// space produced by dropping every masked-out point. Every index in
// trilist must belong to a masked-in point.
func renumberTrilist(trilist [][3]int32, mask []bool) [][3]int32 {
	remap := make([]int32, len(mask))
	next := int32(0)
	for i, keep := range mask {
		if keep {
			remap[i] = next
			next++
		}
	}
	out := make([][3]int32, len(trilist))
	for i, t := range trilist {
		out[i] = [3]int32{remap[t[0]], remap[t[1]], remap[t[2]]}
	}
	return out
}
