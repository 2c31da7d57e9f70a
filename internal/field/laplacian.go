package field

// LaplacianRange writes the periodic second-difference Laplacian of phi into
// dst[start:end]. Each axis contributes (phi[k+1] - 2phi[k] + phi[k-1]) / dx².
func LaplacianRange(g *Grid, phi, dst Field, start, end int) {
	for k := start; k < end; k++ {
		dst[k] = 0
	}
	for axis := 0; axis < g.Dim(); axis++ {
		inv := 1 / (g.spacing[axis] * g.spacing[axis])
		n, stride := g.shape[axis], g.strides[axis]
		wrap := (n - 1) * stride
		for k := start; k < end; k++ {
			c := (k / stride) % n
			fwd, back := k+stride, k-stride
			if c == n-1 {
				fwd = k - wrap
			}
			if c == 0 {
				back = k + wrap
			}
			dst[k] += (phi[fwd] - 2*phi[k] + phi[back]) * inv
		}
	}
}

// Laplacian returns the periodic discrete Laplacian of phi.
func Laplacian(g *Grid, phi Field) Field {
	dst := make(Field, len(phi))
	LaplacianRange(g, phi, dst, 0, len(phi))
	return dst
}

// Shift returns phi rolled by one point along axis: out[k] = phi[k+1],
// wrapping at the boundary.
func Shift(g *Grid, phi Field, axis int) Field {
	out := make(Field, len(phi))
	for k := range out {
		out[k] = phi[g.Neighbor(k, axis, 1)]
	}
	return out
}
