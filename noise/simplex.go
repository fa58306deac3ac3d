// Copyright 2025 go-noise Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package noise

import "github.com/ajroetker/go-noise/hwy"

const (
	// simplex1Scale maps the 1D sum into [-1, 1].
	//
	// With worst-case gradients of magnitude 7 the sum is bounded by the maximum of
	//
	//	|x0 * (1 - x0^2)^4| + |(x0 - 1) * (1 - (x0 - 1)^2)^4|
	//
	// over 0 <= x0 < 1, which is 81/256 at x0 = 0.5.
	simplex1Scale = 256.0 / (81.0 * 7.0)
	simplex2Scale = 38.283687591552734375
	simplex3Scale = 32.69428253173828125

	sqrt3 = 1.7320508075688772935274463415059
	f2    = 0.5 * (sqrt3 - 1.0)
	g2    = (3.0 - sqrt3) / 6.0
	f3    = 1.0 / 3.0
	g3    = 1.0 / 2.0
)

func simplex1D(_ *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return simplex1(n.seed, mulValue(x, n.freq[0]))
}

func simplex2D(_ *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return simplex2(n.seed, mulValue(x, n.freq[0]), mulValue(y, n.freq[2]))
}

func simplex3D(_ *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return simplex3(n.seed, mulValue(x, n.freq[0]), mulValue(y, n.freq[1]), mulValue(z, n.freq[2]))
}

// simplex1 samples 1-dimensional simplex noise. The result lies in [-1, 1].
func simplex1(seed int32, x hwy.Vec[float32]) hwy.Vec[float32] {
	n := x.NumLanes()

	// Gradients are selected from the whole part of x through the permutation
	// table, offset by a byte derived from the seed. The remaining seed bits pick
	// the gradient sign and magnitude.
	s := mix(splatInt(n, seed))
	off := hwy.And(s, splatInt(n, 0xff))
	gs := hwy.ShiftRight(s, 8)

	ips, i0 := lattice(x)
	i0 = hwy.And(i0, splatInt(n, 0xff))
	gi0 := hwy.GatherIndex(perm[:], hwy.Add(hwy.GatherIndex(perm[:], i0), off))
	gi1 := hwy.GatherIndex(perm[:], hwy.Add(hwy.GatherIndex(perm[:], hwy.Add(i0, splatInt(n, 1))), off))

	// the fractional part of x, i.e. the distance to the left gradient node. 0 <= x0 < 1.
	x0 := hwy.Sub(x, ips)
	// signed distance to the right gradient node
	x1 := hwy.Sub(x0, splat(n, 1))

	n0 := hwy.Mul(hwy.Mul(falloff(1, x0), grad1(hwy.Xor(gs, gi0))), x0)
	n1 := hwy.Mul(hwy.Mul(falloff(1, x1), grad1(hwy.Xor(gs, gi1))), x1)

	return hwy.Mul(hwy.Add(n0, n1), splat(n, simplex1Scale))
}

// simplex2 samples 2-dimensional simplex noise. The result lies in [-1, 1].
func simplex2(seed int32, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	n := x.NumLanes()
	one := splat(n, 1)

	f := hwy.Mul(splat(n, f2), hwy.Add(x, y))
	x0, xl := lattice(hwy.Add(x, f))
	y0, yl := lattice(hwy.Add(y, f))

	i := hwy.Mul(xl, splatInt(n, xPrime))
	j := hwy.Mul(yl, splatInt(n, yPrime))
	iNext := hwy.Add(i, splatInt(n, xPrime))
	jNext := hwy.Add(j, splatInt(n, yPrime))

	g := hwy.Mul(splat(n, g2), hwy.Add(x0, y0))
	x0 = hwy.Sub(x, hwy.Sub(x0, g))
	y0 = hwy.Sub(y, hwy.Sub(y0, g))

	upper := hwy.GreaterThan(x0, y0)

	x1 := hwy.Add(hwy.IfThenElse(upper, hwy.Sub(x0, one), x0), splat(n, g2))
	y1 := hwy.Add(hwy.IfThenElse(upper, y0, hwy.Sub(y0, one)), splat(n, g2))

	x2 := hwy.Add(x0, splat(n, g2*2-1))
	y2 := hwy.Add(y0, splat(n, g2*2-1))

	t0 := falloff(0.5, x0, y0)
	t1 := falloff(0.5, x1, y1)
	t2 := falloff(0.5, x2, y2)

	up := hwy.RebindMask[int32](upper)
	n0 := grad2(hash2(seed, i, j), x0, y0)
	n1 := grad2(hash2(seed, hwy.IfThenElse(up, iNext, i), hwy.IfThenElse(up, j, jNext)), x1, y1)
	n2 := grad2(hash2(seed, iNext, jNext), x2, y2)

	sum := hwy.Add(hwy.Add(hwy.Mul(n0, t0), hwy.Mul(n1, t1)), hwy.Mul(n2, t2))
	return hwy.Mul(splat(n, simplex2Scale), sum)
}

// simplex3 samples 3-dimensional simplex noise. The result lies in [-1, 1].
func simplex3(seed int32, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	n := x.NumLanes()
	one := splat(n, 1)

	s := hwy.Mul(splat(n, f3), hwy.Add(hwy.Add(x, y), z))
	x = hwy.Add(x, s)
	y = hwy.Add(y, s)
	z = hwy.Add(z, s)

	x0, xl := lattice(x)
	y0, yl := lattice(y)
	z0, zl := lattice(z)
	xi := hwy.Sub(x, x0)
	yi := hwy.Sub(y, y0)
	zi := hwy.Sub(z, z0)

	i := hwy.Mul(xl, splatInt(n, xPrime))
	j := hwy.Mul(yl, splatInt(n, yPrime))
	k := hwy.Mul(zl, splatInt(n, zPrime))
	iNext := hwy.Add(i, splatInt(n, xPrime))
	jNext := hwy.Add(j, splatInt(n, yPrime))
	kNext := hwy.Add(k, splatInt(n, zPrime))

	xGEy := hwy.GreaterEqual(xi, yi)
	yGEz := hwy.GreaterEqual(yi, zi)
	xGEz := hwy.GreaterEqual(xi, zi)

	g := hwy.Mul(splat(n, g3), hwy.Add(hwy.Add(xi, yi), zi))
	x0 = hwy.Sub(xi, g)
	y0 = hwy.Sub(yi, g)
	z0 = hwy.Sub(zi, g)

	// Offsets of the second and third simplex corners. k2 is inverted.
	i1 := hwy.MaskAnd(xGEy, xGEz)
	j1 := hwy.MaskAnd(yGEz, hwy.MaskNot(xGEy))
	k1 := hwy.MaskAnd(hwy.MaskNot(xGEz), hwy.MaskNot(yGEz))

	i2 := hwy.MaskOr(xGEy, xGEz)
	j2 := hwy.MaskOr(hwy.MaskNot(xGEy), yGEz)
	k2 := hwy.MaskAnd(xGEz, yGEz)

	step := func(m hwy.Mask[float32], v hwy.Vec[float32]) hwy.Vec[float32] {
		return hwy.IfThenElse(m, hwy.Sub(v, one), v)
	}
	x1 := hwy.Add(step(i1, x0), splat(n, g3))
	y1 := hwy.Add(step(j1, y0), splat(n, g3))
	z1 := hwy.Add(step(k1, z0), splat(n, g3))
	x2 := hwy.Add(step(i2, x0), splat(n, g3*2))
	y2 := hwy.Add(step(j2, y0), splat(n, g3*2))
	z2 := hwy.Add(hwy.IfThenElse(k2, z0, hwy.Sub(z0, one)), splat(n, g3*2))
	x3 := hwy.Add(x0, splat(n, g3*3-1))
	y3 := hwy.Add(y0, splat(n, g3*3-1))
	z3 := hwy.Add(z0, splat(n, g3*3-1))

	t0 := falloff(0.6, x0, y0, z0)
	t1 := falloff(0.6, x1, y1, z1)
	t2 := falloff(0.6, x2, y2, z2)
	t3 := falloff(0.6, x3, y3, z3)

	pick := func(m hwy.Mask[float32], next, cur hwy.Vec[int32]) hwy.Vec[int32] {
		return hwy.IfThenElse(hwy.RebindMask[int32](m), next, cur)
	}
	n0 := grad3Dot(hash3(seed, i, j, k), x0, y0, z0)
	n1 := grad3Dot(hash3(seed, pick(i1, iNext, i), pick(j1, jNext, j), pick(k1, kNext, k)), x1, y1, z1)
	n2 := grad3Dot(hash3(seed, pick(i2, iNext, i), pick(j2, jNext, j), pick(k2, k, kNext)), x2, y2, z2)
	n3 := grad3Dot(hash3(seed, iNext, jNext, kNext), x3, y3, z3)

	sum := hwy.Add(hwy.Add(hwy.Add(hwy.Mul(n0, t0), hwy.Mul(n1, t1)), hwy.Mul(n2, t2)), hwy.Mul(n3, t3))
	return hwy.Mul(splat(n, simplex3Scale), sum)
}
