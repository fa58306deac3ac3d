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

// Lattice hashing primes, one per axis. Lattice coordinates are multiplied by
// these before being mixed with the seed.
const (
	xPrime int32 = 501125321
	yPrime int32 = 1136930381
	zPrime int32 = 1720413743

	hashMul int32 = 0x27d4eb2d
)

// perm is a fixed permutation of [0, 255], repeated so that perm[i+j] is valid for
// any i, j in [0, 255].
var perm = [512]int32{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

func init() {
	copy(perm[256:], perm[:256])
}

func splat(n int, v float32) hwy.Vec[float32] {
	return hwy.SetN(n, v)
}

func splatInt(n int, v int32) hwy.Vec[int32] {
	return hwy.SetN(n, v)
}

// lattice returns floor(x) both as floats and as integer lattice coordinates.
// Out of range values convert in an implementation-defined but deterministic way.
func lattice(x hwy.Vec[float32]) (hwy.Vec[float32], hwy.Vec[int32]) {
	f := hwy.Floor(x)
	return f, hwy.ConvertToInt32(f)
}

// bitSet reports, per lane, whether every bit of b is set in h.
func bitSet(h hwy.Vec[int32], b int32) hwy.Mask[float32] {
	vb := splatInt(h.NumLanes(), b)
	return hwy.RebindMask[float32](hwy.Equal(hwy.And(h, vb), vb))
}

// flipSign xors the sign bit of x with the lowest bit of bits.
func flipSign(x hwy.Vec[float32], bits hwy.Vec[int32]) hwy.Vec[float32] {
	return hwy.AsFloat32(hwy.Xor(hwy.AsInt32(x), hwy.ShiftLeft(bits, 31)))
}

// mix finalizes a hash by multiplying with an odd constant and folding the high
// bits down.
func mix(h hwy.Vec[int32]) hwy.Vec[int32] {
	h = hwy.Mul(h, splatInt(h.NumLanes(), hashMul))
	return hwy.Xor(hwy.ShiftRight(h, 15), h)
}

func hash1(seed int32, i hwy.Vec[int32]) hwy.Vec[int32] {
	return mix(hwy.Xor(splatInt(i.NumLanes(), seed), i))
}

func hash2(seed int32, i, j hwy.Vec[int32]) hwy.Vec[int32] {
	return mix(hwy.Xor(hwy.Xor(splatInt(i.NumLanes(), seed), i), j))
}

func hash3(seed int32, i, j, k hwy.Vec[int32]) hwy.Vec[int32] {
	return mix(hwy.Xor(hwy.Xor(hwy.Xor(splatInt(i.NumLanes(), seed), i), j), k))
}

// grad1 picks a 1D gradient in {-7..-0, 0..7} from the low four bits of h.
func grad1(h hwy.Vec[int32]) hwy.Vec[float32] {
	v := hwy.ConvertToFloat32(hwy.And(h, splatInt(h.NumLanes(), 7)))
	return hwy.IfThenElse(bitSet(h, 8), v, hwy.Neg(v))
}

// grad2 computes the dot product of (x, y) with one of eight gradients:
//
//	( 1+R2, 1 ) ( -1-R2, 1 ) ( 1+R2, -1 ) ( -1-R2, -1 )
//	( 1, 1+R2 ) ( 1, -1-R2 ) ( -1, 1+R2 ) ( -1, -1-R2 )
func grad2(hash hwy.Vec[int32], x, y hwy.Vec[float32]) hwy.Vec[float32] {
	const root2 = 1.4142135623730950488

	x = flipSign(x, hash)
	y = flipSign(y, hwy.ShiftRight(hash, 1))

	swap := bitSet(hash, 4)
	a := hwy.IfThenElse(swap, y, x)
	b := hwy.IfThenElse(swap, x, y)
	return hwy.Add(hwy.Mul(splat(a.NumLanes(), 1+root2), a), b)
}

// grad3Dot picks a gradient towards the midpoint of one of the twelve edges of a
// double-unit cube and returns its dot product with (x, y, z).
func grad3Dot(hash hwy.Vec[int32], x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	n := hash.NumLanes()
	h := hwy.And(hash, splatInt(n, 13))

	// if h < 8 then x, else y
	u := hwy.IfThenElse(hwy.RebindMask[float32](hwy.LessThan(h, splatInt(n, 8))), x, y)

	// if h < 2 then y else if h is 12 then x else z
	v := hwy.IfThenElse(hwy.RebindMask[float32](hwy.Equal(h, splatInt(n, 12))), x, z)
	v = hwy.IfThenElse(hwy.RebindMask[float32](hwy.LessThan(h, splatInt(n, 2))), y, v)

	return hwy.Add(flipSign(u, hash), flipSign(v, hwy.ShiftRight(hash, 1)))
}

// quintic is the 6t^5 - 15t^4 + 10t^3 fade curve.
func quintic(t hwy.Vec[float32]) hwy.Vec[float32] {
	n := t.NumLanes()
	t3 := hwy.Mul(hwy.Mul(t, t), t)
	inner := hwy.Sub(hwy.Mul(t, splat(n, 6)), splat(n, 15))
	return hwy.Mul(t3, hwy.Add(hwy.Mul(t, inner), splat(n, 10)))
}

// lerp returns a + t*(b-a) with a single rounding of the product and sum.
func lerp(a, b, t hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.MulAdd(t, hwy.Sub(b, a), a)
}

// falloff returns max(r - |d|^2, 0)^4, the radial weight of a simplex corner at
// displacement d.
func falloff(r float32, d ...hwy.Vec[float32]) hwy.Vec[float32] {
	n := d[0].NumLanes()
	t := splat(n, r)
	for _, c := range d {
		t = hwy.Sub(t, hwy.Mul(c, c))
	}
	t = hwy.Max(t, splat(n, 0))
	t = hwy.Mul(t, t)
	return hwy.Mul(t, t)
}
