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
	// perlin1Scale maps the 1D sum into [-1, 1]. The largest gradient is 7 and the
	// interpolated value peaks at half a cell.
	perlin1Scale = 2.0 / 7.0
	perlin2Scale = 0.579106986522674560546875
	perlin3Scale = 0.964921414852142333984375
)

func perlin1D(_ *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return perlin1(n.seed, mulValue(x, n.freq[0]))
}

func perlin2D(_ *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return perlin2(n.seed, mulValue(x, n.freq[0]), mulValue(y, n.freq[2]))
}

func perlin3D(_ *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return perlin3(n.seed, mulValue(x, n.freq[0]), mulValue(y, n.freq[1]), mulValue(z, n.freq[2]))
}

// cell splits x into the lattice cell's hashed corner coordinates and the
// signed distances to both corners.
func cell(x hwy.Vec[float32], prime int32) (c0, c1 hwy.Vec[int32], d0, d1 hwy.Vec[float32]) {
	n := x.NumLanes()
	xs, xl := lattice(x)
	c0 = hwy.Mul(xl, splatInt(n, prime))
	c1 = hwy.Add(c0, splatInt(n, prime))
	d0 = hwy.Sub(x, xs)
	d1 = hwy.Sub(d0, splat(n, 1))
	return c0, c1, d0, d1
}

// perlin1 samples 1-dimensional gradient noise. The result lies in [-1, 1].
func perlin1(seed int32, x hwy.Vec[float32]) hwy.Vec[float32] {
	x0, x1, xf0, xf1 := cell(x, xPrime)

	v := lerp(
		hwy.Mul(grad1(hash1(seed, x0)), xf0),
		hwy.Mul(grad1(hash1(seed, x1)), xf1),
		quintic(xf0),
	)
	return hwy.Mul(splat(x.NumLanes(), perlin1Scale), v)
}

// perlin2 samples 2-dimensional gradient noise. The result lies in [-1, 1].
func perlin2(seed int32, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	x0, x1, xf0, xf1 := cell(x, xPrime)
	y0, y1, yf0, yf1 := cell(y, yPrime)

	u := quintic(xf0)
	v := quintic(yf0)

	r := lerp(
		lerp(grad2(hash2(seed, x0, y0), xf0, yf0), grad2(hash2(seed, x1, y0), xf1, yf0), u),
		lerp(grad2(hash2(seed, x0, y1), xf0, yf1), grad2(hash2(seed, x1, y1), xf1, yf1), u),
		v,
	)
	return hwy.Mul(splat(x.NumLanes(), perlin2Scale), r)
}

// perlin3 samples 3-dimensional gradient noise. The result lies in [-1, 1].
func perlin3(seed int32, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	x0, x1, xf0, xf1 := cell(x, xPrime)
	y0, y1, yf0, yf1 := cell(y, yPrime)
	z0, z1, zf0, zf1 := cell(z, zPrime)

	u := quintic(xf0)
	v := quintic(yf0)
	w := quintic(zf0)

	near := lerp(
		lerp(grad3Dot(hash3(seed, x0, y0, z0), xf0, yf0, zf0), grad3Dot(hash3(seed, x1, y0, z0), xf1, yf0, zf0), u),
		lerp(grad3Dot(hash3(seed, x0, y1, z0), xf0, yf1, zf0), grad3Dot(hash3(seed, x1, y1, z0), xf1, yf1, zf0), u),
		v,
	)
	far := lerp(
		lerp(grad3Dot(hash3(seed, x0, y0, z1), xf0, yf0, zf1), grad3Dot(hash3(seed, x1, y0, z1), xf1, yf0, zf1), u),
		lerp(grad3Dot(hash3(seed, x0, y1, z1), xf0, yf1, zf1), grad3Dot(hash3(seed, x1, y1, z1), xf1, yf1, zf1), u),
		v,
	)
	return hwy.Mul(splat(x.NumLanes(), perlin3Scale), lerp(near, far, w))
}
