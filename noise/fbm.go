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

// The first octave is taken as is, so a single octave reproduces the child
// exactly. Later octaves scale the coordinates by lacunarity and accumulate their
// contribution weighted by gain with a fused multiply-add.

func fbm1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	if n.octaves <= 0 {
		return splat(t.lanes, 0)
	}
	c := n.children[0]
	sum := t.eval1D(c, x)
	amp := float32(1)
	for range n.octaves - 1 {
		x = mulValue(x, n.lacunarity)
		amp *= n.gain
		sum = hwy.MulAdd(t.eval1D(c, x), splat(t.lanes, amp), sum)
	}
	return mulValue(sum, n.scale)
}

func fbm2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	if n.octaves <= 0 {
		return splat(t.lanes, 0)
	}
	c := n.children[0]
	sum := t.eval2D(c, x, y)
	amp := float32(1)
	for range n.octaves - 1 {
		x = mulValue(x, n.lacunarity)
		y = mulValue(y, n.lacunarity)
		amp *= n.gain
		sum = hwy.MulAdd(t.eval2D(c, x, y), splat(t.lanes, amp), sum)
	}
	return mulValue(sum, n.scale)
}

func fbm3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	if n.octaves <= 0 {
		return splat(t.lanes, 0)
	}
	c := n.children[0]
	sum := t.eval3D(c, x, y, z)
	amp := float32(1)
	for range n.octaves - 1 {
		x = mulValue(x, n.lacunarity)
		y = mulValue(y, n.lacunarity)
		z = mulValue(z, n.lacunarity)
		amp *= n.gain
		sum = hwy.MulAdd(t.eval3D(c, x, y, z), splat(t.lanes, amp), sum)
	}
	return mulValue(sum, n.scale)
}
