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

// Selection nodes. Children are laid out as selector, low, high.

// rangeBlend picks low where s <= lo, high where s >= hi and blends linearly in
// between. The low test wins when both hold; NaN selectors fail both tests and
// blend to NaN.
func rangeBlend(s, low, high hwy.Vec[float32], lo, hi float32) hwy.Vec[float32] {
	n := s.NumLanes()
	vlo, vhi := splat(n, lo), splat(n, hi)

	t := hwy.Div(hwy.Sub(s, vlo), splat(n, hi-lo))
	out := hwy.IfThenElse(hwy.GreaterEqual(s, vhi), high, lerp(low, high, t))
	return hwy.IfThenElse(hwy.LessEqual(s, vlo), low, out)
}

func lerp1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	s := t.eval1D(n.children[0], x)
	return lerp(t.eval1D(n.children[1], x), t.eval1D(n.children[2], x), s)
}

func lerp2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	s := t.eval2D(n.children[0], x, y)
	return lerp(t.eval2D(n.children[1], x, y), t.eval2D(n.children[2], x, y), s)
}

func lerp3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	s := t.eval3D(n.children[0], x, y, z)
	return lerp(t.eval3D(n.children[1], x, y, z), t.eval3D(n.children[2], x, y, z), s)
}

func range1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return rangeBlend(
		t.eval1D(n.children[0], x),
		t.eval1D(n.children[1], x),
		t.eval1D(n.children[2], x),
		n.lo, n.hi)
}

func range2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return rangeBlend(
		t.eval2D(n.children[0], x, y),
		t.eval2D(n.children[1], x, y),
		t.eval2D(n.children[2], x, y),
		n.lo, n.hi)
}

func range3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return rangeBlend(
		t.eval3D(n.children[0], x, y, z),
		t.eval3D(n.children[1], x, y, z),
		t.eval3D(n.children[2], x, y, z),
		n.lo, n.hi)
}
