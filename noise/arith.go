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

// Pointwise operators. Each evaluator fetches its operands from the child nodes and
// hands them to a kernel shared by all three dimensionalities.

func addValue(c hwy.Vec[float32], v float32) hwy.Vec[float32] {
	return hwy.Add(c, splat(c.NumLanes(), v))
}

func mulValue(c hwy.Vec[float32], v float32) hwy.Vec[float32] {
	return hwy.Mul(c, splat(c.NumLanes(), v))
}

func square(c hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Mul(c, c)
}

// clamp bounds c to [lo, hi]. NaN lanes stay NaN.
func clamp(c hwy.Vec[float32], lo, hi float32) hwy.Vec[float32] {
	n := c.NumLanes()
	return hwy.Min(hwy.Max(c, splat(n, lo)), splat(n, hi))
}

func abs1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Abs(t.eval1D(n.children[0], x))
}

func abs2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Abs(t.eval2D(n.children[0], x, y))
}

func abs3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Abs(t.eval3D(n.children[0], x, y, z))
}

func addValue1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return addValue(t.eval1D(n.children[0], x), n.value)
}

func addValue2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return addValue(t.eval2D(n.children[0], x, y), n.value)
}

func addValue3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return addValue(t.eval3D(n.children[0], x, y, z), n.value)
}

func mulValue1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return mulValue(t.eval1D(n.children[0], x), n.value)
}

func mulValue2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return mulValue(t.eval2D(n.children[0], x, y), n.value)
}

func mulValue3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return mulValue(t.eval3D(n.children[0], x, y, z), n.value)
}

func square1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return square(t.eval1D(n.children[0], x))
}

func square2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return square(t.eval2D(n.children[0], x, y))
}

func square3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return square(t.eval3D(n.children[0], x, y, z))
}

func clamp1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return clamp(t.eval1D(n.children[0], x), n.lo, n.hi)
}

func clamp2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return clamp(t.eval2D(n.children[0], x, y), n.lo, n.hi)
}

func clamp3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return clamp(t.eval3D(n.children[0], x, y, z), n.lo, n.hi)
}

func add1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Add(t.eval1D(n.children[0], x), t.eval1D(n.children[1], x))
}

func add2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Add(t.eval2D(n.children[0], x, y), t.eval2D(n.children[1], x, y))
}

func add3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Add(t.eval3D(n.children[0], x, y, z), t.eval3D(n.children[1], x, y, z))
}

func max1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Max(t.eval1D(n.children[0], x), t.eval1D(n.children[1], x))
}

func max2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Max(t.eval2D(n.children[0], x, y), t.eval2D(n.children[1], x, y))
}

func max3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Max(t.eval3D(n.children[0], x, y, z), t.eval3D(n.children[1], x, y, z))
}

func min1D(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Min(t.eval1D(n.children[0], x), t.eval1D(n.children[1], x))
}

func min2D(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Min(t.eval2D(n.children[0], x, y), t.eval2D(n.children[1], x, y))
}

func min3D(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	return hwy.Min(t.eval3D(n.children[0], x, y, z), t.eval3D(n.children[1], x, y, z))
}
