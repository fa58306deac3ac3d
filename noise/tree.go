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

// Evaluator signatures, one per dimensionality. An evaluator computes one batch of
// samples for node n and reaches its children through t by index.
type (
	evalFunc1D func(t *tree, n *node, x hwy.Vec[float32]) hwy.Vec[float32]
	evalFunc2D func(t *tree, n *node, x, y hwy.Vec[float32]) hwy.Vec[float32]
	evalFunc3D func(t *tree, n *node, x, y, z hwy.Vec[float32]) hwy.Vec[float32]
)

// node is one entry of a compiled tree. Child indices always point past the node
// itself.
type node struct {
	params
	children [3]int

	fn1D evalFunc1D
	fn2D evalFunc2D
	fn3D evalFunc3D
}

// tree is the flattened, read-only form of an Expr. The root is nodes[0].
//
// A tree holds no mutable state once built and may be evaluated from several
// goroutines at once. Every batch it evaluates holds lanes samples.
type tree struct {
	nodes []node
	lanes int
}

// compile flattens e depth-first in pre-order. Nodes with a single child point at
// the slot directly after them; nodes with two or three children are reserved
// first and back-patched once every child has been laid out.
func compile(e Expr, lanes int) *tree {
	t := &tree{nodes: make([]node, 0, 8), lanes: lanes}
	t.add(e.root())
	return t
}

func (t *tree) add(n *exprNode) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, newNode(n.params))

	switch len(n.children) {
	case 0:
	case 1:
		t.nodes[idx].children[0] = len(t.nodes)
		t.add(n.children[0])
	default:
		var children [3]int
		for i, c := range n.children {
			children[i] = t.add(c)
		}
		t.nodes[idx].children = children
	}
	return idx
}

func (t *tree) eval1D(i int, x hwy.Vec[float32]) hwy.Vec[float32] {
	n := &t.nodes[i]
	return n.fn1D(t, n, x)
}

func (t *tree) eval2D(i int, x, y hwy.Vec[float32]) hwy.Vec[float32] {
	n := &t.nodes[i]
	return n.fn2D(t, n, x, y)
}

func (t *tree) eval3D(i int, x, y, z hwy.Vec[float32]) hwy.Vec[float32] {
	n := &t.nodes[i]
	return n.fn3D(t, n, x, y, z)
}

// newNode selects the evaluators for p.op. This is the only place the op tag is
// inspected; evaluation itself never switches on it.
func newNode(p params) node {
	n := node{params: p}
	switch p.op {
	case opSimplex:
		n.fn1D, n.fn2D, n.fn3D = simplex1D, simplex2D, simplex3D
	case opPerlin:
		n.fn1D, n.fn2D, n.fn3D = perlin1D, perlin2D, perlin3D
	case opFbm:
		n.fn1D, n.fn2D, n.fn3D = fbm1D, fbm2D, fbm3D
	case opAbs:
		n.fn1D, n.fn2D, n.fn3D = abs1D, abs2D, abs3D
	case opAddNoise:
		n.fn1D, n.fn2D, n.fn3D = add1D, add2D, add3D
	case opAddValue:
		n.fn1D, n.fn2D, n.fn3D = addValue1D, addValue2D, addValue3D
	case opClamp:
		n.fn1D, n.fn2D, n.fn3D = clamp1D, clamp2D, clamp3D
	case opLerp:
		n.fn1D, n.fn2D, n.fn3D = lerp1D, lerp2D, lerp3D
	case opMax:
		n.fn1D, n.fn2D, n.fn3D = max1D, max2D, max3D
	case opMin:
		n.fn1D, n.fn2D, n.fn3D = min1D, min2D, min3D
	case opMulValue:
		n.fn1D, n.fn2D, n.fn3D = mulValue1D, mulValue2D, mulValue3D
	case opRange:
		n.fn1D, n.fn2D, n.fn3D = range1D, range2D, range3D
	case opSquare:
		n.fn1D, n.fn2D, n.fn3D = square1D, square2D, square3D
	default:
		n.fn1D, n.fn2D, n.fn3D = constant1D, constant2D, constant3D
	}
	return n
}
