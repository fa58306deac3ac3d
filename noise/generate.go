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

import (
	"math"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/ajroetker/go-noise/hwy"
)

// Grid is a block of generated samples.
//
// Values is laid out with x outermost and y innermost; in 3D the depth (z) axis
// sits between them:
//
//	1D: Values[xi]
//	2D: Values[xi*Height + yi]
//	3D: Values[(xi*Depth + zi)*Height + yi]
//
// A 3D grid therefore stores each vertical column contiguously. Min and Max are
// the extremes of Values; an empty grid reports Min = +Inf and Max = -Inf.
type Grid struct {
	Values   []float32
	Min, Max float32

	Width, Height, Depth int
}

// Len returns the number of samples in the grid.
func (g Grid) Len() int {
	return len(g.Values)
}

// Index2 returns the position of sample (xi, yi) of a 2D grid in Values.
func (g Grid) Index2(xi, yi int) int {
	return xi*g.Height + yi
}

// Index3 returns the position of sample (xi, yi, zi) of a 3D grid in Values.
func (g Grid) Index3(xi, yi, zi int) int {
	return (xi*g.Depth+zi)*g.Height + yi
}

// At1 returns sample xi of a 1D grid.
func (g Grid) At1(xi int) float32 {
	return g.Values[xi]
}

// At2 returns sample (xi, yi) of a 2D grid.
func (g Grid) At2(xi, yi int) float32 {
	return g.Values[g.Index2(xi, yi)]
}

// At3 returns sample (xi, yi, zi) of a 3D grid.
func (g Grid) At3(xi, yi, zi int) float32 {
	return g.Values[g.Index3(xi, yi, zi)]
}

// Column returns the Height samples of a 3D grid at (xi, zi), bottom to top.
// The slice aliases Values.
func (g Grid) Column(xi, zi int) []float32 {
	i := g.Index3(xi, 0, zi)
	return g.Values[i : i+g.Height : i+g.Height]
}

// Runner calls fn on consecutive ranges of [0, n), at most batch indices each,
// possibly concurrently, and returns once every index has been covered.
// *workerpool.Pool satisfies it.
type Runner interface {
	ParallelForAtomicBatched(n, batch int, fn func(start, end int))
}

// Generate1D samples the expression at x, x+1, ..., x+width-1.
func (e Expr) Generate1D(x float32, width int) Grid {
	return generate1D(e, x, width)
}

// Generate2D samples the expression over a width by height grid whose first sample
// is at (x, y). Coordinates step by 1; scale them through the generator frequency.
func (e Expr) Generate2D(x, y float32, width, height int) Grid {
	return generate2D(e, nil, x, y, width, height)
}

// Generate3D samples the expression over a width by height by depth grid whose
// first sample is at (x, y, z).
func (e Expr) Generate3D(x, y, z float32, width, height, depth int) Grid {
	return generate3D(e, nil, x, y, z, width, height, depth)
}

// Generate2DParallel is Generate2D with the x axis split across r. The result is
// identical to Generate2D.
func (e Expr) Generate2DParallel(r Runner, x, y float32, width, height int) Grid {
	return generate2D(e, r, x, y, width, height)
}

// Generate3DParallel is Generate3D with the x axis split across r. The result is
// identical to Generate3D.
func (e Expr) Generate3DParallel(r Runner, x, y, z float32, width, height, depth int) Grid {
	return generate3D(e, r, x, y, z, width, height, depth)
}

// supportedLanes lists the batch widths the engine accepts, narrowest first. They
// match the float32 register widths hwy detects.
var supportedLanes = []int{1, 4, 8, 16}

// engineLanes is the number of samples per batch. It is read once per Generate
// call.
var engineLanes = 1

func init() {
	if n, err := strconv.Atoi(os.Getenv("NOISE_LANES")); err == nil && useLanes(n) {
		return
	}
	if !useLanes(hwy.MaxLanes[float32]()) {
		useLanes(1)
	}
}

// Lanes returns the number of samples evaluated per batch.
func Lanes() int {
	return engineLanes
}

// useLanes switches the engine to batches of n samples. It reports false if n is
// not a supported width.
func useLanes(n int) bool {
	if !slices.Contains(supportedLanes, n) {
		return false
	}
	engineLanes = n
	return true
}

func emptyGrid(width, height, depth int) Grid {
	return Grid{
		Values: []float32{},
		Min:    float32(math.Inf(1)),
		Max:    float32(math.Inf(-1)),
		Width:  max(width, 0),
		Height: max(height, 0),
		Depth:  max(depth, 0),
	}
}

// ramp returns the batch {start+off, start+off+1, ...}.
//
// Each lane is computed from its integer index rather than by repeated addition,
// so lane i holds the same value no matter how wide the batch is.
func ramp(n int, start float32, off int) hwy.Vec[float32] {
	idx := hwy.Add(hwy.IndicesIota[int32](n), splatInt(n, int32(off)))
	return hwy.Add(splat(n, start), hwy.ConvertToFloat32(idx))
}

func generate1D(e Expr, x float32, width int) Grid {
	if width <= 0 {
		return emptyGrid(width, 0, 0)
	}
	t := compile(e, engineLanes)
	g := Grid{Values: make([]float32, width), Width: width}

	acc := newMinMax(t.lanes)
	fillRow(&acc, t.lanes, g.Values, func(off int) hwy.Vec[float32] {
		return t.eval1D(0, ramp(t.lanes, x, off))
	})
	g.Min, g.Max = acc.result()
	return g
}

func generate2D(e Expr, r Runner, x, y float32, width, height int) Grid {
	if width <= 0 || height <= 0 {
		return emptyGrid(width, height, 0)
	}
	t := compile(e, engineLanes)
	g := Grid{Values: make([]float32, width*height), Width: width, Height: height}

	g.Min, g.Max = forColumns(r, t.lanes, width, height, func(acc *minMax, xi int) {
		xs := splat(t.lanes, x+float32(xi))
		col := g.Values[xi*height : (xi+1)*height]
		fillRow(acc, t.lanes, col, func(off int) hwy.Vec[float32] {
			return t.eval2D(0, xs, ramp(t.lanes, y, off))
		})
	})
	return g
}

func generate3D(e Expr, r Runner, x, y, z float32, width, height, depth int) Grid {
	if width <= 0 || height <= 0 || depth <= 0 {
		return emptyGrid(width, height, depth)
	}
	t := compile(e, engineLanes)
	g := Grid{Values: make([]float32, width*height*depth), Width: width, Height: height, Depth: depth}

	g.Min, g.Max = forColumns(r, t.lanes, width, height*depth, func(acc *minMax, xi int) {
		xs := splat(t.lanes, x+float32(xi))
		for zi := range depth {
			zs := splat(t.lanes, z+float32(zi))
			i := (xi*depth + zi) * height
			fillRow(acc, t.lanes, g.Values[i:i+height], func(off int) hwy.Vec[float32] {
				return t.eval3D(0, xs, ramp(t.lanes, y, off), zs)
			})
		}
	})
	return g
}

// fillRow fills dst one batch of n samples at a time, eval receiving the offset of
// the batch within the row. The final partial batch is evaluated at full width and
// only its leading lanes are kept.
func fillRow(acc *minMax, n int, dst []float32, eval func(off int) hwy.Vec[float32]) {
	off := 0
	for ; off+n <= len(dst); off += n {
		v := eval(off)
		hwy.Store(v, dst[off:])
		acc.add(v)
	}
	if off < len(dst) {
		hwy.Store(eval(off), dst[off:])
		acc.addScalars(dst[off:])
	}
}

// claimSamples is roughly how many samples a worker computes per claim when the
// columns are spread across a Runner.
const claimSamples = 4096

// columnsPerClaim groups x columns of colSamples samples each into claims of about
// claimSamples samples. Tall columns are claimed one at a time.
func columnsPerClaim(colSamples int) int {
	return max(claimSamples/max(colSamples, 1), 1)
}

// forColumns calls fn for every xi in [0, width), spreading the work across r
// when it is not nil, and returns the combined extremes. Workers claim groups of
// columns as they free up, so columns of uneven cost still balance.
func forColumns(r Runner, lanes, width, colSamples int, fn func(acc *minMax, xi int)) (float32, float32) {
	if r == nil {
		acc := newMinMax(lanes)
		for xi := range width {
			fn(&acc, xi)
		}
		return acc.result()
	}

	var (
		mu    sync.Mutex
		total = newMinMax(lanes)
	)
	r.ParallelForAtomicBatched(width, columnsPerClaim(colSamples), func(start, end int) {
		acc := newMinMax(lanes)
		for xi := start; xi < end; xi++ {
			fn(&acc, xi)
		}
		mu.Lock()
		total.merge(&acc)
		mu.Unlock()
	})
	return total.result()
}

// minMax tracks running extremes lane-wise and reduces them once at the end.
type minMax struct {
	lo, hi hwy.Vec[float32]
	// extremes of samples folded in one at a time
	slo, shi float32
}

func newMinMax(lanes int) minMax {
	inf := float32(math.Inf(1))
	return minMax{
		lo:  splat(lanes, inf),
		hi:  splat(lanes, -inf),
		slo: inf,
		shi: -inf,
	}
}

func (m *minMax) add(v hwy.Vec[float32]) {
	m.lo = hwy.Min(m.lo, v)
	m.hi = hwy.Max(m.hi, v)
}

func (m *minMax) addScalars(vs []float32) {
	for _, v := range vs {
		m.slo = min(m.slo, v)
		m.shi = max(m.shi, v)
	}
}

func (m *minMax) merge(o *minMax) {
	m.add(o.lo)
	m.add(o.hi)
	m.slo = min(m.slo, o.slo)
	m.shi = max(m.shi, o.shi)
}

func (m *minMax) result() (float32, float32) {
	return min(hwy.ReduceMin(m.lo), m.slo), max(hwy.ReduceMax(m.hi), m.shi)
}
