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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-noise/workerpool"
)

// withLanes runs fn with the engine forced to n lanes.
func withLanes(t *testing.T, n int, fn func()) {
	t.Helper()
	prev := Lanes()
	if !useLanes(n) {
		t.Fatalf("useLanes(%d) failed", n)
	}
	defer useLanes(prev)
	fn()
}

// exprs is a set of expressions exercising every node kind.
func exprs() map[string]Expr {
	s := Simplex(0.05, 1)
	p := Perlin(0.03, 2).WithFrequency(0.03, 0.06, 0.02)
	return map[string]Expr{
		"simplex":  s.Expr,
		"perlin":   p.Expr,
		"fbm":      s.Fbm(5, 0.5, 2),
		"abs":      p.Abs(),
		"add":      s.Add(p),
		"addValue": s.AddValue(0.25),
		"clamp":    p.Fbm(3, 0.6, 2.1).Clamp(-0.2, 0.3),
		"lerp":     s.Lerp(p, Constant(0.5)),
		"max":      s.Max(p),
		"min":      s.Min(p),
		"mulValue": p.MulValue(-3),
		"range":    Perlin(0.01, 3).Range(0.2, -0.2, s, p.Square()),
		"terrain": Perlin(0.005, 4).Fbm(4, 0.5, 2).AddValue(0.25).Clamp(-0.1, 0.05).
			Range(0, -0.05, Perlin(1.0/128, 5).Fbm(3, 0.5, 2), Constant(0.5)),
	}
}

func TestGenerateDeterministicAcrossWidths(t *testing.T) {
	for name, e := range exprs() {
		t.Run(name, func(t *testing.T) {
			var want [3]Grid
			for i, n := range supportedLanes {
				withLanes(t, n, func() {
					got := [3]Grid{
						e.Generate1D(-7.5, 37),
						e.Generate2D(3, -20, 9, 21),
						e.Generate3D(-4, 11, 100, 5, 19, 3),
					}
					if i == 0 {
						want = got
						return
					}
					if diff := cmp.Diff(want, got); diff != "" {
						t.Errorf("%d lanes differ from %d lanes (-want +got):\n%s", n, supportedLanes[0], diff)
					}
				})
			}
		})
	}
}

func TestGenerateRepeatable(t *testing.T) {
	e := exprs()["terrain"]
	a := e.Generate3D(16, -32, 48, 16, 20, 16)
	b := e.Generate3D(16, -32, 48, 16, 20, 16)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated Generate3D differs (-first +second):\n%s", diff)
	}
}

func TestGenerateShape(t *testing.T) {
	e := Simplex(0.1, 1).Expr
	for _, n := range supportedLanes {
		withLanes(t, n, func() {
			for _, w := range []int{1, 3, 16, 17, 33} {
				if g := e.Generate1D(0, w); len(g.Values) != w || g.Width != w {
					t.Errorf("lanes=%d Generate1D(w=%d): %d values, Width %d", n, w, len(g.Values), g.Width)
				}
				if g := e.Generate2D(0, 0, w, 5); len(g.Values) != w*5 || g.Height != 5 {
					t.Errorf("lanes=%d Generate2D(%d, 5): %d values", n, w, len(g.Values))
				}
				if g := e.Generate3D(0, 0, 0, 2, w, 3); len(g.Values) != 2*w*3 || g.Depth != 3 {
					t.Errorf("lanes=%d Generate3D(2, %d, 3): %d values", n, w, len(g.Values))
				}
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	e := Simplex(0.1, 1)
	tests := []struct {
		name string
		g    Grid
	}{
		{"1D zero", e.Generate1D(0, 0)},
		{"1D negative", e.Generate1D(0, -4)},
		{"2D zero height", e.Generate2D(0, 0, 4, 0)},
		{"3D zero depth", e.Generate3D(0, 0, 0, 4, 4, 0)},
		{"3D negative width", e.Generate3D(0, 0, 0, -1, 4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.g.Values) != 0 {
				t.Errorf("got %d values, want 0", len(tt.g.Values))
			}
			if !math.IsInf(float64(tt.g.Min), 1) || !math.IsInf(float64(tt.g.Max), -1) {
				t.Errorf("Min, Max = %v, %v, want +Inf, -Inf", tt.g.Min, tt.g.Max)
			}
		})
	}
}

func TestConstant(t *testing.T) {
	for _, n := range supportedLanes {
		withLanes(t, n, func() {
			g := Constant(0.5).Generate1D(0, 8)
			want := []float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
			if diff := cmp.Diff(want, g.Values); diff != "" {
				t.Errorf("lanes=%d (-want +got):\n%s", n, diff)
			}
			if g.Min != 0.5 || g.Max != 0.5 {
				t.Errorf("lanes=%d Min, Max = %v, %v, want 0.5, 0.5", n, g.Min, g.Max)
			}

			g = Constant(1).Clamp(0, 0.5).Generate1D(0, 4)
			if diff := cmp.Diff([]float32{0.5, 0.5, 0.5, 0.5}, g.Values); diff != "" {
				t.Errorf("lanes=%d clamp (-want +got):\n%s", n, diff)
			}
			if g.Min != 0.5 || g.Max != 0.5 {
				t.Errorf("lanes=%d clamp Min, Max = %v, %v", n, g.Min, g.Max)
			}
		})
	}
}

func TestSingleSample(t *testing.T) {
	e := Simplex(0.37, 1234)
	a := e.Generate3D(12.5, -3, 7, 1, 1, 1)
	b := e.Generate3D(12.5, -3, 7, 1, 1, 1)
	if len(a.Values) != 1 {
		t.Fatalf("got %d values, want 1", len(a.Values))
	}
	if a.Values[0] != b.Values[0] {
		t.Errorf("sample not reproducible: %v vs %v", a.Values[0], b.Values[0])
	}
	if a.Min != a.Values[0] || a.Max != a.Values[0] {
		t.Errorf("Min, Max = %v, %v, want both %v", a.Min, a.Max, a.Values[0])
	}
}

func TestClampBounds(t *testing.T) {
	e := Simplex(0.08, 5).Fbm(4, 0.5, 2).MulValue(3).Clamp(-0.25, 0.4)
	g := e.Generate3D(0, 0, 0, 12, 13, 14)
	for i, v := range g.Values {
		if v < -0.25 || v > 0.4 {
			t.Fatalf("Values[%d] = %v outside [-0.25, 0.4]", i, v)
		}
	}
	if g.Min < -0.25 || g.Max > 0.4 {
		t.Errorf("Min, Max = %v, %v", g.Min, g.Max)
	}
}

func TestMinMaxMatchValues(t *testing.T) {
	for name, e := range exprs() {
		g := e.Generate2D(-9, 4, 11, 13)
		lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
		for _, v := range g.Values {
			lo, hi = min(lo, v), max(hi, v)
		}
		if g.Min != lo || g.Max != hi {
			t.Errorf("%s: Min, Max = %v, %v, want %v, %v", name, g.Min, g.Max, lo, hi)
		}
	}
}

func TestFbmSingleOctave(t *testing.T) {
	for _, c := range []Expr{Simplex(0.07, 3).Expr, Perlin(0.02, 4).Abs(), Constant(-0.75)} {
		direct := c.Generate3D(1, 2, 3, 7, 9, 5)
		fbm := c.Fbm(1, 0.37, 2.9).Generate3D(1, 2, 3, 7, 9, 5)
		if diff := cmp.Diff(direct, fbm); diff != "" {
			t.Errorf("%v: single octave differs (-child +fbm):\n%s", c, diff)
		}
	}
}

func TestFbmOctaves(t *testing.T) {
	if g := Simplex(0.1, 1).Fbm(0, 0.5, 2).Generate1D(0, 9); g.Min != 0 || g.Max != 0 {
		t.Errorf("zero octaves: Min, Max = %v, %v, want 0, 0", g.Min, g.Max)
	}
	// a constant stays constant: every octave contributes the same value
	g := Constant(0.8).Fbm(4, 0.5, 2).Generate1D(0, 5)
	for _, v := range g.Values {
		if math.Abs(float64(v-0.8)) > 1e-6 {
			t.Errorf("fbm of constant = %v, want 0.8", v)
		}
	}
}

func TestAlgebra(t *testing.T) {
	a := Simplex(0.04, 10).Fbm(3, 0.5, 2)
	b := Perlin(0.09, 11).WithFrequency(0.09, 0.02, 0.05)

	gen := func(e Expr) []float32 { return e.Generate3D(-5, 6, 7, 6, 10, 4).Values }
	av, bv := gen(a), gen(b.Expr)

	sum := gen(a.Add(b))
	hi := gen(a.Max(b))
	lo := gen(a.Min(b))
	scaled := gen(a.MulValue(-2.5))
	shifted := gen(a.AddValue(0.125))
	sq := gen(a.Square())
	abs := gen(a.Abs())
	for i := range av {
		if want := av[i] + bv[i]; sum[i] != want {
			t.Errorf("Add[%d] = %v, want %v", i, sum[i], want)
		}
		if want := max(av[i], bv[i]); hi[i] != want {
			t.Errorf("Max[%d] = %v, want %v", i, hi[i], want)
		}
		if want := min(av[i], bv[i]); lo[i] != want {
			t.Errorf("Min[%d] = %v, want %v", i, lo[i], want)
		}
		if want := av[i] * -2.5; scaled[i] != want {
			t.Errorf("MulValue[%d] = %v, want %v", i, scaled[i], want)
		}
		if want := av[i] + 0.125; shifted[i] != want {
			t.Errorf("AddValue[%d] = %v, want %v", i, shifted[i], want)
		}
		if want := av[i] * av[i]; sq[i] != want {
			t.Errorf("Square[%d] = %v, want %v", i, sq[i], want)
		}
		if want := float32(math.Abs(float64(av[i]))); abs[i] != want {
			t.Errorf("Abs[%d] = %v, want %v", i, abs[i], want)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		s, want float32
	}{
		{0, 4},
		{0.25, 5},
		{1, 8},
		{2, 12},
		{-1, 0},
	}
	for _, tt := range tests {
		g := Constant(tt.s).Lerp(Constant(8), Constant(4)).Generate1D(0, 3)
		if g.Min != tt.want || g.Max != tt.want {
			t.Errorf("selector %v: got [%v, %v], want %v", tt.s, g.Min, g.Max, tt.want)
		}
	}
}

func TestLerpFused(t *testing.T) {
	// the blend is a single fused multiply-add, so it rounds once
	low, high := float32(0.1), float32(0.7)
	for _, s := range []float32{0.3, 1.0 / 3, 0.77777, -2.5, 1e-4} {
		want := float32(math.FMA(float64(s), float64(high-low), float64(low)))
		for _, n := range supportedLanes {
			withLanes(t, n, func() {
				g := Constant(s).Lerp(Constant(low), Constant(high)).Generate1D(0, 3)
				for i, v := range g.Values {
					if v != want {
						t.Errorf("lanes=%d selector %v: Values[%d] = %v, want %v", n, s, i, v, want)
					}
				}
			})
		}
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name    string
		s       float32
		hi, lo  float32
		want    float32
		wantNaN bool
	}{
		{"below", -1, 0.5, -0.5, -10, false},
		{"at low", -0.5, 0.5, -0.5, -10, false},
		{"blend", 0.25, 0.5, -0.5, 5, false},
		{"middle", 0, 0.5, -0.5, 0, false},
		{"at high", 0.5, 0.5, -0.5, 10, false},
		{"above", 3, 0.5, -0.5, 10, false},
		{"equal thresholds low wins", 0.2, 0.2, 0.2, -10, false},
		{"inverted thresholds low wins", 0, -0.5, 0.5, -10, false},
		{"nan selector", float32(math.NaN()), 0.5, -0.5, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Constant(tt.s).Range(tt.hi, tt.lo, Constant(10), Constant(-10))
			v := e.Generate1D(0, 1).Values[0]
			if tt.wantNaN {
				if !math.IsNaN(float64(v)) {
					t.Errorf("got %v, want NaN", v)
				}
				return
			}
			if v != tt.want {
				t.Errorf("got %v, want %v", v, tt.want)
			}
		})
	}
}

func TestNaNPropagates(t *testing.T) {
	nan := Constant(float32(math.NaN()))
	for name, e := range map[string]Expr{
		"clamp": nan.Clamp(0, 1),
		"max":   nan.Max(Constant(1)),
		"min":   Constant(1).Min(nan),
	} {
		g := e.Generate1D(0, 5)
		if !math.IsNaN(float64(g.Values[0])) || !math.IsNaN(float64(g.Min)) || !math.IsNaN(float64(g.Max)) {
			t.Errorf("%s: got %v (min %v, max %v), want NaN", name, g.Values[0], g.Min, g.Max)
		}
	}
}

func TestAmplitude(t *testing.T) {
	const limit = 1.01
	gens := map[string]Generator{
		"simplex": Simplex(0.173, 42),
		"perlin":  Perlin(0.173, 42),
	}
	for name, g := range gens {
		for dim, grid := range []Grid{
			g.Generate1D(-500, 4000),
			g.Generate2D(-60, -60, 120, 120),
			g.Generate3D(-20, -20, -20, 40, 40, 40),
		} {
			if grid.Min < -limit || grid.Max > limit {
				t.Errorf("%s %dD: range [%v, %v] exceeds ±%v", name, dim+1, grid.Min, grid.Max, limit)
			}
			if grid.Max-grid.Min < 0.5 {
				t.Errorf("%s %dD: range [%v, %v] suspiciously narrow", name, dim+1, grid.Min, grid.Max)
			}
		}
	}
}

func TestSeedsIndependent(t *testing.T) {
	for _, mk := range []func(int32) Generator{
		func(s int32) Generator { return Simplex(0.11, s) },
		func(s int32) Generator { return Perlin(0.11, s) },
	} {
		for _, seeds := range [][2]int32{{1, 2}, {0, -1}, {7, 7 + 1<<20}} {
			a := mk(seeds[0])
			b := mk(seeds[1])
			for dim, pair := range [][2]Grid{
				{a.Generate1D(0.5, 256), b.Generate1D(0.5, 256)},
				{a.Generate2D(0.5, 0.5, 16, 16), b.Generate2D(0.5, 0.5, 16, 16)},
				{a.Generate3D(0.5, 0.5, 0.5, 8, 8, 4), b.Generate3D(0.5, 0.5, 0.5, 8, 8, 4)},
			} {
				same := 0
				for i := range pair[0].Values {
					if pair[0].Values[i] == pair[1].Values[i] {
						same++
					}
				}
				if same > len(pair[0].Values)/10 {
					t.Errorf("%v vs %v %dD: %d of %d samples equal", a, b, dim+1, same, len(pair[0].Values))
				}
			}
		}
	}
}

func TestGenerate2DSamplesHorizontalPlane(t *testing.T) {
	// the second 2D coordinate is scaled by the z frequency
	g := Simplex(0, 1).WithFrequency(0.13, 5, 0).Generate2D(0.5, 0, 6, 10)
	for xi := range g.Width {
		first := g.At2(xi, 0)
		for yi := range g.Height {
			if v := g.At2(xi, yi); v != first {
				t.Fatalf("At2(%d, %d) = %v, want %v", xi, yi, v, first)
			}
		}
	}
}

func TestGridLayout(t *testing.T) {
	e := Perlin(0.21, 6).Add(Simplex(0.09, 7))
	x, y, z := float32(-3), float32(17), float32(5)

	g2 := e.Generate2D(x, y, 4, 7)
	g3 := e.Generate3D(x, y, z, 3, 6, 4)
	for xi := range 4 {
		for yi := range 7 {
			want := e.Generate2D(x+float32(xi), y+float32(yi), 1, 1).Values[0]
			if got := g2.At2(xi, yi); got != want {
				t.Errorf("At2(%d, %d) = %v, want %v", xi, yi, got, want)
			}
			if g2.Index2(xi, yi) != xi*7+yi {
				t.Errorf("Index2(%d, %d) = %d", xi, yi, g2.Index2(xi, yi))
			}
		}
	}
	for xi := range 3 {
		for zi := range 4 {
			col := g3.Column(xi, zi)
			for yi := range 6 {
				want := e.Generate3D(x+float32(xi), y+float32(yi), z+float32(zi), 1, 1, 1).Values[0]
				if got := g3.At3(xi, yi, zi); got != want {
					t.Errorf("At3(%d, %d, %d) = %v, want %v", xi, yi, zi, got, want)
				}
				if col[yi] != want {
					t.Errorf("Column(%d, %d)[%d] = %v, want %v", xi, zi, yi, col[yi], want)
				}
			}
		}
	}

	g1 := e.Generate1D(x, 5)
	for xi := range 5 {
		if got, want := g1.At1(xi), e.Generate1D(x+float32(xi), 1).Values[0]; got != want {
			t.Errorf("At1(%d) = %v, want %v", xi, got, want)
		}
	}
}

func TestGenerateParallel(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	for name, e := range exprs() {
		for _, n := range supportedLanes {
			withLanes(t, n, func() {
				if diff := cmp.Diff(e.Generate2D(-8, 3, 37, 19), e.Generate2DParallel(pool, -8, 3, 37, 19)); diff != "" {
					t.Errorf("%s lanes=%d 2D (-serial +parallel):\n%s", name, n, diff)
				}
				if diff := cmp.Diff(e.Generate3D(1, -2, 3, 9, 23, 5), e.Generate3DParallel(pool, 1, -2, 3, 9, 23, 5)); diff != "" {
					t.Errorf("%s lanes=%d 3D (-serial +parallel):\n%s", name, n, diff)
				}
			})
		}
	}
}

func TestColumnsPerClaim(t *testing.T) {
	tests := []struct {
		colSamples, want int
	}{
		{0, claimSamples},
		{1, claimSamples},
		{16 * 16, claimSamples / 256},
		{claimSamples, 1},
		{256 * 256, 1},
	}
	for _, tt := range tests {
		if got := columnsPerClaim(tt.colSamples); got != tt.want {
			t.Errorf("columnsPerClaim(%d) = %d, want %d", tt.colSamples, got, tt.want)
		}
	}
}

// countingRunner records the batch sizes a generation asks for.
type countingRunner struct {
	batches []int
}

func (r *countingRunner) ParallelForAtomicBatched(n, batch int, fn func(start, end int)) {
	r.batches = append(r.batches, batch)
	for start := 0; start < n; start += batch {
		fn(start, min(start+batch, n))
	}
}

func TestGenerateParallelBatchesByColumnCost(t *testing.T) {
	e := exprs()["fbm"]
	var r countingRunner
	got := e.Generate3DParallel(&r, 2, 3, 4, 40, 64, 8)
	if diff := cmp.Diff([]int{columnsPerClaim(64 * 8)}, r.batches); diff != "" {
		t.Errorf("3D batches (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(e.Generate3D(2, 3, 4, 40, 64, 8), got); diff != "" {
		t.Errorf("3D (-serial +runner):\n%s", diff)
	}

	r = countingRunner{}
	e.Generate2DParallel(&r, 0, 0, 10, 5000)
	if diff := cmp.Diff([]int{1}, r.batches); diff != "" {
		t.Errorf("2D batches (-want +got):\n%s", diff)
	}
}

func TestUseLanes(t *testing.T) {
	prev := Lanes()
	defer useLanes(prev)

	if useLanes(3) {
		t.Error("useLanes(3) = true, want false")
	}
	if Lanes() != prev {
		t.Errorf("failed useLanes changed Lanes() to %d", Lanes())
	}
	if useLanes(0) {
		t.Error("useLanes(0) = true, want false")
	}
	for _, n := range supportedLanes {
		if !useLanes(n) || Lanes() != n {
			t.Errorf("useLanes(%d): Lanes() = %d", n, Lanes())
		}
	}
}
