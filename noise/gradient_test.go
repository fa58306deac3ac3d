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

	"github.com/ajroetker/go-noise/hwy"
)

// one wraps a scalar in a single-lane vector.
func one(x float32) hwy.Vec[float32] {
	return hwy.SetN(1, x)
}

// first returns lane 0 of v.
func first[T hwy.Lanes](v hwy.Vec[T]) T {
	return v.Data()[0]
}

func TestPermIsDoubledPermutation(t *testing.T) {
	var seen [256]bool
	for i, v := range perm[:256] {
		if seen[v] {
			t.Fatalf("perm[%d] = %d repeats", i, v)
		}
		seen[v] = true
		if perm[i+256] != v {
			t.Errorf("perm[%d] = %d, want %d", i+256, perm[i+256], v)
		}
	}
}

func TestGrad1(t *testing.T) {
	g := grad1(hwy.IndicesIota[int32](16)).Data()
	counts := map[float32]int{}
	for h, v := range g {
		if v < -7 || v > 7 || v != float32(int(v)) {
			t.Errorf("grad1(%d) = %v, want an integer in [-7, 7]", h, v)
		}
		counts[v]++
	}
	// 0 and -0 compare equal, the other 14 values appear once each
	if len(counts) != 15 {
		t.Errorf("grad1 produced %d distinct gradients, want 15", len(counts))
	}
}

func TestQuintic(t *testing.T) {
	for _, tt := range []struct{ in, want float32 }{{0, 0}, {0.5, 0.5}, {1, 1}} {
		if got := first(quintic(one(tt.in))); got != tt.want {
			t.Errorf("quintic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLattice(t *testing.T) {
	tests := []struct {
		in   float32
		f    float32
		cell int32
	}{
		{0, 0, 0},
		{1.5, 1, 1},
		{-0.25, -1, -1},
		{-3, -3, -3},
	}
	for _, tt := range tests {
		f, c := lattice(one(tt.in))
		if first(f) != tt.f || first(c) != tt.cell {
			t.Errorf("lattice(%v) = %v, %d, want %v, %d", tt.in, first(f), first(c), tt.f, tt.cell)
		}
	}
}

func TestFlipSign(t *testing.T) {
	x := hwy.SetN(4, float32(1.5))
	got := flipSign(x, hwy.IndicesIota[int32](4)).Data()
	want := []float32{1.5, -1.5, 1.5, -1.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flipSign lane %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLerpIsFused(t *testing.T) {
	a, b, s := float32(0.1), float32(0.7), float32(1.0/3)
	want := float32(math.FMA(float64(s), float64(b-a), float64(a)))
	if got := first(lerp(one(a), one(b), one(s))); got != want {
		t.Errorf("lerp = %v, want %v", got, want)
	}
}

func TestNoiseZeroOnLattice(t *testing.T) {
	// gradient noise vanishes at integer lattice points
	for _, p := range [][3]float32{{0, 0, 0}, {3, -2, 7}, {-5, 11, -1}} {
		x, y, z := one(p[0]), one(p[1]), one(p[2])
		if v := first(perlin1(9, x)); v != 0 {
			t.Errorf("perlin1(%v) = %v, want 0", p[0], v)
		}
		if v := first(perlin2(9, x, y)); v != 0 {
			t.Errorf("perlin2(%v, %v) = %v, want 0", p[0], p[1], v)
		}
		if v := first(perlin3(9, x, y, z)); v != 0 {
			t.Errorf("perlin3(%v) = %v, want 0", p, v)
		}
		if v := first(simplex1(9, x)); v != 0 {
			t.Errorf("simplex1(%v) = %v, want 0", p[0], v)
		}
	}
}

func TestMix(t *testing.T) {
	h := mix(hwy.IndicesIota[int32](8)).Data()
	seen := map[int32]int{}
	for s, v := range h {
		if prev, ok := seen[v]; ok {
			t.Errorf("mix(%d) == mix(%d)", s, prev)
		}
		seen[v] = s
	}
	if h[0] != 0 {
		t.Errorf("mix(0) = %d, want 0", h[0])
	}
}

func TestKernelsMatchAcrossWidths(t *testing.T) {
	// lane i of a wide batch equals the same point evaluated on its own
	x := hwy.ConvertToFloat32(hwy.IndicesIota[int32](16))
	x = hwy.Sub(hwy.Mul(x, hwy.SetN(16, float32(1.37))), hwy.SetN(16, float32(9.1)))
	y := hwy.Mul(x, hwy.SetN(16, float32(-0.61)))
	z := hwy.Add(x, hwy.SetN(16, float32(3.3)))

	kernels := map[string]func(x, y, z hwy.Vec[float32]) hwy.Vec[float32]{
		"simplex1": func(x, _, _ hwy.Vec[float32]) hwy.Vec[float32] { return simplex1(5, x) },
		"simplex2": func(x, y, _ hwy.Vec[float32]) hwy.Vec[float32] { return simplex2(5, x, y) },
		"simplex3": func(x, y, z hwy.Vec[float32]) hwy.Vec[float32] { return simplex3(5, x, y, z) },
		"perlin1":  func(x, _, _ hwy.Vec[float32]) hwy.Vec[float32] { return perlin1(5, x) },
		"perlin2":  func(x, y, _ hwy.Vec[float32]) hwy.Vec[float32] { return perlin2(5, x, y) },
		"perlin3":  func(x, y, z hwy.Vec[float32]) hwy.Vec[float32] { return perlin3(5, x, y, z) },
	}
	for name, k := range kernels {
		wide := k(x, y, z).Data()
		for i := range wide {
			got := first(k(one(x.Data()[i]), one(y.Data()[i]), one(z.Data()[i])))
			if math.Float32bits(got) != math.Float32bits(wide[i]) {
				t.Errorf("%s lane %d: single %v, wide %v", name, i, got, wide[i])
			}
		}
	}
}

func TestSimplexContinuous(t *testing.T) {
	// neighbouring samples a small step apart stay close
	const step = 1e-3
	for i := range 200 {
		x := float32(i)*0.37 - 30
		if d := math.Abs(float64(first(simplex2(4, one(x), one(x*0.5))) - first(simplex2(4, one(x+step), one(x*0.5))))); d > 0.05 {
			t.Errorf("simplex2 jumps by %v at x=%v", d, x)
		}
		if d := math.Abs(float64(first(simplex3(4, one(x), one(1), one(-x))) - first(simplex3(4, one(x), one(1+step), one(-x))))); d > 0.05 {
			t.Errorf("simplex3 jumps by %v at x=%v", d, x)
		}
	}
}
