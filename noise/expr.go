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
	"strconv"
	"strings"
)

// op identifies the kind of an expression node.
type op uint8

const (
	opConstant op = iota
	opSimplex
	opPerlin
	opFbm
	opAbs
	opAddNoise
	opAddValue
	opClamp
	opLerp
	opMax
	opMin
	opMulValue
	opRange
	opSquare
)

var opNames = [...]string{
	opConstant: "constant",
	opSimplex:  "simplex",
	opPerlin:   "perlin",
	opFbm:      "fbm",
	opAbs:      "abs",
	opAddNoise: "add",
	opAddValue: "add_value",
	opClamp:    "clamp",
	opLerp:     "lerp",
	opMax:      "max",
	opMin:      "min",
	opMulValue: "mul_value",
	opRange:    "range",
	opSquare:   "square",
}

func (o op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// params holds the scalar parameters of a node. Only the fields relevant to op are
// set; the same struct is carried over unchanged into the compiled tree.
type params struct {
	op   op
	seed int32
	// freq is the per-axis frequency of Simplex and Perlin.
	freq [3]float32
	// value is the operand of Constant, AddValue and MulValue.
	value float32
	// lo and hi are the Clamp bounds or the Range thresholds.
	lo, hi float32

	octaves                 int
	gain, lacunarity, scale float32
}

// exprNode is one immutable node of an expression tree.
type exprNode struct {
	params
	children []*exprNode
}

var zeroNode = &exprNode{params: params{op: opConstant}}

// Source is anything that can be used as an operand of a combinator: an Expr or a
// Generator.
type Source interface {
	root() *exprNode
}

// Expr is an immutable description of a noise computation.
//
// Every method returns a new Expr wrapping the receiver; the receiver itself is
// never modified, so an Expr may be shared freely between goroutines and reused as
// an operand of several combinators. The zero Expr evaluates to 0 everywhere.
type Expr struct {
	n *exprNode
}

func (e Expr) root() *exprNode {
	if e.n == nil {
		return zeroNode
	}
	return e.n
}

func wrap(p params, children ...Source) Expr {
	n := &exprNode{params: p, children: make([]*exprNode, len(children))}
	for i, c := range children {
		n.children[i] = c.root()
	}
	return Expr{n: n}
}

// Generator is a leaf gradient noise whose frequency may still be adjusted.
//
// Only a Generator has WithFrequency; every combinator returns a plain Expr, so
// setting the frequency of an already combined expression does not compile.
type Generator struct {
	Expr
}

// Simplex returns simplex noise with the given frequency on every axis.
// The output lies within [-1, 1].
func Simplex(frequency float32, seed int32) Generator {
	return newGenerator(opSimplex, frequency, seed)
}

// Perlin returns Perlin gradient noise with the given frequency on every axis.
// The output lies within [-1, 1].
func Perlin(frequency float32, seed int32) Generator {
	return newGenerator(opPerlin, frequency, seed)
}

func newGenerator(o op, frequency float32, seed int32) Generator {
	return Generator{Expr{n: &exprNode{params: params{
		op:   o,
		seed: seed,
		freq: [3]float32{frequency, frequency, frequency},
	}}}}
}

// WithFrequency sets the frequency of each axis separately.
//
// 2D generation samples the horizontal plane, so its second coordinate is scaled
// by z. A frequency of 0 on an axis makes the noise constant along that axis.
func (g Generator) WithFrequency(x, y, z float32) Generator {
	p := g.root().params
	p.freq = [3]float32{x, y, z}
	return Generator{Expr{n: &exprNode{params: p}}}
}

// Seed returns the seed of the generator.
func (g Generator) Seed() int32 {
	return g.root().seed
}

// Frequency returns the per-axis frequency of the generator.
func (g Generator) Frequency() (x, y, z float32) {
	f := g.root().freq
	return f[0], f[1], f[2]
}

// Constant returns an expression that is value everywhere.
func Constant(value float32) Expr {
	return Expr{n: &exprNode{params: params{op: opConstant, value: value}}}
}

// Fbm layers octaves of the receiver (fractal Brownian motion).
//
// Each octave multiplies the sampling coordinates by lacunarity and the amplitude
// by gain, starting from amplitude 1. The sum is scaled by the reciprocal of the
// total amplitude so the result stays in the range of a single octave. A single
// octave returns the receiver unchanged; octaves <= 0 yields 0.
func (e Expr) Fbm(octaves int, gain, lacunarity float32) Expr {
	return wrap(params{
		op:         opFbm,
		octaves:    octaves,
		gain:       gain,
		lacunarity: lacunarity,
		scale:      fbmScale(octaves, gain),
	}, e)
}

// fbmScale returns 1 / sum(gain^i) for i in [0, octaves).
func fbmScale(octaves int, gain float32) float32 {
	amp := gain
	sum := float32(1)
	for i := 1; i < octaves; i++ {
		sum += amp
		amp *= gain
	}
	return 1 / sum
}

// Abs converts the noise to absolute values.
func (e Expr) Abs() Expr {
	return wrap(params{op: opAbs}, e)
}

// Add adds two noises together. The result is not normalized.
func (e Expr) Add(other Source) Expr {
	return wrap(params{op: opAddNoise}, e, other)
}

// AddValue adds value to the noise.
func (e Expr) AddValue(value float32) Expr {
	return wrap(params{op: opAddValue, value: value}, e)
}

// Clamp limits the noise to [min, max].
func (e Expr) Clamp(min, max float32) Expr {
	return wrap(params{op: opClamp, lo: min, hi: max}, e)
}

// Max takes the larger of the two noises at every point.
func (e Expr) Max(other Source) Expr {
	return wrap(params{op: opMax}, e, other)
}

// Min takes the smaller of the two noises at every point.
func (e Expr) Min(other Source) Expr {
	return wrap(params{op: opMin}, e, other)
}

// MulValue multiplies the noise by value.
func (e Expr) MulValue(value float32) Expr {
	return wrap(params{op: opMulValue, value: value}, e)
}

// Lerp interpolates linearly between low and high using the receiver as the
// interpolation factor: low + (high-low)*s. The factor is not clamped, so a
// selector outside [0, 1] extrapolates.
func (e Expr) Lerp(high, low Source) Expr {
	return wrap(params{op: opLerp}, e, low, high)
}

// Range uses the receiver as a selector between two noises. Where the selector is
// at or below lowThreshold the result is lowNoise, at or above highThreshold it is
// highNoise, and in between the two are blended linearly by the selector's
// position within the thresholds.
func (e Expr) Range(highThreshold, lowThreshold float32, highNoise, lowNoise Source) Expr {
	return wrap(params{op: opRange, lo: lowThreshold, hi: highThreshold}, e, lowNoise, highNoise)
}

// Square multiplies the noise by itself.
func (e Expr) Square() Expr {
	return wrap(params{op: opSquare}, e)
}

// String renders the expression tree, e.g.
// "fbm(octaves=4, gain=0.5, lacunarity=2, simplex(seed=1, freq=0.01,0.01,0.01))".
func (e Expr) String() string {
	var sb strings.Builder
	writeNode(&sb, e.root())
	return sb.String()
}

func writeNode(sb *strings.Builder, n *exprNode) {
	f := func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

	sb.WriteString(n.op.String())
	sb.WriteByte('(')
	var args []string
	switch n.op {
	case opSimplex, opPerlin:
		args = append(args,
			"seed="+strconv.Itoa(int(n.seed)),
			"freq="+f(n.freq[0])+","+f(n.freq[1])+","+f(n.freq[2]))
	case opConstant, opAddValue, opMulValue:
		args = append(args, f(n.value))
	case opClamp:
		args = append(args, "min="+f(n.lo), "max="+f(n.hi))
	case opRange:
		args = append(args, "low="+f(n.lo), "high="+f(n.hi))
	case opFbm:
		args = append(args,
			"octaves="+strconv.Itoa(n.octaves),
			"gain="+f(n.gain),
			"lacunarity="+f(n.lacunarity))
	}
	sb.WriteString(strings.Join(args, ", "))
	for i, c := range n.children {
		if i > 0 || len(args) > 0 {
			sb.WriteString(", ")
		}
		writeNode(sb, c)
	}
	sb.WriteByte(')')
}
