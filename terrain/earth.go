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

// Package terrain builds voxel terrain from noise expressions.
//
// Earth composes a handful of fractal fields into a density volume: continents
// decide where land rises above the sea, a height field scales how steep the land
// may get, and a 3D shape field adds overhangs and cliffs. A separate cave field
// carves tunnels below ground. Chunks are generated independently and may be
// produced concurrently from one Earth.
package terrain

import (
	"github.com/ajroetker/go-noise/noise"
)

const (
	// ChunkSize is the edge length of a chunk in blocks.
	ChunkSize = 16

	// MaxHeight is the highest point above sea level the density field can reach.
	MaxHeight = 120

	// lookAhead is the number of blocks above a chunk that are sampled to know how
	// deep below the surface its top layer is.
	lookAhead = 4

	// caveDecayPoint is the height at which caves start to fade out; they never
	// break through the surface.
	caveDecayPoint = -32
)

// Earth generates chunks for one seed. It holds only immutable expressions and is
// safe for concurrent use.
type Earth struct {
	seed  int32
	biome Biome

	continents noise.Expr
	height     noise.Expr
	shape      noise.Expr
	caves      noise.Expr

	runner noise.Runner
}

// Option configures an Earth.
type Option func(*Earth)

// WithRunner spreads the sampling of each chunk's density volume across r.
func WithRunner(r noise.Runner) Option {
	return func(e *Earth) { e.runner = r }
}

// WithBiome replaces the block palette.
func WithBiome(b Biome) Option {
	return func(e *Earth) { e.biome = b }
}

// NewEarth builds the terrain expressions for seed.
func NewEarth(seed int32, opts ...Option) *Earth {
	e := &Earth{
		seed:  seed,
		biome: DefaultBiome,
	}
	for _, opt := range opts {
		opt(e)
	}

	freq := float32(0.005)
	e.continents = noise.Perlin(freq, seed).
		WithFrequency(freq, 0, freq).
		Fbm(6, 0.5, 2).
		// less of the world is sea
		AddValue(0.25).
		// between -10% and 5% of MaxHeight
		Clamp(-0.1, 0.05)

	freq = 1.0 / 128
	height := noise.Perlin(freq, seed+1).
		WithFrequency(freq, 0, freq).
		Fbm(5, 0.5, 2).
		AddValue(0.5).
		Clamp(0, 1).
		// 0.5..1.5
		AddValue(0.5)

	// Out at sea the height bottoms out gradually from the shore so large land
	// masses don't poke through.
	e.height = e.continents.Range(0, -0.05, height, noise.Constant(0.5))

	freq = 1.0 / 256
	high := noise.Perlin(freq, seed+2).Fbm(4, 0.5, 2)
	low := noise.Perlin(freq, seed+3).Fbm(4, 0.5, 2)

	// Switching between high and low gives sudden changes in elevation.
	freq = 1.0 / 512
	e.shape = noise.Perlin(freq, seed+4).
		Fbm(8, 0.5, 2).
		Range(0.1, -0.1, high, low).
		MulValue(2)

	freq = 0.01
	cave := func(seed int32) noise.Expr {
		return noise.Perlin(freq, seed).
			WithFrequency(freq, freq*2, freq).
			Fbm(3, 0.5, 2).
			Square()
	}
	// Caves only open up where the continents saturate at their maximum, well away
	// from water. Ties go to the low side, so the threshold sits just below 0.05.
	e.caves = e.continents.Range(0.049, 0.049, cave(seed+5).Add(cave(seed+6)), noise.Constant(1))

	return e
}

// Seed returns the seed the Earth was built with.
func (e *Earth) Seed() int32 {
	return e.seed
}

// Chunk generates the chunk whose lowest corner is at pos. pos must be aligned to
// ChunkSize.
func (e *Earth) Chunk(pos Position) *Chunk {
	if pos.Y > MaxHeight {
		return uniformChunk(pos, e.biome.Air)
	}

	c := e.terrain(pos)
	if c.Uniform {
		return c
	}
	e.carveCaves(c)
	return c
}

func (e *Earth) sample3D(expr noise.Expr, x, y, z float32, w, h, d int) noise.Grid {
	if e.runner != nil {
		return expr.Generate3DParallel(e.runner, x, y, z, w, h, d)
	}
	return expr.Generate3D(x, y, z, w, h, d)
}

// terrain fills c from the density volume. Positive density is solid.
func (e *Earth) terrain(pos Position) *Chunk {
	x, y, z := float32(pos.X), float32(pos.Y), float32(pos.Z)

	shape := e.sample3D(e.shape, x, y, z, ChunkSize, ChunkSize+lookAhead, ChunkSize)
	base := e.continents.Generate3D(x, 0, z, ChunkSize, 1, ChunkSize)
	height := e.height.Generate3D(x, 0, z, ChunkSize, 1, ChunkSize)

	for xi := range ChunkSize {
		for zi := range ChunkSize {
			col := shape.Column(xi, zi)
			squash(col, pos.Y, base.At3(xi, 0, zi)*MaxHeight, height.At3(xi, 0, zi))
		}
	}

	c := newChunk(pos)
	for xi := range ChunkSize {
		for zi := range ChunkSize {
			e.classify(c, xi, zi, shape.Column(xi, zi), base.At3(xi, 0, zi)*MaxHeight)
		}
	}

	if c.all(e.biome.Air) {
		return uniformChunk(pos, e.biome.Air)
	}
	return c
}

// squash lowers density above the base height and raises it below, so terrain
// thins out towards MaxHeight. col holds the density of one column starting at
// height y0.
func squash(col []float32, y0 int, baseHeight, heightScale float32) {
	// Per block decrement so that density reaches zero at MaxHeight for the
	// largest height scale.
	const decrement = 1.5 / MaxHeight

	for yi := range col {
		compression := (float32(y0+yi) - baseHeight) * decrement / heightScale
		if compression < 0 {
			compression *= 3
		}
		col[yi] -= compression
	}
}

// classify picks the block of every cell in one column from its density.
func (e *Earth) classify(c *Chunk, xi, zi int, col []float32, baseHeight float32) {
	b := e.biome

	// Depth below the surface of the topmost block, counted from the look-ahead
	// rows above the chunk.
	layer := 0
	for yi := ChunkSize; yi < ChunkSize+lookAhead; yi++ {
		if col[yi] <= 0 {
			if c.Pos.Y+yi <= 0 {
				layer = 1
			}
			break
		}
		layer++
	}

	for yi := ChunkSize - 1; yi >= 0; yi-- {
		h := c.Pos.Y + yi

		var block Block
		switch {
		case col[yi] <= 0:
			switch {
			case h == 0:
				layer = 1
				block = b.SurfaceLiquid
			case h < 0:
				layer = 1
				block = b.SubSurfaceLiquid
			default:
				layer = 0
				block = b.Air
			}
		case layer > 3:
			layer++
			block = b.Bottom
		case h < 2 && baseHeight < 2:
			layer++
			block = b.Sand
		default:
			switch {
			case layer < 1:
				block = b.Top
			case layer < 3:
				block = b.Mid
			default:
				block = b.Bottom
			}
			layer++
		}
		c.Set(xi, yi, zi, block)
	}
}

// carveCaves replaces solid blocks with air where the cave field is close to zero.
// Liquids are left in place.
func (e *Earth) carveCaves(c *Chunk) {
	caves := e.sample3D(e.caves,
		float32(c.Pos.X), float32(c.Pos.Y), float32(c.Pos.Z),
		ChunkSize, ChunkSize, ChunkSize)

	b := e.biome
	for i, density := range caves.Values {
		y := c.Pos.Y + i%ChunkSize
		density += float32(max(y-caveDecayPoint, 0)) / 64

		blk := c.Blocks[i]
		if density/2 < 0.001 && blk != b.SurfaceLiquid && blk != b.SubSurfaceLiquid {
			c.Blocks[i] = b.Air
		}
	}
}
