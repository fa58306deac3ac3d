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

package terrain

import (
	"fmt"

	"github.com/samber/lo"
)

// Block identifies the material of one cell.
type Block uint8

const (
	Air Block = iota
	Water
	Stone
	Dirt
	Grass
	Sand
)

var blockNames = [...]string{
	Air:   "air",
	Water: "water",
	Stone: "stone",
	Dirt:  "dirt",
	Grass: "grass",
	Sand:  "sand",
}

func (b Block) String() string {
	if int(b) < len(blockNames) {
		return blockNames[b]
	}
	return fmt.Sprintf("block(%d)", uint8(b))
}

// Biome is the palette terrain is painted with.
type Biome struct {
	Air              Block
	SurfaceLiquid    Block
	SubSurfaceLiquid Block
	Top              Block
	Mid              Block
	Bottom           Block
	Sand             Block
}

// DefaultBiome is grass over dirt over stone, with water at and below sea level.
var DefaultBiome = Biome{
	Air:              Air,
	SurfaceLiquid:    Water,
	SubSurfaceLiquid: Water,
	Top:              Grass,
	Mid:              Dirt,
	Bottom:           Stone,
	Sand:             Sand,
}

// Position is the block coordinate of a chunk's lowest corner.
type Position struct {
	X, Y, Z int
}

// ChunkAt returns the position of the chunk containing block (x, y, z).
func ChunkAt(x, y, z int) Position {
	align := func(v int) int {
		// floor division for negative coordinates
		if v < 0 {
			v -= ChunkSize - 1
		}
		return v / ChunkSize * ChunkSize
	}
	return Position{align(x), align(y), align(z)}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// Chunk is a ChunkSize cube of blocks.
//
// Blocks is ordered x, z, y with y innermost, matching the layout of
// noise.Grid, so each vertical column is contiguous. A uniform chunk has no Blocks
// and is filled entirely with Fill.
type Chunk struct {
	Pos     Position
	Blocks  []Block
	Uniform bool
	Fill    Block
}

func newChunk(pos Position) *Chunk {
	return &Chunk{Pos: pos, Blocks: make([]Block, ChunkSize*ChunkSize*ChunkSize)}
}

func uniformChunk(pos Position, b Block) *Chunk {
	return &Chunk{Pos: pos, Uniform: true, Fill: b}
}

func index(x, y, z int) int {
	return (x*ChunkSize+z)*ChunkSize + y
}

// At returns the block at chunk-local coordinates.
func (c *Chunk) At(x, y, z int) Block {
	if c.Uniform {
		return c.Fill
	}
	return c.Blocks[index(x, y, z)]
}

// Set stores b at chunk-local coordinates. It panics on a uniform chunk.
func (c *Chunk) Set(x, y, z int, b Block) {
	c.Blocks[index(x, y, z)] = b
}

func (c *Chunk) all(b Block) bool {
	return lo.EveryBy(c.Blocks, func(v Block) bool { return v == b })
}

// Histogram counts the blocks of each kind.
func (c *Chunk) Histogram() map[Block]int {
	if c.Uniform {
		return map[Block]int{c.Fill: ChunkSize * ChunkSize * ChunkSize}
	}
	return lo.CountValues(c.Blocks)
}

// Surface returns, for every column in x, z order, the local height of the
// topmost non-air block that has air somewhere above it, or -1 if the column has
// none. Columns that are solid to the top of the chunk report -1, as the surface
// lies in a chunk further up.
func (c *Chunk) Surface(air Block) []int {
	surface := make([]int, ChunkSize*ChunkSize)
	for col := range surface {
		surface[col] = -1
		if c.Uniform {
			continue
		}
		blocks := c.Blocks[col*ChunkSize : (col+1)*ChunkSize]
		seenAir := false
		for y := ChunkSize - 1; y >= 0; y-- {
			if blocks[y] == air {
				seenAir = true
				continue
			}
			if seenAir {
				surface[col] = y
				break
			}
		}
	}
	return surface
}
