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

package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-noise/terrain"
	"github.com/ajroetker/go-noise/workerpool"
)

type terrainOptions struct {
	seed       int32
	x, z       int
	radius     int
	minY, maxY int
	jobs       int
	workers    int
}

func newTerrainCmd() *cobra.Command {
	opts := terrainOptions{}
	cmd := &cobra.Command{
		Use:   "terrain",
		Short: "Generate a square of terrain chunk columns and summarize the blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTerrain(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	f := cmd.Flags()
	f.Int32Var(&opts.seed, "seed", 0, "World seed")
	f.IntVar(&opts.x, "x", 0, "Block x of the center column")
	f.IntVar(&opts.z, "z", 0, "Block z of the center column")
	f.IntVar(&opts.radius, "radius", 1, "Columns generated on each side of the center")
	f.IntVar(&opts.minY, "min-y", -64, "Lowest block height generated")
	f.IntVar(&opts.maxY, "max-y", terrain.MaxHeight, "Highest block height generated")
	f.IntVar(&opts.jobs, "jobs", 0, "Chunks generated at once (0 = unlimited)")
	f.IntVar(&opts.workers, "workers", 0, "Worker goroutines sampling each chunk (0 = none)")
	return cmd
}

// positions lists every chunk of the square of columns around (x, z).
func (o terrainOptions) positions() []terrain.Position {
	var out []terrain.Position
	for dx := -o.radius; dx <= o.radius; dx++ {
		for dz := -o.radius; dz <= o.radius; dz++ {
			out = append(out, terrain.Column(o.x+dx*terrain.ChunkSize, o.z+dz*terrain.ChunkSize, o.minY, o.maxY)...)
		}
	}
	return out
}

func runTerrain(ctx context.Context, w io.Writer, o terrainOptions) error {
	if o.radius < 0 {
		return fmt.Errorf("radius must not be negative, got %d", o.radius)
	}
	if o.minY > o.maxY {
		return fmt.Errorf("min-y %d is above max-y %d", o.minY, o.maxY)
	}

	var opts []terrain.Option
	if o.workers > 0 {
		pool := workerpool.New(o.workers)
		defer pool.Close()
		opts = append(opts, terrain.WithRunner(pool))
	}
	earth := terrain.NewEarth(o.seed, opts...)

	positions := o.positions()
	start := time.Now()
	chunks, err := earth.Chunks(ctx, positions, o.jobs)
	if err != nil {
		return fmt.Errorf("generating terrain: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Fprintf(w, "Generated %d chunks in %v (%v per chunk)\n",
		len(chunks), elapsed.Round(time.Microsecond), (elapsed / time.Duration(max(len(chunks), 1))).Round(time.Microsecond))
	fmt.Fprintf(w, "Uniform chunks: %d\n", lo.CountBy(chunks, func(c *terrain.Chunk) bool { return c.Uniform }))

	total := blockTotals(chunks)
	blocks := lo.Keys(total)
	slices.Sort(blocks)
	for _, b := range blocks {
		fmt.Fprintf(w, "  %-6s %d\n", b, total[b])
	}
	return nil
}

// blockTotals sums the block histograms of chunks.
func blockTotals(chunks []*terrain.Chunk) map[terrain.Block]int {
	total := map[terrain.Block]int{}
	for _, c := range chunks {
		for b, n := range c.Histogram() {
			total[b] += n
		}
	}
	return total
}
