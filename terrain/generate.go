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
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Chunks generates the chunks at positions concurrently, running at most limit
// generations at a time (no limit if limit <= 0). Results are in the order of
// positions. Generation stops early when ctx is cancelled.
func (e *Earth) Chunks(ctx context.Context, positions []Position, limit int) ([]*Chunk, error) {
	out := make([]*Chunk, len(positions))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, pos := range positions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("chunk %v: %w", pos, err)
			}
			out[i] = e.Chunk(pos)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Column returns the positions of the chunks stacked between minY and maxY
// (inclusive, in blocks) above the chunk containing (x, z).
func Column(x, z, minY, maxY int) []Position {
	bottom, top := ChunkAt(x, minY, z), ChunkAt(x, maxY, z)
	var out []Position
	for y := bottom.Y; y <= top.Y; y += ChunkSize {
		out = append(out, Position{bottom.X, y, bottom.Z})
	}
	return out
}
