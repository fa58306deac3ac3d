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

// Package noise generates coherent procedural noise over 1D, 2D and 3D grids.
//
// A noise field is described by an Expr built from leaf generators (Simplex,
// Perlin, Constant) and combinators (Fbm, Add, Range, ...):
//
//	land := noise.Perlin(0.005, seed).
//		WithFrequency(0.005, 0, 0.005).
//		Fbm(6, 0.5, 2).
//		Clamp(-0.1, 0.05)
//	grid := land.Generate2D(x, z, 16, 16)
//
// Building an Expr does no work. Each Generate call flattens the expression into an
// array of nodes whose evaluators were chosen once at compile time, then evaluates
// it one batch of samples at a time. The batch width follows the CPU detected by
// package hwy; every width produces bit-identical results.
//
// # Layout
//
// Grids are ordered with x outermost and y innermost. 3D grids put z between them,
// so each vertical column of Height samples is contiguous. See Grid.
//
// # Concurrency
//
// Expr values are immutable and may be shared between goroutines. The Parallel
// variants of Generate2D and Generate3D split the x axis across a Runner such as
// *workerpool.Pool.
package noise
