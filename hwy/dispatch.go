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

package hwy

import (
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel represents the instruction set vectors are sized for.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, one float32 lane per vector.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline, 128-bit).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// scalarWidth is the register width used when no vector unit is available: a
// single float32.
const scalarWidth = 4

// currentLevel and currentWidth are set by init() in dispatch_*.go files.
var (
	currentLevel DispatchLevel
	currentWidth = scalarWidth
)

// CurrentLevel returns the instruction set vectors are sized for.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current level,
// e.g. "avx2", "neon", "scalar".
func CurrentName() string {
	return currentLevel.String()
}

func setLevel(level DispatchLevel, width int) {
	currentLevel = level
	currentWidth = width
}

// NoSimdEnv reports whether HWY_NO_SIMD asks for the scalar level.
// "0" and "false" keep the detected level; any other non-empty value forces scalar.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	on, err := strconv.ParseBool(val)
	return err != nil || on
}

// MaxLanes returns the number of lanes of type T that fit the current width,
// never less than one.
//
// For example, with AVX2 (256 bits / 32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
func MaxLanes[T Lanes]() int {
	var dummy T
	return max(currentWidth/int(unsafe.Sizeof(dummy)), 1)
}
