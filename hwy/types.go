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

// Package hwy provides portable vector operations with runtime CPU dispatch.
//
// Kernels are written once against Vec and Mask and run at whatever width the
// running processor supports. The widest float32 register available is detected
// once in init() with golang.org/x/sys/cpu:
//
//	AVX-512F -> 64 bytes (16 float32 lanes)
//	AVX2     -> 32 bytes ( 8 float32 lanes)
//	SSE2     -> 16 bytes ( 4 float32 lanes)
//	NEON     -> 16 bytes ( 4 float32 lanes)
//	other    ->  4 bytes ( 1 float32 lane)
//
// Basic usage:
//
//	a := hwy.Load(data1)
//	b := hwy.Load(data2)
//	hwy.Store(hwy.MulAdd(a, b, hwy.Set[float32](1)), out)
//
// Every operation is lane-wise, so a kernel produces the same value for a lane no
// matter how many lanes the vector has. Set HWY_NO_SIMD=1 to force single-lane
// vectors.
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in vector lanes.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable vector handle.
//
// Vec instances should not be created directly; use Load, Set or SetN instead.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the lanes of the vector. The slice must not be modified.
func (v Vec[T]) Data() []T {
	return v.data
}

// Mask is the result of a comparison, one bit per lane. It selects lanes in
// IfThenElse.
type Mask[T Lanes] struct {
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	return count
}
