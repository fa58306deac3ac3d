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

// MaskAnd returns the lane-wise AND of two masks.
func MaskAnd[T Lanes](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.bits[i] && b.bits[i]
	}
	return Mask[T]{bits: bits}
}

// MaskOr returns the lane-wise OR of two masks.
func MaskOr[T Lanes](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.bits[i] || b.bits[i]
	}
	return Mask[T]{bits: bits}
}

// MaskNot inverts every lane of the mask.
func MaskNot[T Lanes](mask Mask[T]) Mask[T] {
	bits := make([]bool, len(mask.bits))
	for i, b := range mask.bits {
		bits[i] = !b
	}
	return Mask[T]{bits: bits}
}

// RebindMask reuses a mask computed on T lanes to select U lanes of the same
// count, e.g. a float32 comparison choosing between int32 hashes:
//
//	upper := hwy.GreaterThan(x0, y0)
//	i1 := hwy.IfThenElse(hwy.RebindMask[int32](upper), iNext, i)
func RebindMask[U, T Lanes](mask Mask[T]) Mask[U] {
	return Mask[U]{bits: mask.bits}
}
