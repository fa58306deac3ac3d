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

// GatherIndex loads src[indices[i]] into lane i.
// Lanes whose index is out of bounds (negative or >= len(src)) are zero.
func GatherIndex[T Lanes, I ~int32 | ~int64](src []T, indices Vec[I]) Vec[T] {
	result := make([]T, len(indices.data))
	for i, idx := range indices.data {
		if idx >= 0 && int(idx) < len(src) {
			result[i] = src[idx]
		}
	}
	return Vec[T]{data: result}
}

// IndicesIota returns the index vector [0, 1, 2, ..., numLanes-1].
func IndicesIota[I ~int32 | ~int64](numLanes int) Vec[I] {
	data := make([]I, numLanes)
	for i := range data {
		data[i] = I(i)
	}
	return Vec[I]{data: data}
}
