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

import "github.com/ajroetker/go-noise/hwy"

func constant1D(t *tree, n *node, _ hwy.Vec[float32]) hwy.Vec[float32] {
	return splat(t.lanes, n.value)
}

func constant2D(t *tree, n *node, _, _ hwy.Vec[float32]) hwy.Vec[float32] {
	return splat(t.lanes, n.value)
}

func constant3D(t *tree, n *node, _, _, _ hwy.Vec[float32]) hwy.Vec[float32] {
	return splat(t.lanes, n.value)
}
