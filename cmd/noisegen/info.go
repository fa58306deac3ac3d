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
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-noise/hwy"
	"github.com/ajroetker/go-noise/noise"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the detected CPU level and batch width",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "GOARCH:     %s\n", runtime.GOARCH)
			fmt.Fprintf(w, "Level:      %s (%d bytes)\n", hwy.CurrentName(), hwy.CurrentWidth())
			fmt.Fprintf(w, "Max lanes:  %d\n", hwy.MaxLanes[float32]())
			fmt.Fprintf(w, "Lanes:      %d\n", noise.Lanes())
			fmt.Fprintf(w, "No SIMD:    %t\n", hwy.NoSimdEnv())
			return nil
		},
	}
}
