// Copyright 2023 Google Inc. All rights reserved.
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

package gn2bp

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/blueprint/pathtools"
	"github.com/google/blueprint/proptools"
)

// BpInputs is everything the Android.bp writer consumes from the GN graph.
// Cmdline records how the file was produced so it can be regenerated.
type BpInputs struct {
	Cmdline       string              `json:"cmdline"`
	Srcs          []string            `json:"srcs"`
	Cflags        []string            `json:"cflags"`
	CflagsCC      []string            `json:"cflags_cc"`
	ArchSrcs      map[string][]string `json:"arch_srcs"`
	Defines       []string            `json:"defines"`
	DmSrcs        []string            `json:"dm_srcs"`
	NanobenchSrcs []string            `json:"nanobench_srcs"`
}

// Write stores the inputs as indented JSON. Flag lists keep the order their
// curation produced; everything else is already sorted by the callers.
func (b *BpInputs) Write(path string, args []string) error {
	b.Cmdline = strings.Join(append([]string{"gn2bp"}, proptools.ShellEscapeList(args)...), " ")

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(b); err != nil {
		return err
	}
	return pathtools.WriteFileIfChanged(path, buf.Bytes(), 0666)
}

// SortedKeys flattens a string-set accumulator for emission.
func SortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return sortedUnique(keys)
}
