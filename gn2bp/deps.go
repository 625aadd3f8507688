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
	"fmt"
	"strings"
)

// Attribute selects which of a target's lists the walker collects.
type Attribute string

const (
	Sources  Attribute = "sources"
	Defines  Attribute = "defines"
	CFlags   Attribute = "cflags"
	CFlagsCC Attribute = "cflags_cc"
)

func (t Target) attribute(attr Attribute) []string {
	switch attr {
	case Sources:
		return t.Sources
	case Defines:
		return t.Defines
	case CFlags:
		return t.CFlags
	case CFlagsCC:
		return t.CFlagsCC
	}
	return nil
}

const (
	// Vendored dependencies are listed as static or shared libs in the
	// Android.bp instead of being compiled in.
	thirdPartyMarker = "third_party"
	// CPU-specific targets are read from the opts file instead of the
	// project description.
	cpuSpecificMarker = "none"
)

// Union adds values to the accumulator with any leading path separators
// stripped, the form GN paths take before they are made tree-relative.
func Union(acc map[string]bool, values []string) {
	for _, v := range values {
		acc[strings.TrimLeft(v, "/")] = true
	}
}

// CollectTransitive unions the chosen attribute of every dependency
// reachable from root into acc, skipping vendored, CPU-specific and
// explicitly excluded branches. The root target's own values are not
// collected; callers seed the accumulator with Union when they want them.
func (p *ProjectDescription) CollectTransitive(root string, attr Attribute, acc map[string]bool, exclude string) error {
	visited := map[string]bool{root: true}
	return p.collect(root, attr, acc, exclude, visited)
}

func (p *ProjectDescription) collect(name string, attr Attribute, acc map[string]bool, exclude string, visited map[string]bool) error {
	target, ok := p.Targets[name]
	if !ok {
		return fmt.Errorf("unknown target %q in project description", name)
	}
	for _, dep := range target.Deps {
		if strings.Contains(dep, thirdPartyMarker) {
			continue
		}
		if strings.Contains(dep, cpuSpecificMarker) {
			continue
		}
		if exclude != "" && strings.Contains(dep, exclude) {
			continue
		}
		if visited[dep] {
			continue
		}
		visited[dep] = true
		depTarget, ok := p.Targets[dep]
		if !ok {
			return fmt.Errorf("target %q depends on unknown target %q", name, dep)
		}
		Union(acc, depTarget.attribute(attr))
		if err := p.collect(dep, attr, acc, exclude, visited); err != nil {
			return err
		}
	}
	return nil
}
