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
	"fmt"
	"sort"
	"strings"

	"github.com/google/blueprint/pathtools"
)

// Defines that must be on every input. Both are stripped before writing, the
// first because the Android build controls it, the second because it must not
// be exported; if either is missing the walk collected the wrong defines.
var requiredRemovals = []string{
	"NDEBUG",
	"SKIA_IMPLEMENTATION=1",
}

// Defines the Android build controls when building for Windows hosts.
var conditionalRemovals = []string{
	"WIN32_LEAN_AND_MEAN",
	"_HAS_EXCEPTIONS=0",
}

// WriteUserConfig renders the defines header and writes it in one step.
func WriteUserConfig(path string, defines map[string]bool) error {
	contents, err := RenderUserConfig(defines)
	if err != nil {
		return err
	}
	return pathtools.WriteFileIfChanged(path, contents, 0666)
}

// RenderUserConfig strips the defines the Android build controls itself and
// renders the rest as a guarded C header. Rendering is separate from writing
// so a run can validate every artifact before touching the filesystem.
func RenderUserConfig(defines map[string]bool) ([]byte, error) {
	for _, d := range requiredRemovals {
		if !defines[d] {
			return nil, fmt.Errorf("expected define %q missing from project description", d)
		}
		delete(defines, d)
	}
	for _, d := range conditionalRemovals {
		delete(defines, d)
	}

	sorted := make([]string, 0, len(defines))
	for d := range defines {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	buf := &bytes.Buffer{}
	fmt.Fprintln(buf, "// DO NOT MODIFY! This file is autogenerated by gn2bp.")
	fmt.Fprintln(buf, "// If need to change a define, modify SkUserConfigManual.h")
	fmt.Fprintln(buf, "#pragma once")
	fmt.Fprintln(buf, `#include "SkUserConfigManual.h"`)
	for _, d := range sorted {
		name, value, hasValue := strings.Cut(d, "=")
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "#ifndef", name)
		if hasValue {
			fmt.Fprintln(buf, "#define", name, value)
		} else {
			fmt.Fprintln(buf, "#define", name)
		}
		fmt.Fprintln(buf, "#endif")
	}

	return buf.Bytes(), nil
}
