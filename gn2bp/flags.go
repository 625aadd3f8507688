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
	"sort"
	"strings"
)

// Warning suppressions needed to build third_party/vulkanmemoryallocator.
var warningSuppressions = []string{
	"-Wno-implicit-fallthrough",
	"-Wno-missing-field-initializers",
	"-Wno-thread-safety-analysis",
	"-Wno-unused-variable",
}

var fixedCFlags = []string{
	"-fvisibility=hidden",
	"-D_FORTIFY_SOURCE=1",
	"-DSKIA_DLL",
	"-DSKIA_IMPLEMENTATION=1",
	"-DATRACE_TAG=ATRACE_TAG_VIEW",
}

// CleanupCFlags reduces the cflags collected from the project description to
// the warning flags, then unions in the fixed additions. _FORTIFY_SOURCE must
// be undefined before the -D above redefines it, so -U_FORTIFY_SOURCE goes
// first, ahead of the sorted remainder.
func CleanupCFlags(cflags map[string]bool) []string {
	flags := warningFlags(cflags)
	flags = append(flags, warningSuppressions...)
	flags = append(flags, fixedCFlags...)
	flags = sortedUnique(flags)
	return append([]string{"-U_FORTIFY_SOURCE"}, flags...)
}

// CleanupCCFlags does the same for cflags_cc: warning flags only, plus
// exception support.
func CleanupCCFlags(cflagsCC map[string]bool) []string {
	flags := warningFlags(cflagsCC)
	flags = append(flags, "-fexceptions")
	return sortedUnique(flags)
}

func warningFlags(flags map[string]bool) []string {
	var ret []string
	for f := range flags {
		if strings.HasPrefix(f, "-W") {
			ret = append(ret, f)
		}
	}
	return ret
}

func sortedUnique(list []string) []string {
	if len(list) == 0 {
		return list
	}
	sort.Strings(list)
	j := 0
	for i := 1; i < len(list); i++ {
		if list[i] == list[j] {
			continue
		}
		j++
		list[j] = list[i]
	}
	return list[:j+1]
}
