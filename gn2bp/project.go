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

// Package gn2bp translates a GN project description into the pieces an
// Android.bp needs: source and flag lists gathered from the dependency
// graph, per-architecture source lists read from the opts file, and the
// generated SkUserConfig.h defines header.
package gn2bp

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Target is a single named build unit from the GN project description.
type Target struct {
	Deps     []string `json:"deps"`
	Sources  []string `json:"sources"`
	Defines  []string `json:"defines"`
	CFlags   []string `json:"cflags"`
	CFlagsCC []string `json:"cflags_cc"`
}

// ProjectDescription is the JSON document written by "gn gen --ide=json".
type ProjectDescription struct {
	Targets map[string]Target `json:"targets"`
}

// GNArgs serializes a build-argument map into the --args value gn expects.
// Tokens are sorted so the same configuration always produces the same
// command line.
func GNArgs(gnArgs map[string]string) string {
	args := make([]string, 0, len(gnArgs))
	for k, v := range gnArgs {
		args = append(args, k+"="+v)
	}
	sort.Strings(args)
	return strings.Join(args, " ")
}

// GenerateProject runs gn with the given build arguments and loads the JSON
// project description it writes. The output is staged in a temporary
// directory that is removed before returning.
func GenerateProject(gnCmd string, gnArgs map[string]string) (*ProjectDescription, error) {
	tmp, err := os.MkdirTemp("", "gn2bp")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	cmd := exec.Command(gnCmd, "gen", tmp, "--args="+GNArgs(gnArgs), "--ide=json")
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %q failed: %w", strings.Join(cmd.Args, " "), err)
	}

	return LoadProject(filepath.Join(tmp, "project.json"))
}

// LoadProject decodes a project description from an existing project.json.
func LoadProject(path string) (*ProjectDescription, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var project ProjectDescription
	if err := json.NewDecoder(f).Decode(&project); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &project, nil
}
