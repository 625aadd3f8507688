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
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGNArgs(t *testing.T) {
	got := GNArgs(map[string]string{
		"target_os":         `"android"`,
		"is_official_build": "true",
		"target_cpu":        `"none"`,
	})
	want := `is_official_build=true target_cpu="none" target_os="android"`
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	err := os.WriteFile(path, []byte(`{
		"targets": {
			"//:skia": {
				"deps": ["//:core"],
				"sources": ["//src/skia_main.cc"]
			},
			"//:core": {
				"defines": ["SK_CORE"],
				"cflags": ["-Wall"],
				"cflags_cc": ["-Wextra"]
			}
		}
	}`), 0666)
	if err != nil {
		t.Fatal(err)
	}

	got, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	want := &ProjectDescription{
		Targets: map[string]Target{
			"//:skia": {
				Deps:    []string{"//:core"},
				Sources: []string{"//src/skia_main.cc"},
			},
			"//:core": {
				Defines:  []string{"SK_CORE"},
				CFlags:   []string{"-Wall"},
				CFlagsCC: []string{"-Wextra"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected project (-want +got):\n%s", diff)
	}
}

func TestLoadProjectMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	if err := os.WriteFile(path, []byte(`{"targets":`), 0666); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(path); err == nil {
		t.Fatal("expected parse error")
	}
}

// fakeGN writes a shell script that stands in for the gn binary, dropping a
// canned project.json into the output directory gn2bp hands it.
func fakeGN(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for gn")
	}
	path := filepath.Join(t.TempDir(), "gn")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateProject(t *testing.T) {
	gn := fakeGN(t, `#!/bin/sh
[ "$1" = "gen" ] || exit 1
cat > "$2/project.json" <<'EOF'
{"targets": {"//:skia": {"deps": []}}}
EOF
`)
	project, err := GenerateProject(gn, map[string]string{"target_os": `"android"`})
	if err != nil {
		t.Fatalf("GenerateProject failed: %v", err)
	}
	if _, ok := project.Targets["//:skia"]; !ok {
		t.Errorf("project is missing //:skia: %v", project.Targets)
	}
}

func TestGenerateProjectFails(t *testing.T) {
	gn := fakeGN(t, "#!/bin/sh\nexit 1\n")
	if _, err := GenerateProject(gn, nil); err == nil {
		t.Fatal("expected error from failing generator")
	}
}

func TestGenerateProjectNoOutput(t *testing.T) {
	// Exits zero but never writes project.json.
	gn := fakeGN(t, "#!/bin/sh\nexit 0\n")
	if _, err := GenerateProject(gn, nil); err == nil {
		t.Fatal("expected error when the generator writes no project.json")
	}
}
