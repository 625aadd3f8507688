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

// gn2bp generates the Android.bp inputs and SkUserConfig.h for Skia from its
// GN configuration. Run from the top of a Skia checkout.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/blueprint/pathtools"

	"android/gn2bp/gn2bp"
)

type config struct {
	// Path to the gn binary to invoke.
	gnCmd string
	// Build arguments for the Android frameworks configuration.
	gnArgs map[string]string
	// Root target the source, define and flag walks start from.
	target string
	// File holding the per-architecture source lists.
	optsFile string
	// Output paths.
	userConfig string
	bpInputs   string
}

func defaultConfig(gnCmd string) config {
	return config{
		gnCmd: gnCmd,
		gnArgs: map[string]string{
			"is_official_build": "true",
			"skia_enable_tools": "true",
			"skia_use_libheif":  "true",
			"skia_use_vulkan":   "true",
			"target_cpu":        `"none"`,
			"target_os":         `"android"`,
		},
		target:     "//:skia",
		optsFile:   "gn/opts.gni",
		userConfig: "include/config/SkUserConfig.h",
		bpInputs:   "Android.bp.json",
	}
}

func main() {
	flags := flag.NewFlagSet("gn2bp", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(flags.Output(), "  %s [-gn <path>]\n", os.Args[0])
		fmt.Fprintln(flags.Output())
		flags.PrintDefaults()
	}

	gnCmd := flags.String("gn", "gn", "path to the gn binary")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "unused argument detected: %v\n", flags.Args())
		flags.Usage()
		os.Exit(2)
	}

	if err := run(defaultConfig(*gnCmd)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	project, err := gn2bp.GenerateProject(cfg.gnCmd, cfg.gnArgs)
	if err != nil {
		return err
	}

	root, ok := project.Targets[cfg.target]
	if !ok {
		return fmt.Errorf("root target %q not in project description", cfg.target)
	}

	// Seed each accumulator with the root target's own values, then pull in
	// everything its non-vendored dependencies contribute (optional Skia
	// components, codecs, etc).
	srcs := map[string]bool{}
	cflags := map[string]bool{}
	cflagsCC := map[string]bool{}
	defines := map[string]bool{}
	gn2bp.Union(srcs, root.Sources)
	gn2bp.Union(cflags, root.CFlags)
	gn2bp.Union(cflagsCC, root.CFlagsCC)
	gn2bp.Union(defines, root.Defines)

	for attr, acc := range map[gn2bp.Attribute]map[string]bool{
		gn2bp.Sources:  srcs,
		gn2bp.CFlags:   cflags,
		gn2bp.CFlagsCC: cflagsCC,
		gn2bp.Defines:  defines,
	} {
		if err := project.CollectTransitive(cfg.target, attr, acc, ""); err != nil {
			return err
		}
	}

	// Tool sources are collected separately so the library lists stay clean;
	// everything reached through the main target is already covered above.
	dmSrcs := map[string]bool{}
	if err := project.CollectTransitive("//:dm", gn2bp.Sources, dmSrcs, "skia"); err != nil {
		return err
	}
	nanobenchSrcs := map[string]bool{}
	if err := project.CollectTransitive("//:nanobench", gn2bp.Sources, nanobenchSrcs, "skia"); err != nil {
		return err
	}

	archSrcs, err := gn2bp.GetArchSources(cfg.optsFile)
	if err != nil {
		return err
	}

	// Render the header before writing anything so a bad define set can't
	// leave a half-updated tree. RenderUserConfig also strips the defines
	// the Android build controls, which the bp writer doesn't want either.
	userConfig, err := gn2bp.RenderUserConfig(defines)
	if err != nil {
		return err
	}

	inputs := &gn2bp.BpInputs{
		Srcs:          gn2bp.SortedKeys(srcs),
		Cflags:        gn2bp.CleanupCFlags(cflags),
		CflagsCC:      gn2bp.CleanupCCFlags(cflagsCC),
		ArchSrcs:      archSrcs,
		Defines:       gn2bp.SortedKeys(defines),
		DmSrcs:        gn2bp.SortedKeys(dmSrcs),
		NanobenchSrcs: gn2bp.SortedKeys(nanobenchSrcs),
	}
	if err := inputs.Write(cfg.bpInputs, os.Args[1:]); err != nil {
		return err
	}

	return pathtools.WriteFileIfChanged(cfg.userConfig, userConfig, 0666)
}
