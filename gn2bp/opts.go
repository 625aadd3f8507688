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
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

const (
	srcPlaceholder = "$_src"
	srcRoot        = "src"
)

// getPathInfo stands in for GN's get_path_info builtin. The opts file only
// ever uses it to resolve the source root, so any other arguments mean the
// file changed in a way this tool doesn't understand and must not guess at.
var getPathInfo = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "path", Type: cty.String},
		{Name: "kind", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		if path := args[0].AsString(); path != "../src" {
			return cty.NilVal, fmt.Errorf("get_path_info: unexpected path %q", path)
		}
		if kind := args[1].AsString(); kind != "abspath" {
			return cty.NilVal, fmt.Errorf("get_path_info: unexpected kind %q", kind)
		}
		// GN wants absolute paths, but relative ones work best in the
		// Android.bp.
		return cty.StringVal(srcRoot), nil
	},
})

// GetArchSources reads the per-architecture source lists from the same opts
// file GN evaluates, rather than re-running GN once per architecture. The
// assignment-of-list-literal subset of GN the file uses is parsed as HCL
// attribute syntax and evaluated with get_path_info as the only callable.
func GetArchSources(path string) (map[string][]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	file, diags := hclsyntax.ParseConfig(src, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Functions: map[string]function.Function{
			"get_path_info": getPathInfo,
		},
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected body type %T", path, file.Body)
	}

	archs := make(map[string][]string)
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %s in %s: %w", name, path, diags)
		}
		if !val.Type().IsTupleType() && !val.Type().IsListType() {
			// Helper bindings like the source root itself aren't
			// architecture source lists.
			continue
		}
		var srcs []string
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if !elem.Type().Equals(cty.String) {
				return nil, fmt.Errorf("%s in %s must be a list of strings", name, path)
			}
			srcs = append(srcs, strings.ReplaceAll(elem.AsString(), srcPlaceholder, srcRoot))
		}
		archs[name] = srcs
	}
	return archs, nil
}
