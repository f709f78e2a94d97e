// Copyright 2024 Crown Copyright (Ministry of Justice)
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

package compile

import (
	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/graph"
	"github.com/ministryofjustice/hmpps-form-engine/traverse"
)

// WireStructural adds one STRUCTURAL edge per parent/child relationship
// in root's property graph (spec §4.10.1): edges run child -> parent
// (spec §3 graph invariant (b): "strictly go from immediate child to
// immediate parent"), annotated with the property name the child was
// reached under, and never cross into a formatPipeline subtree (that
// data-flow is carried entirely through pseudo-nodes, spec §4.6). This
// pass can never fail softly: a cycle here means the AST itself is
// malformed, which graph.AddEdge reports as errs.CycleInStructuralGraph.
func WireStructural(root ast.Node, g *graph.DependencyGraph) error {
	var firstErr error
	traverse.WalkWithOptions(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			g.AddNode(n.ID())
			if parent := ctx.Parent(); parent != nil {
				if err := g.AddEdge(n.ID(), parent.ID(), graph.Structural, map[string]any{
					"propertyName": ctx.PropertyName(),
				}); err != nil {
					firstErr = err
					return traverse.Stop
				}
			}
			return traverse.Continue
		},
	}, traverse.Options{ExcludeProperty: "formatPipeline"})
	return firstErr
}
