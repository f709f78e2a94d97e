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

// WirePipelineSteps adds a DATA_FLOW chain through every formatter
// pipeline's steps (spec §4.10.4): input -> steps[0] -> steps[1] -> ...
// -> the pipeline node itself, so a consumer of the pipeline's value
// transitively depends on every step in execution order, not just the
// pipeline's immediate Properties() edge to its input.
func WirePipelineSteps(root ast.Node, g *graph.DependencyGraph) {
	traverse.Walk(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			pl, ok := n.(*ast.Pipeline)
			if !ok {
				return traverse.Continue
			}
			prev := ""
			if pl.Input != nil {
				prev = pl.Input.ID()
			}
			for _, step := range pl.Steps {
				if prev != "" {
					_ = g.AddEdge(prev, step.ID(), graph.DataFlow, nil)
				}
				prev = step.ID()
			}
			if prev != "" {
				_ = g.AddEdge(prev, pl.ID(), graph.DataFlow, nil)
			}
			return traverse.Continue
		},
	})
}

// WireOnLoadEffects adds an EFFECT_FLOW chain between consecutive
// effects of every onLoad chain the ScopeIndex resolves (spec §4.7,
// §4.10.4): each step's own transitions run before the journey's, and
// within a chain transitions run in declared order, modelled as one
// edge per consecutive pair so the graph encodes a total order a
// scheduler can topologically sort.
func WireOnLoadEffects(journey *ast.Journey, scope *ScopeIndex, g *graph.DependencyGraph) {
	seen := map[string]bool{}
	wireChain := func(step *ast.Step) {
		chain := scope.onLoadChain(step)
		for i := 0; i+1 < len(chain); i++ {
			a, b := chain[i], chain[i+1]
			if a.Effect == nil || b.Effect == nil {
				continue
			}
			_ = g.AddEdge(a.Effect.ID(), b.Effect.ID(), graph.EffectFlow, nil)
		}
	}
	for _, step := range journey.Steps {
		if seen[step.ID()] {
			continue
		}
		seen[step.ID()] = true
		wireChain(step)
	}
	wireChain(nil)
}
