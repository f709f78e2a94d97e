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
	"github.com/ministryofjustice/hmpps-form-engine/pseudo"
	"github.com/ministryofjustice/hmpps-form-engine/traverse"
)

// WireAnswers wires every field block's ANSWER pseudo-node to its data
// source, default value, and onLoad lifecycle, plus the field's own
// self-reference (spec §4.10.2). This is a non-fatal, best-effort
// pass: a field whose ANSWER pseudo-node wasn't discovered (it has no
// code, or discovery was skipped) is simply left unwired rather than
// failing the whole compile; pseudo.Discover, run over the same root,
// creates one for every coded field. scope may be nil (callers
// wiring a bare subtree with no enclosing step/journey); lifecycle
// edges are then simply skipped, per spec §4.11's graceful-degradation
// rule.
func WireAnswers(root ast.Node, pseudoReg *pseudo.Registry, scope *ScopeIndex, g *graph.DependencyGraph) {
	traverse.Walk(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			blk, ok := n.(*ast.Block)
			if !ok || !blk.IsField() || blk.Code.IsNil() {
				return traverse.Continue
			}
			key := pseudo.StaticKeyFromValue(blk.Code)
			answer := findPseudo(pseudoReg, pseudo.Answer, key)
			if answer == nil {
				return traverse.Continue
			}

			// Data source is exclusive (spec §8 property 8): a field
			// with a formatPipeline wires only from the pipeline, never
			// also from POST.
			switch {
			case blk.FormatPipeline != nil:
				_ = g.AddEdge(blk.FormatPipeline.ID(), answer.ID(), graph.DataFlow, nil)
			default:
				if post := findPseudo(pseudoReg, pseudo.Post, key); post != nil {
					_ = g.AddEdge(post.ID(), answer.ID(), graph.DataFlow, nil)
				}
			}

			if blk.DefaultValue.Kind == ast.NodeKind && blk.DefaultValue.Node != nil {
				_ = g.AddEdge(blk.DefaultValue.Node.ID(), answer.ID(), graph.DataFlow, nil)
			}

			if scope != nil {
				for _, t := range scope.OnLoadChain(blk.ID()) {
					_ = g.AddEdge(t.ID(), answer.ID(), graph.EffectFlow, nil)
				}
			}

			if blk.Value.Kind == ast.NodeKind && blk.Value.Node != nil {
				if ref, ok := blk.Value.Node.(*ast.Reference); ok && ref.Root() == "answers" {
					if k, static := ref.StaticKey(); static && k == "@self" {
						_ = g.AddEdge(answer.ID(), ref.ID(), graph.DataFlow, nil)
					}
				}
			}
			return traverse.Continue
		},
	})
}

// findPseudo returns the pseudo-node of the given kind/key, if
// discovered, or nil.
func findPseudo(reg *pseudo.Registry, kind pseudo.Kind, key string) *pseudo.Node {
	for _, e := range reg.GetAll() {
		if e.Node.PKind == kind && e.Node.Key == key {
			return e.Node
		}
	}
	return nil
}
