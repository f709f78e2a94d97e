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

// WireDataSources wires every REFERENCE expression to the pseudo-node
// that produces the value it names (spec §4.10.4): post/data/query/
// params references wire from the matching pseudo-node of that kind;
// answers references to a key other than "@self" (cross-step or
// cross-journey answer lookups, spec §8 S4) wire from the ANSWER
// pseudo-node for that key. A reference naming a source with no
// corresponding pseudo-node (discovery found nothing for it — e.g. a
// dynamic key that never matched a field) is left unwired: this is a
// MissingCollaborator-class condition the caller surfaces as a warning,
// never a fatal error (spec §4.11).
//
// The same pseudo-node is also wired straight to every enclosing
// expression node the reference sits beneath — a CONDITIONAL, FORMAT,
// LOGIC, or PIPELINE wrapping it, not just the REFERENCE leaf itself —
// since spec §4.10.4 ties DATA_FLOW edges to "its REFERENCE
// descendants", not only to a direct REFERENCE property. Consumers
// that only ever look at the compound expression's own dependencies
// (never walking down to find the REFERENCE) still see what feeds it.
//
// For a 'data' reference specifically, every onLoad transition in the
// reference's scope (spec §4.10.3) also gets an EFFECT_FLOW edge into
// the DATA pseudo-node, since a data source may only be populated by
// one of those transitions running first. scope may be nil (a bare
// subtree with no enclosing step/journey); those edges are then simply
// skipped (spec §4.11, ScopeResolutionFailure degrades to no edges).
func WireDataSources(root ast.Node, pseudoReg *pseudo.Registry, scope *ScopeIndex, g *graph.DependencyGraph) []string {
	var unresolved []string
	seen := map[[2]string]bool{}
	traverse.Walk(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			ref, ok := n.(*ast.Reference)
			if !ok {
				return traverse.Continue
			}
			kind, key, ok := sourceFor(ref)
			if !ok {
				return traverse.Continue
			}
			node := findPseudo(pseudoReg, kind, key)
			if node == nil {
				unresolved = append(unresolved, ref.ID())
				return traverse.Continue
			}
			_ = g.AddEdge(node.ID(), ref.ID(), graph.DataFlow, nil)

			for _, ancestor := range ctx.Ancestors {
				if ancestor.Family() != ast.Expression {
					continue
				}
				pair := [2]string{node.ID(), ancestor.ID()}
				if seen[pair] {
					continue
				}
				seen[pair] = true
				_ = g.AddEdge(node.ID(), ancestor.ID(), graph.DataFlow, nil)
			}

			if kind == pseudo.Data && scope != nil {
				for _, t := range scope.OnLoadChain(ref.ID()) {
					_ = g.AddEdge(t.ID(), node.ID(), graph.EffectFlow, nil)
				}
			}
			return traverse.Continue
		},
	})
	return unresolved
}

func sourceFor(ref *ast.Reference) (pseudo.Kind, string, bool) {
	key, ok := ref.StaticKey()
	dynamicSeg := len(ref.Path) > 1 && ref.Path[1].IsDynamic()
	if !ok && !dynamicSeg {
		return "", "", false
	}
	var resolvedKey string
	if dynamicSeg {
		resolvedKey = pseudo.StaticKeyFromValue(ast.NodeValue(ref.Path[1].Dynamic))
	} else {
		resolvedKey = key
	}
	switch ref.Root() {
	case "post":
		return pseudo.Post, resolvedKey, true
	case "data":
		return pseudo.Data, resolvedKey, true
	case "query":
		return pseudo.Query, resolvedKey, true
	case "params":
		return pseudo.Params, resolvedKey, true
	case "answers":
		if resolvedKey == "@self" {
			return "", "", false
		}
		return pseudo.Answer, resolvedKey, true
	}
	return "", "", false
}
