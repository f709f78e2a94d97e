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
	"github.com/ministryofjustice/hmpps-form-engine/registry"
	"github.com/ministryofjustice/hmpps-form-engine/traverse"
)

// ASTRegistry is the AST world's content-addressed store (spec §4.2's
// NodeRegistry, the sibling of pseudo.Registry).
type ASTRegistry = registry.Registry[ast.Node]

func nodeEqual(a, b ast.Node) bool { return a == b }

// NewASTRegistry returns an empty ASTRegistry.
func NewASTRegistry() *ASTRegistry {
	return registry.New[ast.Node](nodeEqual)
}

const (
	metaDepth              = "depth"
	metaIsAncestorOfStep   = "isAncestorOfStep"
	metaIsDescendantOfStep = "isDescendantOfStep"
	metaCurrentStep        = "isCurrentStep"
)

// Register walks root, populating reg with every node (spec §4.2) and
// meta with the per-node bookkeeping spec §4.3 describes: depth from
// root, isAncestorOfStep on every *ast.Journey, and, on every node
// below the Step whose Code equals currentStepCode, both
// isDescendantOfStep and isCurrentStep. The matching Step node itself
// carries neither flag, and no separate record of its id is kept.
//
// formatPipeline subtrees are excluded from the main descent here
// exactly as spec §4.6/§4.10.1 require: their nodes are registered
// (with depth) by a separate walk from the owning field, but they never
// count toward a step's descendant accounting, since their data-flow is
// wired through pseudo-nodes instead.
func Register(root ast.Node, reg *ASTRegistry, meta *registry.MetadataRegistry, currentStepCode string) (map[string]*ast.Step, error) {
	var regErr error
	var stepStack []*ast.Step
	stepOf := make(map[string]*ast.Step)

	traverse.WalkWithOptions(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			if err := reg.Register(n.ID(), n); err != nil {
				regErr = err
				return traverse.Stop
			}
			meta.Set(n.ID(), metaDepth, len(ctx.Ancestors))

			if len(stepStack) > 0 {
				cur := stepStack[len(stepStack)-1]
				stepOf[n.ID()] = cur
				if cur.Code == currentStepCode {
					meta.Set(n.ID(), metaIsDescendantOfStep, true)
					meta.Set(n.ID(), metaCurrentStep, true)
				}
			}

			if blk, ok := n.(*ast.Block); ok && blk.FormatPipeline != nil {
				base := len(ctx.Ancestors) + 1
				traverse.Walk(blk.FormatPipeline, traverse.Visitor{
					Enter: func(pn ast.Node, pctx *traverse.Context) traverse.Signal {
						if err := reg.Register(pn.ID(), pn); err != nil {
							regErr = err
							return traverse.Stop
						}
						meta.Set(pn.ID(), metaDepth, base+len(pctx.Ancestors))
						return traverse.Continue
					},
				})
				if regErr != nil {
					return traverse.Stop
				}
			}

			if step, ok := n.(*ast.Step); ok {
				stepStack = append(stepStack, step)
				return traverse.Continue
			}
			if isStructureAncestor(n) {
				meta.Set(n.ID(), metaIsAncestorOfStep, true)
			}
			return traverse.Continue
		},
		Exit: func(n ast.Node, ctx *traverse.Context) {
			if _, ok := n.(*ast.Step); ok && len(stepStack) > 0 {
				stepStack = stepStack[:len(stepStack)-1]
			}
		},
	}, traverse.Options{ExcludeProperty: "formatPipeline"})

	return stepOf, regErr
}

// isStructureAncestor reports whether n is a structural container that
// can sit above a Step (only *ast.Journey in this AST shape).
func isStructureAncestor(n ast.Node) bool {
	_, ok := n.(*ast.Journey)
	return ok
}
