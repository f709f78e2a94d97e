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

package pseudo

import (
	"github.com/sirupsen/logrus"

	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/id"
	"github.com/ministryofjustice/hmpps-form-engine/registry"
	"github.com/ministryofjustice/hmpps-form-engine/traverse"
)

// Registry is the pseudo-node world's content-addressed store (spec
// §4.2's NodeRegistry, instantiated for pseudo-nodes rather than AST
// nodes as spec §2 item 2 calls for: "Two instances exist per
// compile: AST and pseudo.").
type Registry = registry.Registry[*Node]

// NewRegistry returns an empty pseudo-node Registry.
func NewRegistry() *Registry {
	return registry.New[*Node](Equal)
}

type builder struct {
	gen   *id.Generator
	reg   *Registry
	byKey map[string]*Node
}

func (b *builder) get(kind Kind, key string) *Node {
	dk := string(kind) + "\x00" + key
	if n, ok := b.byKey[dk]; ok {
		return n
	}
	n := New(b.gen, kind, key, "")
	b.byKey[dk] = n
	_ = b.reg.Register(n.id, n)
	return n
}

func (b *builder) getAnswer(key, fieldNodeID string) *Node {
	dk := string(Answer) + "\x00" + key
	if n, ok := b.byKey[dk]; ok {
		if fieldNodeID != "" && n.FieldNodeID == "" {
			n.FieldNodeID = fieldNodeID
		}
		return n
	}
	n := New(b.gen, Answer, key, fieldNodeID)
	b.byKey[dk] = n
	_ = b.reg.Register(n.id, n)
	return n
}

// Discover scans root for field blocks and reference expressions and
// emits the POST/ANSWER/DATA/QUERY/PARAMS pseudo-nodes spec §4.8
// describes. Every field block produces a POST and an ANSWER
// pseudo-node up front; reference expressions are then scanned so
// that authored Post(...)/Answer(...)/Data(...)/Query(...)/Params(...)
// references that don't correspond 1:1 to a local field still get a
// pseudo-node (spec §4.8 items 2-3, and the cross-step ANSWER case in
// item 1).
func Discover(gen *id.Generator, root ast.Node, log *logrus.Logger) *Registry {
	b := &builder{gen: gen, reg: NewRegistry(), byKey: make(map[string]*Node)}

	// Phase 1: every field block gets a POST and ANSWER pseudo-node,
	// keyed by its (possibly expression-typed) code.
	traverse.Walk(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			blk, ok := n.(*ast.Block)
			if !ok || !blk.IsField() || blk.Code.IsNil() {
				return traverse.Continue
			}
			key := StaticKeyFromValue(blk.Code)
			b.get(Post, key)
			b.getAnswer(key, blk.ID())
			return traverse.Continue
		},
	})

	// Phase 2: every reference expression contributes a pseudo-node
	// for whichever value source it names.
	traverse.Walk(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			ref, ok := n.(*ast.Reference)
			if !ok {
				return traverse.Continue
			}
			key, ok := referenceKey(ref)
			if !ok {
				return traverse.Continue
			}
			switch ref.Root() {
			case "post":
				b.get(Post, key)
			case "data":
				b.get(Data, key)
			case "query":
				b.get(Query, key)
			case "params":
				b.get(Params, key)
			case "answers":
				if key == "@self" {
					return traverse.Continue
				}
				b.getAnswer(key, "")
			}
			return traverse.Continue
		},
	})

	if log != nil {
		log.WithField("pseudoNodes", b.reg.Len()).Debug("pseudo-node discovery complete")
	}
	return b.reg
}

func referenceKey(ref *ast.Reference) (string, bool) {
	if len(ref.Path) < 2 {
		return "", false
	}
	seg := ref.Path[1]
	if seg.IsDynamic() {
		return dynamicKey(seg.Dynamic), true
	}
	return seg.Literal, true
}
