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

// Package pseudo models pseudo-nodes: compile-time stand-ins for
// runtime value-sources (posted data, loaded data, URL params, stored
// answers). They are not AST nodes — spec §9 is explicit that they
// must stay a separate sum type from ast.Node so the AST's type
// hierarchy stays closed — and so they live in their own package with
// their own registry, sharing only the generic registry.Registry store
// and the id shape.
package pseudo

import (
	"fmt"

	"github.com/mitchellh/hashstructure"

	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/id"
)

// Kind discriminates a pseudo-node's source.
type Kind string

const (
	Post   Kind = "POST"
	Answer Kind = "ANSWER"
	Data   Kind = "DATA"
	Query  Kind = "QUERY"
	Params Kind = "PARAMS"
)

// Node is a pseudo-node: its Key is the thing it stands for (a field
// code for POST/ANSWER/DATA, a param name for QUERY/PARAMS).
// FieldNodeID is only ever set on an ANSWER node, and only when the
// originating field block is present in this compile's AST (spec
// §3: "Pseudo-nodes").
type Node struct {
	id          string
	PKind       Kind
	Key         string
	FieldNodeID string
}

func (n *Node) ID() string { return n.id }

// DedupKey is the (kind, key) pair pseudo-node discovery collapses
// duplicates on (spec §4.8: "Duplicates by key are collapsed to a
// single pseudo-node").
func (n *Node) DedupKey() string { return string(n.PKind) + "\x00" + n.Key }

func (n *Node) DebugString(depth int) string {
	pad := ""
	for i := 0; i < depth; i++ {
		pad += "  "
	}
	if n.FieldNodeID != "" {
		return fmt.Sprintf("%s%s(%s, field=%s)", pad, n.PKind, n.Key, n.FieldNodeID)
	}
	return fmt.Sprintf("%s%s(%s)", pad, n.PKind, n.Key)
}

func equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.PKind == b.PKind && a.Key == b.Key && a.FieldNodeID == b.FieldNodeID
}

// Equal exports the equality used by the pseudo registry for
// idempotent re-registration, mirroring registry.Registry's generic
// equal func parameter.
func Equal(a, b *Node) bool { return equal(a, b) }

// StaticKeyFromValue turns a field's Code or a reference's dynamic
// path segment into a pseudo-node key. Static scalar codes are
// stringified via ast.Value.AsString (spf13/cast under the hood).
// Expression-typed codes are keyed by a stable content hash of their
// DebugString rendering — the "expression value at discovery time"
// spec §3 calls for, without the core ever evaluating the expression
// (an explicit non-goal in spec §1): the key only needs to be stable
// and collision-resistant across nodes with structurally identical
// dynamic codes, not semantically meaningful at runtime.
func StaticKeyFromValue(v ast.Value) string {
	if v.Kind == ast.NodeKind && v.Node != nil {
		return dynamicKey(v.Node)
	}
	return v.AsString()
}

func dynamicKey(n ast.Node) string {
	h, err := hashstructure.Hash(n.DebugString(0), nil)
	if err != nil {
		// hashstructure only fails on unsupported types; DebugString
		// always returns a plain string, so this is unreachable in
		// practice. Fall back to the node id so discovery still makes
		// forward progress rather than panicking.
		return "expr:" + n.ID()
	}
	return fmt.Sprintf("expr:%x", h)
}

// New constructs a pseudo-node, drawing its id from gen.
func New(gen *id.Generator, kind Kind, key, fieldNodeID string) *Node {
	return &Node{id: gen.Next(id.CompilePseudo), PKind: kind, Key: key, FieldNodeID: fieldNodeID}
}
