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

// Package ast models the compiled form definition: structural nodes
// (journey/step/block), expression nodes, function nodes, the
// NodeFactory that interns them, and the StructuralTraverser's node
// contract. Pseudo-nodes are a deliberately separate sum type and live
// in the sibling pseudo package (spec §4.8, design note in spec §9).
package ast

import "github.com/ministryofjustice/hmpps-form-engine/id"

// Family is the outermost discriminant of the AST sum type: Structure,
// Expression, or Function (spec §3).
type Family int

const (
	Structure Family = iota
	Expression
	FunctionFamily
)

func (f Family) String() string {
	switch f {
	case Structure:
		return "Structure"
	case Expression:
		return "Expression"
	case FunctionFamily:
		return "Function"
	default:
		return "Unknown"
	}
}

// Node is the interface every AST node implements, whatever family or
// variant it belongs to. Registries, the traverser, and the wiring
// passes only ever see this interface; concrete variants are reached
// via type switches, never reflection.
type Node interface {
	// ID returns this node's process-unique, category-prefixed id.
	ID() string
	// Family reports which of the three AST sum-type branches this
	// node belongs to.
	Family() Family
	// NodeType names the concrete variant, e.g. "JOURNEY", "REFERENCE",
	// "TRANSFORMER". It is the discriminant within Family.
	NodeType() string
	// Properties returns this node's ordered child properties, used by
	// the StructuralTraverser and by DebugString. Implementations must
	// return the properties in a fixed, deterministic order.
	Properties() Properties
	// DebugString renders a human-readable, indented tree for
	// diagnostics and test failure output (spec §9 enrichment, modeled
	// on the teacher's sql.DebugString).
	DebugString(depth int) string
	// Clone returns a deep copy of this node (and, transitively, every
	// node it owns via a NodeKind/Seq/Record property) with fresh ids
	// drawn from gen. Scalar properties are copied by value. Used by
	// AttachValidationBlockCode (spec §4.5.4) to deep-clone
	// expression-typed field codes.
	Clone(gen IDGenerator) Node
}

// IDGenerator is the subset of id.Generator the ast package depends
// on, kept as a narrow interface so node types only need the single
// method they actually call.
type IDGenerator interface {
	Next(category id.Category) string
}
