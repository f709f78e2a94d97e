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

package ast

import "github.com/spf13/cast"

// Kind discriminates the shape of a property Value: a leaf scalar, a
// single AST node, an ordered sequence, or a keyed record whose leaves
// may themselves be nodes. This is the closed sum type spec §3
// describes property values as.
type Kind int

const (
	// Scalar is a string, number, boolean, or nil.
	Scalar Kind = iota
	// NodeKind wraps a single child Node.
	NodeKind
	// Seq is an ordered sequence of Values.
	Seq
	// Record is a keyed, ordered sequence of (name, Value) pairs.
	Record
)

// Value is one property value: exactly one of its payload fields is
// meaningful, selected by Kind.
type Value struct {
	Kind   Kind
	Scalar any
	Node   Node
	Items  []Value
	Fields []Field
}

// Field is one entry of a Record value.
type Field struct {
	Name  string
	Value Value
}

// ScalarValue wraps a leaf scalar (string, number, bool, or nil).
func ScalarValue(v any) Value { return Value{Kind: Scalar, Scalar: v} }

// NodeValue wraps a single child node. A nil node is valid and is
// treated as an absent value by traversal and normalizers alike.
func NodeValue(n Node) Value { return Value{Kind: NodeKind, Node: n} }

// SeqValue wraps an ordered sequence of values.
func SeqValue(items ...Value) Value { return Value{Kind: Seq, Items: items} }

// RecordValue wraps a keyed, ordered record.
func RecordValue(fields ...Field) Value { return Value{Kind: Record, Fields: fields} }

// Nil is the absent/undefined value: a nil scalar.
var Nil = ScalarValue(nil)

// IsNil reports whether v is the absent value (a nil scalar, or a
// NodeKind wrapping a nil Node).
func (v Value) IsNil() bool {
	switch v.Kind {
	case Scalar:
		return v.Scalar == nil
	case NodeKind:
		return v.Node == nil
	}
	return false
}

// AsString coerces a scalar Value to a string using spf13/cast, the
// same coercion library the teacher's row/value handling relies on.
// It is used when a field's code or a formatter argument needs
// stringifying for key purposes; callers that need to preserve an
// expression-typed code untouched should check v.Kind == NodeKind
// first.
func (v Value) AsString() string {
	if v.Kind != Scalar {
		return ""
	}
	return cast.ToString(v.Scalar)
}

// PropertyEntry is one (name, value) pair of a node's ordered property
// map.
type PropertyEntry struct {
	Name  string
	Value Value
}

// Properties is a node's ordered property map. Order is significant:
// it is both the traversal order (spec §4.4) and part of what makes
// compilation deterministic (spec §8.1).
type Properties []PropertyEntry
