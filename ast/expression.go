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

import (
	"strings"

	"github.com/ministryofjustice/hmpps-form-engine/id"
)

// PathSegment is one element of a Reference's path. Most segments are
// a literal string ("post", "query", a field code); a field whose code
// is itself computed produces a Dynamic segment instead (spec §4.5.3:
// "the code may itself be an expression node; it is embedded, not
// stringified").
type PathSegment struct {
	Literal string
	Dynamic Node
}

// IsDynamic reports whether this segment is a computed expression
// rather than a literal string.
func (p PathSegment) IsDynamic() bool { return p.Dynamic != nil }

func litSegs(parts ...string) []PathSegment {
	segs := make([]PathSegment, len(parts))
	for i, p := range parts {
		segs[i] = PathSegment{Literal: p}
	}
	return segs
}

// Reference is an expression whose value is looked up at runtime from
// one of the named value sources: post, query, params, data, answers
// (spec §1, §4.8).
type Reference struct {
	id   string
	Path []PathSegment
}

func (r *Reference) ID() string       { return r.id }
func (r *Reference) Family() Family   { return Expression }
func (r *Reference) NodeType() string { return "REFERENCE" }

// Root returns the first path segment's literal, e.g. "post", "data",
// "query", "params", "answers". Pseudo-node discovery keys on this.
func (r *Reference) Root() string {
	if len(r.Path) == 0 {
		return ""
	}
	return r.Path[0].Literal
}

// StaticKey returns the second path segment's literal and whether it
// is static (non-dynamic). Pseudo-node discovery and data/query/params
// wiring key on this (spec §4.8, §4.10.3).
func (r *Reference) StaticKey() (string, bool) {
	if len(r.Path) < 2 {
		return "", false
	}
	seg := r.Path[1]
	return seg.Literal, !seg.IsDynamic()
}

func (r *Reference) Properties() Properties {
	items := make([]Value, 0, len(r.Path))
	for _, seg := range r.Path {
		if seg.IsDynamic() {
			items = append(items, NodeValue(seg.Dynamic))
		} else {
			items = append(items, ScalarValue(seg.Literal))
		}
	}
	return Properties{{Name: "path", Value: SeqValue(items...)}}
}

func (r *Reference) DebugString(depth int) string {
	parts := make([]string, len(r.Path))
	for i, seg := range r.Path {
		if seg.IsDynamic() {
			parts[i] = "<dynamic>"
		} else {
			parts[i] = seg.Literal
		}
	}
	return indentf(depth, "REFERENCE(%s)\n", strings.Join(parts, "."))
}

func (r *Reference) Clone(gen IDGenerator) Node {
	clone := &Reference{id: gen.Next(id.CompileAST)}
	clone.Path = make([]PathSegment, len(r.Path))
	for i, seg := range r.Path {
		if seg.IsDynamic() {
			clone.Path[i] = PathSegment{Dynamic: seg.Dynamic.Clone(gen)}
		} else {
			clone.Path[i] = seg
		}
	}
	return clone
}

// Pipeline is an ordered sequence of transformer steps applied to an
// input expression (spec glossary, spec §4.5.3).
type Pipeline struct {
	id    string
	Input Node
	Steps []*Function
}

func (p *Pipeline) ID() string       { return p.id }
func (p *Pipeline) Family() Family   { return Expression }
func (p *Pipeline) NodeType() string { return "PIPELINE" }

func (p *Pipeline) Properties() Properties {
	return Properties{
		{Name: "input", Value: NodeValue(p.Input)},
		{Name: "steps", Value: nodeSeq(functionsToNodes(p.Steps))},
	}
}

func (p *Pipeline) DebugString(depth int) string {
	return indentf(depth, "PIPELINE\n%s", childDebug(depth, p.Properties()))
}

func (p *Pipeline) Clone(gen IDGenerator) Node {
	clone := &Pipeline{id: gen.Next(id.CompileAST)}
	if p.Input != nil {
		clone.Input = p.Input.Clone(gen)
	}
	for _, s := range p.Steps {
		clone.Steps = append(clone.Steps, s.Clone(gen).(*Function))
	}
	return clone
}

// Collection is an ordered list-literal expression.
type Collection struct {
	id    string
	Items []Value
}

func (c *Collection) ID() string       { return c.id }
func (c *Collection) Family() Family   { return Expression }
func (c *Collection) NodeType() string { return "COLLECTION" }

func (c *Collection) Properties() Properties {
	return Properties{{Name: "items", Value: SeqValue(c.Items...)}}
}

func (c *Collection) DebugString(depth int) string {
	return indentf(depth, "COLLECTION\n%s", childDebug(depth, c.Properties()))
}

func (c *Collection) Clone(gen IDGenerator) Node {
	clone := &Collection{id: gen.Next(id.CompileAST)}
	clone.Items = make([]Value, len(c.Items))
	for i, it := range c.Items {
		clone.Items[i] = cloneValue(it, gen)
	}
	return clone
}

// Conditional is an if/else expression: Condition selects between Then
// and Else.
type Conditional struct {
	id        string
	Condition Node
	Then      Value
	Else      Value
}

func (c *Conditional) ID() string       { return c.id }
func (c *Conditional) Family() Family   { return Expression }
func (c *Conditional) NodeType() string { return "CONDITIONAL" }

func (c *Conditional) Properties() Properties {
	return Properties{
		{Name: "condition", Value: NodeValue(c.Condition)},
		{Name: "then", Value: c.Then},
		{Name: "else", Value: c.Else},
	}
}

func (c *Conditional) DebugString(depth int) string {
	return indentf(depth, "CONDITIONAL\n%s", childDebug(depth, c.Properties()))
}

func (c *Conditional) Clone(gen IDGenerator) Node {
	clone := &Conditional{id: gen.Next(id.CompileAST)}
	if c.Condition != nil {
		clone.Condition = c.Condition.Clone(gen)
	}
	clone.Then = cloneValue(c.Then, gen)
	clone.Else = cloneValue(c.Else, gen)
	return clone
}

// Format applies a display pattern to an input expression (date/number
// formatting and similar).
type Format struct {
	id      string
	Input   Node
	Pattern string
}

func (f *Format) ID() string       { return f.id }
func (f *Format) Family() Family   { return Expression }
func (f *Format) NodeType() string { return "FORMAT" }

func (f *Format) Properties() Properties {
	return Properties{
		{Name: "input", Value: NodeValue(f.Input)},
		{Name: "pattern", Value: ScalarValue(f.Pattern)},
	}
}

func (f *Format) DebugString(depth int) string {
	return indentf(depth, "FORMAT(%s)\n%s", f.Pattern, childDebug(depth, f.Properties()))
}

func (f *Format) Clone(gen IDGenerator) Node {
	clone := &Format{id: gen.Next(id.CompileAST), Pattern: f.Pattern}
	if f.Input != nil {
		clone.Input = f.Input.Clone(gen)
	}
	return clone
}

// Validation wraps a condition function that must hold for a field's
// value. ResolvedBlockCode is attached by AttachValidationBlockCode
// (spec §4.5.4) and is nil until that pass runs, or for validations
// that live outside any field block (spec §8 property 7).
type Validation struct {
	id                string
	Rule              *Function
	Message           string
	ResolvedBlockCode Value
}

func (v *Validation) ID() string       { return v.id }
func (v *Validation) Family() Family   { return Expression }
func (v *Validation) NodeType() string { return "VALIDATION" }

func (v *Validation) Properties() Properties {
	props := Properties{
		{Name: "rule", Value: NodeValue(v.Rule)},
		{Name: "message", Value: ScalarValue(v.Message)},
	}
	if !v.ResolvedBlockCode.IsNil() {
		props = append(props, PropertyEntry{Name: "resolvedBlockCode", Value: v.ResolvedBlockCode})
	}
	return props
}

func (v *Validation) DebugString(depth int) string {
	return indentf(depth, "VALIDATION(%s)\n%s", v.Message, childDebug(depth, v.Properties()))
}

func (v *Validation) Clone(gen IDGenerator) Node {
	clone := &Validation{id: gen.Next(id.CompileAST), Message: v.Message}
	if v.Rule != nil {
		clone.Rule = v.Rule.Clone(gen).(*Function)
	}
	clone.ResolvedBlockCode = cloneValue(v.ResolvedBlockCode, gen)
	return clone
}

// LogicOperator names a boolean combinator.
type LogicOperator string

const (
	And LogicOperator = "AND"
	Or  LogicOperator = "OR"
	Not LogicOperator = "NOT"
)

// Logic is a boolean test expression over one or more operands (spec
// §3: "LOGIC/TEST").
type Logic struct {
	id       string
	Operator LogicOperator
	Operands []Node
}

func (l *Logic) ID() string       { return l.id }
func (l *Logic) Family() Family   { return Expression }
func (l *Logic) NodeType() string { return "LOGIC" }

func (l *Logic) Properties() Properties {
	return Properties{
		{Name: "operator", Value: ScalarValue(string(l.Operator))},
		{Name: "operands", Value: nodeSeq(l.Operands)},
	}
}

func (l *Logic) DebugString(depth int) string {
	return indentf(depth, "LOGIC(%s)\n%s", l.Operator, childDebug(depth, l.Properties()))
}

func (l *Logic) Clone(gen IDGenerator) Node {
	clone := &Logic{id: gen.Next(id.CompileAST), Operator: l.Operator}
	for _, o := range l.Operands {
		clone.Operands = append(clone.Operands, o.Clone(gen))
	}
	return clone
}
