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
	"fmt"

	"github.com/ministryofjustice/hmpps-form-engine/id"
)

// Trigger names when a Transition fires.
type Trigger string

const (
	OnLoad   Trigger = "onLoad"
	OnSubmit Trigger = "onSubmit"
	OnAction Trigger = "onAction"
)

// Transition is a declared lifecycle effect attached to a journey or
// step (spec glossary: "Transition"). Only OnLoad transitions feed the
// onLoad chain (spec §4.7); OnSubmit/OnAction transitions are carried
// for completeness but are not consumed by the core wiring passes.
type Transition struct {
	id      string
	Trig    Trigger
	Effect  *Function
	Label   string
}

func (t *Transition) ID() string     { return t.id }
func (t *Transition) Family() Family { return Expression }

// NodeType reports LOAD_TRANSITION for onLoad transitions (the only
// variant name spec §3 gives); other triggers are reported with an
// analogous, non-normative name so debug output stays readable.
func (t *Transition) NodeType() string {
	switch t.Trig {
	case OnLoad:
		return "LOAD_TRANSITION"
	case OnSubmit:
		return "SUBMIT_TRANSITION"
	default:
		return "ACTION_TRANSITION"
	}
}

func (t *Transition) Properties() Properties {
	return Properties{{Name: "effect", Value: NodeValue(t.Effect)}}
}

func (t *Transition) DebugString(depth int) string {
	return indentf(depth, "%s(%s)\n%s", t.NodeType(), t.Label, childDebug(depth, t.Properties()))
}

func (t *Transition) Clone(gen IDGenerator) Node {
	clone := *t
	clone.id = gen.Next(id.CompileAST)
	if t.Effect != nil {
		clone.Effect = t.Effect.Clone(gen).(*Function)
	}
	return &clone
}

// Journey is the outermost structural container: it owns steps and
// carries the journey-level onLoad chain.
type Journey struct {
	id         string
	Code       string
	Steps      []*Step
	OnLoad     []*Transition
	OnSubmit   []*Transition
	OnAction   []*Transition
}

func (j *Journey) ID() string     { return j.id }
func (j *Journey) Family() Family { return Structure }
func (j *Journey) NodeType() string { return "JOURNEY" }

func (j *Journey) Properties() Properties {
	return Properties{
		{Name: "steps", Value: nodeSeq(stepsToNodes(j.Steps))},
		{Name: "onLoad", Value: nodeSeq(transitionsToNodes(j.OnLoad))},
		{Name: "onSubmit", Value: nodeSeq(transitionsToNodes(j.OnSubmit))},
		{Name: "onAction", Value: nodeSeq(transitionsToNodes(j.OnAction))},
	}
}

func (j *Journey) DebugString(depth int) string {
	return indentf(depth, "JOURNEY(%s)\n%s", j.Code, childDebug(depth, j.Properties()))
}

func (j *Journey) Clone(gen IDGenerator) Node {
	clone := &Journey{id: gen.Next(id.CompileAST), Code: j.Code}
	for _, s := range j.Steps {
		clone.Steps = append(clone.Steps, s.Clone(gen).(*Step))
	}
	for _, t := range j.OnLoad {
		clone.OnLoad = append(clone.OnLoad, t.Clone(gen).(*Transition))
	}
	for _, t := range j.OnSubmit {
		clone.OnSubmit = append(clone.OnSubmit, t.Clone(gen).(*Transition))
	}
	for _, t := range j.OnAction {
		clone.OnAction = append(clone.OnAction, t.Clone(gen).(*Transition))
	}
	return clone
}

// Step is a journey's direct child container: it owns blocks and
// carries its own onLoad chain, which is prepended to the journey's
// when computing scope (innermost first, spec §4.7).
type Step struct {
	id       string
	Code     string
	URL      string
	Blocks   []Node
	OnLoad   []*Transition
	OnSubmit []*Transition
	OnAction []*Transition
}

func (s *Step) ID() string       { return s.id }
func (s *Step) Family() Family   { return Structure }
func (s *Step) NodeType() string { return "STEP" }

func (s *Step) Properties() Properties {
	return Properties{
		{Name: "blocks", Value: nodeSeq(s.Blocks)},
		{Name: "onLoad", Value: nodeSeq(transitionsToNodes(s.OnLoad))},
		{Name: "onSubmit", Value: nodeSeq(transitionsToNodes(s.OnSubmit))},
		{Name: "onAction", Value: nodeSeq(transitionsToNodes(s.OnAction))},
	}
}

func (s *Step) DebugString(depth int) string {
	return indentf(depth, "STEP(%s)\n%s", s.Code, childDebug(depth, s.Properties()))
}

func (s *Step) Clone(gen IDGenerator) Node {
	clone := &Step{id: gen.Next(id.CompileAST), Code: s.Code, URL: s.URL}
	for _, b := range s.Blocks {
		clone.Blocks = append(clone.Blocks, b.Clone(gen))
	}
	for _, t := range s.OnLoad {
		clone.OnLoad = append(clone.OnLoad, t.Clone(gen).(*Transition))
	}
	for _, t := range s.OnSubmit {
		clone.OnSubmit = append(clone.OnSubmit, t.Clone(gen).(*Transition))
	}
	for _, t := range s.OnAction {
		clone.OnAction = append(clone.OnAction, t.Clone(gen).(*Transition))
	}
	return clone
}

// BlockType discriminates a Block's structural sub-kind (spec §3:
// "BLOCK (with sub-kind blockType ∈ {basic, field, …})").
type BlockType string

const (
	BasicBlock BlockType = "basic"
	FieldBlock BlockType = "field"
)

// RadioItem is a keyed record entry of a choice-style field's Items
// property. Its Block may itself be a field block (a conditional
// reveal), discovered by the traverser and structurally wired to the
// enclosing Block, never to the step (spec §8 boundary behaviour 14,
// S5).
type RadioItem struct {
	Value string
	Block *Block
}

// Block is a UI-bearing structural node. When BType is FieldBlock it
// collects input and carries Code/Value/DefaultValue/Formatters/
// FormatPipeline/Validate; when BasicBlock it is a plain container and
// only Children/Items are meaningful.
type Block struct {
	id   string
	BType BlockType
	// Variant is the opaque component identity (e.g. "text-input",
	// "radio"); the core never validates it except through the
	// optional VariantValidator hook (spec SPEC_FULL.md §C.3).
	Variant string
	Label   string

	// Code is a field's stable key: a Scalar string, or a NodeKind
	// expression when the code itself is computed (spec §3 "Field
	// uniqueness").
	Code Value
	// Value is overwritten by AddSelfValueToFields to a REFERENCE to
	// ['answers','@self'] (spec §4.5.2); any user-supplied value here
	// before normalization is discarded.
	Value Value
	// DefaultValue is optional; when it is a NodeKind it participates
	// in answer wiring (spec §4.10.2).
	DefaultValue Value

	// Formatters holds the pre-normalization formatter pipeline steps.
	// ConvertFormattersToPipeline moves these into FormatPipeline and
	// clears this slice (spec §4.5.3, invariant in spec §3).
	Formatters []*Function
	// FormatPipeline is nil until ConvertFormattersToPipeline runs (or
	// always nil if the field never had formatters).
	FormatPipeline *Pipeline

	Validate []*Validation

	// Children holds nested blocks for a basic/container block.
	Children []Node
	// Items holds choice-style children (radio/checkbox); each item's
	// nested Block is itself a structural child (spec S5).
	Items []RadioItem
}

func (b *Block) ID() string       { return b.id }
func (b *Block) Family() Family   { return Structure }
func (b *Block) NodeType() string { return "BLOCK" }

// IsField reports whether this block collects input.
func (b *Block) IsField() bool { return b.BType == FieldBlock }

func (b *Block) Properties() Properties {
	props := Properties{
		{Name: "code", Value: b.Code},
		{Name: "value", Value: b.Value},
		{Name: "defaultValue", Value: b.DefaultValue},
	}
	if len(b.Formatters) > 0 {
		props = append(props, PropertyEntry{Name: "formatters", Value: nodeSeq(functionsToNodes(b.Formatters))})
	}
	if b.FormatPipeline != nil {
		props = append(props, PropertyEntry{Name: "formatPipeline", Value: NodeValue(b.FormatPipeline)})
	}
	if len(b.Validate) > 0 {
		props = append(props, PropertyEntry{Name: "validate", Value: nodeSeq(validationsToNodes(b.Validate))})
	}
	if len(b.Children) > 0 {
		props = append(props, PropertyEntry{Name: "children", Value: nodeSeq(b.Children)})
	}
	if len(b.Items) > 0 {
		items := make([]Value, 0, len(b.Items))
		for _, it := range b.Items {
			items = append(items, RecordValue(
				Field{Name: "value", Value: ScalarValue(it.Value)},
				Field{Name: "block", Value: NodeValue(it.Block)},
			))
		}
		props = append(props, PropertyEntry{Name: "items", Value: SeqValue(items...)})
	}
	return props
}

func (b *Block) DebugString(depth int) string {
	return indentf(depth, "BLOCK[%s](variant=%s)\n%s", b.BType, b.Variant, childDebug(depth, b.Properties()))
}

func (b *Block) Clone(gen IDGenerator) Node {
	clone := &Block{
		id:           gen.Next(id.CompileAST),
		BType:        b.BType,
		Variant:      b.Variant,
		Label:        b.Label,
		Code:         cloneValue(b.Code, gen),
		Value:        cloneValue(b.Value, gen),
		DefaultValue: cloneValue(b.DefaultValue, gen),
	}
	for _, f := range b.Formatters {
		clone.Formatters = append(clone.Formatters, f.Clone(gen).(*Function))
	}
	if b.FormatPipeline != nil {
		clone.FormatPipeline = b.FormatPipeline.Clone(gen).(*Pipeline)
	}
	for _, v := range b.Validate {
		clone.Validate = append(clone.Validate, v.Clone(gen).(*Validation))
	}
	for _, c := range b.Children {
		clone.Children = append(clone.Children, c.Clone(gen))
	}
	for _, it := range b.Items {
		var blk *Block
		if it.Block != nil {
			blk = it.Block.Clone(gen).(*Block)
		}
		clone.Items = append(clone.Items, RadioItem{Value: it.Value, Block: blk})
	}
	return clone
}

func cloneValue(v Value, gen IDGenerator) Value {
	switch v.Kind {
	case NodeKind:
		if v.Node == nil {
			return v
		}
		return NodeValue(v.Node.Clone(gen))
	case Seq:
		items := make([]Value, len(v.Items))
		for i, it := range v.Items {
			items[i] = cloneValue(it, gen)
		}
		return Value{Kind: Seq, Items: items}
	case Record:
		fields := make([]Field, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = Field{Name: f.Name, Value: cloneValue(f.Value, gen)}
		}
		return Value{Kind: Record, Fields: fields}
	default:
		return v
	}
}

func nodeSeq(nodes []Node) Value {
	items := make([]Value, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, NodeValue(n))
	}
	return SeqValue(items...)
}

func stepsToNodes(s []*Step) []Node {
	out := make([]Node, 0, len(s))
	for _, x := range s {
		out = append(out, x)
	}
	return out
}

func transitionsToNodes(t []*Transition) []Node {
	out := make([]Node, 0, len(t))
	for _, x := range t {
		out = append(out, x)
	}
	return out
}

func functionsToNodes(f []*Function) []Node {
	out := make([]Node, 0, len(f))
	for _, x := range f {
		out = append(out, x)
	}
	return out
}

func validationsToNodes(v []*Validation) []Node {
	out := make([]Node, 0, len(v))
	for _, x := range v {
		out = append(out, x)
	}
	return out
}

func indentf(depth int, format string, args ...any) string {
	pad := ""
	for i := 0; i < depth; i++ {
		pad += "  "
	}
	return pad + fmt.Sprintf(format, args...)
}
