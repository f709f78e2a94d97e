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

import "github.com/ministryofjustice/hmpps-form-engine/id"

// VariantValidator is the one hook the core exposes toward the
// otherwise-external component registry (spec §1, §9): a host may
// implement it and pass it to the Factory so that constructing a BLOCK
// with an unknown variant is observable without the core needing to
// know what a variant actually renders to.
type VariantValidator interface {
	// KnownVariant reports whether variant is registered with the
	// host's component registry.
	KnownVariant(variant string) bool
}

// Factory converts user-facing declarative shapes into interned AST
// nodes with generated ids (spec §4.1's NodeFactory). One Factory is
// created per compile and shares its id.Generator with the rest of the
// pipeline.
type Factory struct {
	gen      *id.Generator
	variants VariantValidator
	unknown  []string
}

// NewFactory returns a Factory drawing ids from gen. variants may be
// nil, in which case variant existence is never checked.
func NewFactory(gen *id.Generator, variants VariantValidator) *Factory {
	return &Factory{gen: gen, variants: variants}
}

// UnknownVariants returns every variant string seen that variants
// reported unknown, in the order first encountered. Compile surfaces
// these as non-fatal MissingCollaborator-class warnings.
func (f *Factory) UnknownVariants() []string {
	out := make([]string, len(f.unknown))
	copy(out, f.unknown)
	return out
}

func (f *Factory) next() string { return f.gen.Next(id.CompileAST) }

// Generator exposes the Factory's underlying id source as the narrow
// IDGenerator interface, so normalizer passes can Clone() nodes using
// the same generator the rest of this compile draws ids from.
func (f *Factory) Generator() IDGenerator { return f.gen }

func (f *Factory) checkVariant(variant string) {
	if f.variants == nil || variant == "" {
		return
	}
	if !f.variants.KnownVariant(variant) {
		f.unknown = append(f.unknown, variant)
	}
}

// Journey builds a JOURNEY node.
func (f *Factory) Journey(code string, steps []*Step, onLoad ...*Transition) *Journey {
	return &Journey{id: f.next(), Code: code, Steps: steps, OnLoad: onLoad}
}

// Step builds a STEP node.
func (f *Factory) Step(code, url string, blocks []Node, onLoad ...*Transition) *Step {
	return &Step{id: f.next(), Code: code, URL: url, Blocks: blocks, OnLoad: onLoad}
}

// FieldOption configures an optional Field property.
type FieldOption func(*Block)

func WithDefaultValue(v Value) FieldOption { return func(b *Block) { b.DefaultValue = v } }
func WithFormatters(fns ...*Function) FieldOption {
	return func(b *Block) { b.Formatters = fns }
}
func WithValidate(v ...*Validation) FieldOption { return func(b *Block) { b.Validate = v } }
func WithLabel(label string) FieldOption        { return func(b *Block) { b.Label = label } }
func WithItems(items ...RadioItem) FieldOption  { return func(b *Block) { b.Items = items } }

// Field builds a field BLOCK: code is either a ScalarValue(string) or
// a NodeValue(expression) per spec §3's "Field uniqueness" invariant.
func (f *Factory) Field(variant string, code Value, opts ...FieldOption) *Block {
	f.checkVariant(variant)
	b := &Block{id: f.next(), BType: FieldBlock, Variant: variant, Code: code}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BasicBlock builds a non-field container BLOCK.
func (f *Factory) BasicBlock(variant string, children ...Node) *Block {
	f.checkVariant(variant)
	return &Block{id: f.next(), BType: BasicBlock, Variant: variant, Children: children}
}

// Reference builds a REFERENCE with an all-literal path.
func (f *Factory) Reference(parts ...string) *Reference {
	return &Reference{id: f.next(), Path: litSegs(parts...)}
}

// ReferenceDynamic builds a REFERENCE whose segments may embed
// expressions (used for a field whose code is itself computed).
func (f *Factory) ReferenceDynamic(segs ...PathSegment) *Reference {
	return &Reference{id: f.next(), Path: segs}
}

// Pipeline builds a PIPELINE expression.
func (f *Factory) Pipeline(input Node, steps ...*Function) *Pipeline {
	return &Pipeline{id: f.next(), Input: input, Steps: steps}
}

func (f *Factory) function(kind FunctionKind, name string, args ...Value) *Function {
	return &Function{id: f.next(), FnKind: kind, Name: name, Arguments: args}
}

func (f *Factory) Transformer(name string, args ...Value) *Function {
	return f.function(TransformerFn, name, args...)
}
func (f *Factory) Condition(name string, args ...Value) *Function {
	return f.function(ConditionFn, name, args...)
}
func (f *Factory) Effect(name string, args ...Value) *Function {
	return f.function(EffectFn, name, args...)
}
func (f *Factory) GeneratorFunc(name string, args ...Value) *Function {
	return f.function(GeneratorFn, name, args...)
}

// Transition builds a lifecycle transition for onLoad/onSubmit/onAction.
func (f *Factory) Transition(trigger Trigger, effect *Function, label string) *Transition {
	return &Transition{id: f.next(), Trig: trigger, Effect: effect, Label: label}
}

// Validation builds a VALIDATION expression wrapping a condition
// function. ResolvedBlockCode is attached later, by
// AttachValidationBlockCode.
func (f *Factory) Validation(rule *Function, message string) *Validation {
	return &Validation{id: f.next(), Rule: rule, Message: message}
}

func (f *Factory) Conditional(condition Node, then, els Value) *Conditional {
	return &Conditional{id: f.next(), Condition: condition, Then: then, Else: els}
}

func (f *Factory) Collection(items ...Value) *Collection {
	return &Collection{id: f.next(), Items: items}
}

func (f *Factory) Format(input Node, pattern string) *Format {
	return &Format{id: f.next(), Input: input, Pattern: pattern}
}

func (f *Factory) Logic(operator LogicOperator, operands ...Node) *Logic {
	return &Logic{id: f.next(), Operator: operator, Operands: operands}
}
