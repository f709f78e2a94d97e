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

// FunctionKind is the Function family's discriminant (spec §3).
type FunctionKind string

const (
	ConditionFn   FunctionKind = "CONDITION"
	TransformerFn FunctionKind = "TRANSFORMER"
	EffectFn      FunctionKind = "EFFECT"
	GeneratorFn   FunctionKind = "GENERATOR"
)

// Function is the third AST sum-type branch: a named callable with
// positional arguments, any of which may itself be an expression node
// (spec §3: "each carries name: string, arguments: ValueExpr[]").
type Function struct {
	id        string
	FnKind    FunctionKind
	Name      string
	Arguments []Value
}

func (f *Function) ID() string       { return f.id }
func (f *Function) Family() Family   { return FunctionFamily }
func (f *Function) NodeType() string { return string(f.FnKind) }

func (f *Function) Properties() Properties {
	return Properties{{Name: "arguments", Value: SeqValue(f.Arguments...)}}
}

func (f *Function) DebugString(depth int) string {
	return indentf(depth, "%s %s(...)\n%s", f.FnKind, f.Name, childDebug(depth, f.Properties()))
}

func (f *Function) Clone(gen IDGenerator) Node {
	clone := &Function{id: gen.Next(id.CompileAST), FnKind: f.FnKind, Name: f.Name}
	clone.Arguments = make([]Value, len(f.Arguments))
	for i, a := range f.Arguments {
		clone.Arguments[i] = cloneValue(a, gen)
	}
	return clone
}
