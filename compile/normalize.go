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

// Package compile orchestrates the whole pipeline described in spec §2:
// normalizers, registration, scope, pseudo-node discovery (delegated to
// the pseudo package), dependency wiring, and the DependencyGraph
// assembly.
package compile

import (
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/errs"
	"github.com/ministryofjustice/hmpps-form-engine/registry"
	"github.com/ministryofjustice/hmpps-form-engine/traverse"
)

// normalizer is one ordered pass of spec §4.5. Each pass gets its own
// traversal; later passes may rely on invariants established by
// earlier ones (hence the fixed order in RunNormalizers).
type normalizer struct {
	name string
	run  func(factory *ast.Factory, root ast.Node, meta *registry.MetadataRegistry) error
}

var normalizers = []normalizer{
	{"AttachParentNodes", attachParentNodes},
	{"AddSelfValueToFields", addSelfValueToFields},
	{"ConvertFormattersToPipeline", convertFormattersToPipeline},
	{"AttachValidationBlockCode", attachValidationBlockCode},
}

// RunNormalizers runs the four ordered normalizer passes over root,
// in the fixed order spec §4.5 specifies. It opens one span per pass
// when tracer is non-nil and logs, at Debug, each pass's name when log
// is non-nil. A nil meta is replaced by a fresh, throwaway registry.
func RunNormalizers(factory *ast.Factory, root ast.Node, meta *registry.MetadataRegistry, log *logrus.Logger, tracer opentracing.Tracer) error {
	if meta == nil {
		meta = registry.NewMetadataRegistry()
	}
	for _, n := range normalizers {
		span := startSpan(tracer, "normalize."+n.name)
		if err := n.run(factory, root, meta); err != nil {
			finishSpan(span)
			return err
		}
		finishSpan(span)
		if log != nil {
			log.WithField("pass", n.name).Debug("normalizer pass complete")
		}
	}
	return nil
}

// attachParentNodes implements spec §4.5.1: on enter, record the
// current node's immediate parent id in MetadataRegistry under
// "attachedToParentNode" (absent/cleared at the root).
func attachParentNodes(factory *ast.Factory, root ast.Node, meta *registry.MetadataRegistry) error {
	traverse.Walk(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			if parent := ctx.Parent(); parent != nil {
				meta.Set(n.ID(), "attachedToParentNode", parent.ID())
			} else {
				meta.Delete(n.ID(), "attachedToParentNode")
			}
			return traverse.Continue
		},
	})
	return nil
}

// addSelfValueToFields implements spec §4.5.2: every field block with
// a code gets its value property overwritten with a REFERENCE to
// ['answers', '@self'], discarding any user-supplied value (spec §3
// "Self-value invariant").
func addSelfValueToFields(factory *ast.Factory, root ast.Node, meta *registry.MetadataRegistry) error {
	traverse.Walk(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			blk, ok := n.(*ast.Block)
			if !ok || !blk.IsField() || blk.Code.IsNil() {
				return traverse.Continue
			}
			blk.Value = ast.NodeValue(factory.Reference("answers", "@self"))
			return traverse.Continue
		},
	})
	return nil
}

// convertFormattersToPipeline implements spec §4.5.3: every field with
// a non-empty formatters array and a defined code gets a synthesized
// PIPELINE at formatPipeline whose input is a REFERENCE to
// ['post', code] (code embedded, not stringified, when it is itself an
// expression) and whose steps are the original formatter functions, in
// order; formatters is then cleared. A field with formatters but no
// code is an InvalidNode (fatal, spec §4.11).
func convertFormattersToPipeline(factory *ast.Factory, root ast.Node, meta *registry.MetadataRegistry) error {
	var firstErr error
	traverse.Walk(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			if firstErr != nil {
				return traverse.Stop
			}
			blk, ok := n.(*ast.Block)
			if !ok || !blk.IsField() || len(blk.Formatters) == 0 {
				return traverse.Continue
			}
			if blk.Code.IsNil() {
				firstErr = errs.InvalidNode.New(pathString(ctx.Path), "missing code")
				return traverse.Stop
			}
			codeSeg := pathSegmentFromCode(blk.Code)
			input := factory.ReferenceDynamic(ast.PathSegment{Literal: "post"}, codeSeg)
			blk.FormatPipeline = factory.Pipeline(input, blk.Formatters...)
			blk.Formatters = nil
			return traverse.Continue
		},
	})
	return firstErr
}

func pathSegmentFromCode(v ast.Value) ast.PathSegment {
	if v.Kind == ast.NodeKind {
		return ast.PathSegment{Dynamic: v.Node}
	}
	return ast.PathSegment{Literal: v.AsString()}
}

// attachValidationBlockCode implements spec §4.5.4: every VALIDATION
// expression inside a field block gets resolvedBlockCode set to the
// owning block's code (scalar copied by value; expression deep-cloned
// with a fresh id). Validations outside any field block are untouched
// (spec §8 property 7).
func attachValidationBlockCode(factory *ast.Factory, root ast.Node, meta *registry.MetadataRegistry) error {
	traverse.Walk(root, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			val, ok := n.(*ast.Validation)
			if !ok {
				return traverse.Continue
			}
			for i := len(ctx.Ancestors) - 1; i >= 0; i-- {
				blk, ok := ctx.Ancestors[i].(*ast.Block)
				if !ok || !blk.IsField() {
					continue
				}
				if blk.Code.Kind == ast.NodeKind && blk.Code.Node != nil {
					val.ResolvedBlockCode = ast.NodeValue(blk.Code.Node.Clone(factory.Generator()))
				} else {
					val.ResolvedBlockCode = blk.Code
				}
				break
			}
			return traverse.Continue
		},
	})
	return nil
}

func pathString(path []traverse.PathElement) string {
	s := ""
	for _, p := range path {
		if s != "" {
			s += "."
		}
		switch {
		case p.HasIndex:
			s += "[]"
		case p.HasKey:
			s += p.Key
		default:
			s += p.Property
		}
	}
	if s == "" {
		return "<root>"
	}
	return s
}
