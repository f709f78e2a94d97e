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
	"context"

	"github.com/mitchellh/hashstructure"
	"github.com/opentracing/opentracing-go"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/errs"
	"github.com/ministryofjustice/hmpps-form-engine/graph"
	"github.com/ministryofjustice/hmpps-form-engine/id"
	"github.com/ministryofjustice/hmpps-form-engine/pseudo"
	"github.com/ministryofjustice/hmpps-form-engine/registry"
)

// Options configures one Compile call.
type Options struct {
	// CurrentStepCode marks which *ast.Step (if any) is the one the
	// host is currently rendering; Register uses it to flag the
	// "current step" metadata spec §4.3 describes.
	CurrentStepCode string
	// Log receives Debug-level progress from Compile itself, from each
	// normalizer pass, and from pseudo-node discovery; registration and
	// the wiring passes do not log. Nil disables logging entirely
	// rather than defaulting to a package-level logger: a library
	// should never own global logging state.
	Log *logrus.Logger
	// Tracer, when non-nil, receives one span for the whole compile and
	// one per normalizer pass.
	Tracer opentracing.Tracer
}

// Result is everything one Compile call produces (spec §2's final
// deliverable): the normalized tree, both registries, the dependency
// graph, the scope index, and bookkeeping a host can use to decide
// whether to proceed (UnknownVariants, UnresolvedReferences).
type Result struct {
	// SessionID uniquely identifies this compile, for correlating logs
	// and traces across a host's request lifecycle.
	SessionID string

	Root ast.Node

	ASTRegistry    *ASTRegistry
	PseudoRegistry *pseudo.Registry
	Metadata       *registry.MetadataRegistry
	Graph          *graph.DependencyGraph
	Scope          *ScopeIndex

	// UnknownVariants lists every BLOCK variant the host's
	// VariantValidator rejected, in first-seen order (non-fatal).
	UnknownVariants []string
	// UnresolvedReferences lists the ids of REFERENCE nodes that named
	// a value source with no corresponding pseudo-node (non-fatal,
	// spec §4.11 MissingCollaborator class).
	UnresolvedReferences []string
}

// Compile runs the full pipeline spec §2 describes over root, which
// must have been built with factory (Compile draws on the factory's
// shared id.Generator for any node it needs to synthesize or clone,
// e.g. AttachValidationBlockCode and ConvertFormattersToPipeline).
//
// Only a structurally malformed tree — an InvalidNode, DuplicateNodeId
// or CycleInStructuralGraph condition — aborts Compile; every other
// degraded condition (an unknown variant, an unresolved reference) is
// collected onto Result and left for the host to act on (spec §4.11:
// "the compiler degrades gracefully wherever the condition does not
// compromise the soundness of the graph it produces").
func Compile(ctx context.Context, factory *ast.Factory, root ast.Node, opts Options) (*Result, error) {
	span := startSpan(opts.Tracer, "compile")
	defer finishSpan(span)

	sessionID := uuid.NewV4().String()
	log := opts.Log
	if log != nil {
		log.WithField("sessionId", sessionID).Debug("compile starting")
	}

	meta := registry.NewMetadataRegistry()

	if err := RunNormalizers(factory, root, meta, log, opts.Tracer); err != nil {
		return nil, err
	}

	astReg := NewASTRegistry()
	stepOf, err := Register(root, astReg, meta, opts.CurrentStepCode)
	if err != nil {
		return nil, err
	}

	journey, _ := root.(*ast.Journey)
	scope := NewScopeIndex(journey, meta, stepOf)

	gen := idGeneratorFrom(factory)
	pseudoReg := pseudo.Discover(gen, root, log)

	g := graph.New()
	if err := WireStructural(root, g); err != nil {
		return nil, err
	}
	WireAnswers(root, pseudoReg, scope, g)
	unresolved := WireDataSources(root, pseudoReg, scope, g)
	WirePipelineSteps(root, g)
	if journey != nil {
		WireOnLoadEffects(journey, scope, g)
	}

	for _, refID := range unresolved {
		if log != nil {
			log.WithField("reference", refID).Debug(errs.MissingCollaborator.New(refID, "no pseudo-node for this reference").Error())
		}
	}

	return &Result{
		SessionID:            sessionID,
		Root:                 root,
		ASTRegistry:          astReg,
		PseudoRegistry:       pseudoReg,
		Metadata:             meta,
		Graph:                g,
		Scope:                scope,
		UnknownVariants:      factory.UnknownVariants(),
		UnresolvedReferences: unresolved,
	}, nil
}

// idGeneratorFrom narrows factory's exported Generator() back down to
// *id.Generator for pseudo.Discover, which needs the concrete type
// (its compile_pseudo ids then come from the same Generator as the
// AST's compile_ast ids, so one Reset restarts both).
func idGeneratorFrom(factory *ast.Factory) *id.Generator {
	return factory.Generator().(*id.Generator)
}

// Fingerprint returns a stable content hash of the compiled tree's
// DebugString rendering, letting a host cheaply detect "did this
// journey's compiled shape change" across two compiles without diffing
// the full registries (SPEC_FULL.md §C.1).
func (r *Result) Fingerprint() (string, error) {
	h, err := hashstructure.Hash(r.Root.DebugString(0), nil)
	if err != nil {
		return "", err
	}
	return hashString(h), nil
}

func hashString(h uint64) string {
	const hexDigits = "0123456789abcdef"
	if h == 0 {
		return "0"
	}
	var buf [16]byte
	i := len(buf)
	for h > 0 {
		i--
		buf[i] = hexDigits[h%16]
		h /= 16
	}
	return string(buf[i:])
}

// yamlNode is the shape DumpYAML renders: a developer-troubleshooting
// snapshot (SPEC_FULL.md §B), never consumed by the core itself.
type yamlNode struct {
	Type  string      `yaml:"type"`
	ID    string      `yaml:"id"`
	Props []yamlProp  `yaml:"properties,omitempty"`
}

type yamlProp struct {
	Name  string      `yaml:"name"`
	Value interface{} `yaml:"value,omitempty"`
}

// DumpYAML renders the compiled tree as YAML for debugging: a flatter,
// more diffable sibling of DebugString, not used by any core pass.
func (r *Result) DumpYAML() (string, error) {
	out, err := yaml.Marshal(toYAMLNode(r.Root))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toYAMLNode(n ast.Node) yamlNode {
	if n == nil {
		return yamlNode{}
	}
	yn := yamlNode{Type: n.NodeType(), ID: n.ID()}
	for _, p := range n.Properties() {
		yn.Props = append(yn.Props, yamlProp{Name: p.Name, Value: toYAMLValue(p.Value)})
	}
	return yn
}

func toYAMLValue(v ast.Value) interface{} {
	switch v.Kind {
	case ast.Scalar:
		return v.Scalar
	case ast.NodeKind:
		if v.Node == nil {
			return nil
		}
		return toYAMLNode(v.Node)
	case ast.Seq:
		items := make([]interface{}, len(v.Items))
		for i, it := range v.Items {
			items[i] = toYAMLValue(it)
		}
		return items
	case ast.Record:
		fields := make(map[string]interface{}, len(v.Fields))
		for _, f := range v.Fields {
			fields[f.Name] = toYAMLValue(f.Value)
		}
		return fields
	}
	return nil
}
