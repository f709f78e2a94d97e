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
	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/registry"
)

// ScopeIndex answers "what onLoad chain is visible from this node" (spec
// §4.7): a step's own onLoad transitions, innermost first, followed by
// its owning journey's. It is lazily computed per step and cached in
// the shared MetadataRegistry under the "onLoadChain" key, keyed by
// step id, so repeated lookups from many wiring passes don't re-walk
// the journey.
type ScopeIndex struct {
	journey *ast.Journey
	meta    *registry.MetadataRegistry
	// stepOf maps every node id reachable from the journey to the
	// *ast.Step it is scoped under (absent for nodes outside any step,
	// e.g. the journey's own onLoad transitions).
	stepOf map[string]*ast.Step
}

// NewScopeIndex builds a ScopeIndex over journey. stepOf is supplied by
// the caller (Compile populates it during registration) rather than
// recomputed here, since Register already walks the full tree once.
func NewScopeIndex(journey *ast.Journey, meta *registry.MetadataRegistry, stepOf map[string]*ast.Step) *ScopeIndex {
	return &ScopeIndex{journey: journey, meta: meta, stepOf: stepOf}
}

// scopeChain returns the ordered list of transitions visible to a node
// scoped under step: that step's onLoad transitions first
// (innermost), then the journey's (spec §4.7: "the step's own onLoad
// chain, then the journey's, innermost first").
func (s *ScopeIndex) scopeChain(step *ast.Step) []*ast.Transition {
	cacheKey := "<journey>"
	if step != nil {
		cacheKey = step.ID()
	}
	if cached, ok := s.meta.Get(cacheKey, "onLoadChain", nil).([]*ast.Transition); ok {
		return cached
	}
	var chain []*ast.Transition
	if step != nil {
		chain = append(chain, step.OnLoad...)
	}
	if s.journey != nil {
		chain = append(chain, s.journey.OnLoad...)
	}
	s.meta.Set(cacheKey, "onLoadChain", chain)
	return chain
}

// OnLoadChain returns the onLoad chain visible from the node with the
// given id: the chain of its owning step (if any) composed with the
// journey's own, or just the journey's chain for a node outside any
// step (e.g. a journey-level expression).
func (s *ScopeIndex) OnLoadChain(nodeID string) []*ast.Transition {
	return s.scopeChain(s.stepOf[nodeID])
}

// onLoadChain is the unexported entry point wiring passes in this
// package call; kept distinct from the exported OnLoadChain so call
// sites that already hold an *ast.Step (rather than just its id) can
// skip the stepOf lookup.
func (s *ScopeIndex) onLoadChain(step *ast.Step) []*ast.Transition {
	return s.scopeChain(step)
}
