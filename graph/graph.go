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

// Package graph implements the DependencyGraph: an id-based directed
// multigraph of typed edges, owning no nodes itself (spec §4.9, design
// note in spec §9: "the graph owns no nodes; it is a pair of adjacency
// maps keyed by id").
package graph

import (
	"fmt"
	"sort"

	"github.com/ministryofjustice/hmpps-form-engine/errs"
)

// EdgeType discriminates why an edge exists.
type EdgeType string

const (
	// Structural records "child belongs to parent in the AST".
	Structural EdgeType = "STRUCTURAL"
	// DataFlow records "producer's value is needed by consumer".
	DataFlow EdgeType = "DATA_FLOW"
	// EffectFlow records "effect must complete before consumer
	// observes a value".
	EffectFlow EdgeType = "EFFECT_FLOW"
)

// Edge is one typed edge with its metadata, directed from a producer
// to a consumer (spec §3 graph invariant (a)).
type Edge struct {
	Type     EdgeType
	Metadata map[string]any
}

type key struct{ from, to string }

// DependencyGraph is a directed multigraph: multiple edges between the
// same ordered pair are permitted as long as their Type differs (spec
// §4.9).
type DependencyGraph struct {
	nodes   map[string]bool
	nodeIDs []string
	edges   map[key][]Edge
	fromIdx map[string][]string // from -> to (insertion order, may repeat)
	toIdx   map[string][]string // to -> from (insertion order, may repeat)
}

// New returns an empty DependencyGraph.
func New() *DependencyGraph {
	return &DependencyGraph{
		nodes:   make(map[string]bool),
		edges:   make(map[key][]Edge),
		fromIdx: make(map[string][]string),
		toIdx:   make(map[string][]string),
	}
}

// AddNode registers id as a graph vertex even if it has no edges yet.
func (g *DependencyGraph) AddNode(id string) {
	if !g.nodes[id] {
		g.nodes[id] = true
		g.nodeIDs = append(g.nodeIDs, id)
	}
}

// AddEdge adds a typed edge from -> to. Structural edges are checked
// against the acyclicity invariant (spec §3 graph invariant (c),
// §8 property 3): adding one that would close a cycle is fatal and
// returns errs.CycleInStructuralGraph without mutating the graph.
// DATA_FLOW and EFFECT_FLOW edges are never rejected: spec §3 allows
// them to cycle through pseudo-nodes.
func (g *DependencyGraph) AddEdge(from, to string, typ EdgeType, metadata map[string]any) error {
	if typ == Structural {
		if g.reaches(to, from, Structural) {
			return errs.CycleInStructuralGraph.New(from, to)
		}
	}
	g.AddNode(from)
	g.AddNode(to)
	k := key{from, to}
	g.edges[k] = append(g.edges[k], Edge{Type: typ, Metadata: metadata})
	g.fromIdx[from] = append(g.fromIdx[from], to)
	g.toIdx[to] = append(g.toIdx[to], from)
	return nil
}

// reaches reports whether there is a path from start to target using
// only edges of the given type.
func (g *DependencyGraph) reaches(start, target string, typ EdgeType) bool {
	if start == target {
		return true
	}
	seen := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.fromIdx[cur] {
			if !hasType(g.edges[key{cur, next}], typ) {
				continue
			}
			if next == target {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

func hasType(edges []Edge, typ EdgeType) bool {
	for _, e := range edges {
		if e.Type == typ {
			return true
		}
	}
	return false
}

// GetEdges returns every edge directed from -> to, in the order added.
func (g *DependencyGraph) GetEdges(from, to string) []Edge {
	return append([]Edge(nil), g.edges[key{from, to}]...)
}

// GetDependencies returns the set of ids that have any edge to id
// (i.e. id's producers), sorted for deterministic iteration.
func (g *DependencyGraph) GetDependencies(id string) []string {
	seen := map[string]bool{}
	for _, from := range g.toIdx[id] {
		seen[from] = true
	}
	return sortedKeys(seen)
}

// GetDependents returns the set of ids that id has any edge to (i.e.
// id's consumers), sorted for deterministic iteration.
func (g *DependencyGraph) GetDependents(id string) []string {
	seen := map[string]bool{}
	for _, to := range g.fromIdx[id] {
		seen[to] = true
	}
	return sortedKeys(seen)
}

// NodeIDs returns every vertex id in insertion order.
func (g *DependencyGraph) NodeIDs() []string {
	out := make([]string, len(g.nodeIDs))
	copy(out, g.nodeIDs)
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DOT renders the graph as Graphviz DOT, a developer-troubleshooting
// affordance (SPEC_FULL.md §C.4) with no bearing on evaluator
// semantics.
func (g *DependencyGraph) DOT() string {
	out := "digraph compile {\n"
	pairs := make([]key, 0, len(g.edges))
	for k := range g.edges {
		pairs = append(pairs, k)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].from != pairs[j].from {
			return pairs[i].from < pairs[j].from
		}
		return pairs[i].to < pairs[j].to
	})
	for _, k := range pairs {
		for _, e := range g.edges[k] {
			out += fmt.Sprintf("  %q -> %q [label=%q];\n", k.from, k.to, e.Type)
		}
	}
	out += "}\n"
	return out
}
