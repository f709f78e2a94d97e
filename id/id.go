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

// Package id generates stable, categorized node identifiers for one
// compilation.
package id

import (
	"fmt"
	"sync"
)

// Category namespaces a generator's monotonic counter. Distinct
// categories never share a counter, so an id's category prefix alone is
// enough to tell an AST id from a pseudo-node id.
type Category string

const (
	// CompileAST is the category for structural, expression, and
	// function AST nodes.
	CompileAST Category = "compile_ast"
	// CompilePseudo is the category for pseudo-nodes.
	CompilePseudo Category = "compile_pseudo"
)

// Generator produces identifiers shaped "<category>:<n>". It is safe
// for concurrent use, though a single compilation never needs that: the
// core is single-threaded (see the concurrency model in spec §5).
type Generator struct {
	mu       sync.Mutex
	counters map[Category]int
}

// NewGenerator returns a Generator whose counters all start at zero.
func NewGenerator() *Generator {
	return &Generator{counters: make(map[Category]int)}
}

// Next returns the next id for the given category. Ids carry no
// ordering semantics beyond uniqueness within the category.
func (g *Generator) Next(category Category) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.counters[category]
	g.counters[category] = n + 1
	return fmt.Sprintf("%s:%d", category, n)
}

// Reset zeroes every counter. Tests only: production callers create a
// fresh Generator per compile instead.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters = make(map[Category]int)
}
