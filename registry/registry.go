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

// Package registry provides the content-addressed node store and the
// sparse per-node metadata store shared by the AST and pseudo-node
// worlds. Neither store owns node identity: nodes are referenced by id
// and may live anywhere the caller likes.
package registry

import (
	"sort"

	"github.com/ministryofjustice/hmpps-form-engine/errs"
)

// Entry pairs an id with its node, preserving insertion order on
// iteration.
type Entry[T any] struct {
	ID   string
	Node T
}

// Registry is a content-addressed, insertion-ordered store: id -> node.
// It is generic so that the AST NodeRegistry and the pseudo-node
// registry described in spec §2 share one implementation instead of
// duplicating it.
type Registry[T any] struct {
	order []string
	nodes map[string]T
	equal func(a, b T) bool
}

// New returns an empty Registry. equal is used by Register to decide
// whether a re-registration of an existing id is the idempotent no-op
// case or a genuine conflict; with a nil equal, every re-registration
// of an existing id is treated as a conflict.
func New[T any](equal func(a, b T) bool) *Registry[T] {
	return &Registry[T]{nodes: make(map[string]T), equal: equal}
}

// Register stores node under id. Registering the same id with a node
// equal (per the registry's equal func) to what's already stored is a
// no-op. Registering the same id with a different node fails with
// errs.DuplicateNodeId.
func (r *Registry[T]) Register(id string, node T) error {
	if existing, ok := r.nodes[id]; ok {
		if r.equal != nil && r.equal(existing, node) {
			return nil
		}
		return errs.DuplicateNodeId.New(id)
	}
	r.nodes[id] = node
	r.order = append(r.order, id)
	return nil
}

// Get returns the node stored under id, if any.
func (r *Registry[T]) Get(id string) (T, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Has reports whether id is registered.
func (r *Registry[T]) Has(id string) bool {
	_, ok := r.nodes[id]
	return ok
}

// GetAll returns every (id, node) pair in insertion order.
func (r *Registry[T]) GetAll() []Entry[T] {
	out := make([]Entry[T], 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Entry[T]{ID: id, Node: r.nodes[id]})
	}
	return out
}

// GetIds returns every registered id in insertion order.
func (r *Registry[T]) GetIds() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered nodes.
func (r *Registry[T]) Len() int {
	return len(r.order)
}

// FindByType returns every registered node for which match reports
// true, in insertion order. It generalizes spec §4.2's
// findByType<T>(type): callers pass the type predicate (e.g. "is this
// a REFERENCE expression") rather than relying on reflection.
func (r *Registry[T]) FindByType(match func(T) bool) []Entry[T] {
	var out []Entry[T]
	for _, id := range r.order {
		n := r.nodes[id]
		if match(n) {
			out = append(out, Entry[T]{ID: id, Node: n})
		}
	}
	return out
}

// MetadataRegistry is a sparse (nodeId, key) -> value store used for
// cross-pass annotations: parent pointers, ancestor/descendant flags,
// the current-step marker, and the scope cache.
type MetadataRegistry struct {
	values map[string]map[string]any
}

// NewMetadataRegistry returns an empty MetadataRegistry.
func NewMetadataRegistry() *MetadataRegistry {
	return &MetadataRegistry{values: make(map[string]map[string]any)}
}

// Set stores value under (id, key).
func (m *MetadataRegistry) Set(id, key string, value any) {
	bucket, ok := m.values[id]
	if !ok {
		bucket = make(map[string]any)
		m.values[id] = bucket
	}
	bucket[key] = value
}

// Get returns the value stored under (id, key), or def if absent.
func (m *MetadataRegistry) Get(id, key string, def any) any {
	bucket, ok := m.values[id]
	if !ok {
		return def
	}
	v, ok := bucket[key]
	if !ok {
		return def
	}
	return v
}

// Has reports whether a value is stored under (id, key).
func (m *MetadataRegistry) Has(id, key string) bool {
	bucket, ok := m.values[id]
	if !ok {
		return false
	}
	_, ok = bucket[key]
	return ok
}

// Delete removes the value stored under (id, key), if any.
func (m *MetadataRegistry) Delete(id, key string) {
	if bucket, ok := m.values[id]; ok {
		delete(bucket, key)
	}
}

// FindNodesWhere returns every node id whose value under key equals
// predicateValue, sorted for determinism (map iteration order is not
// stable, and spec §8.1 requires byte-equivalent results run to run).
func (m *MetadataRegistry) FindNodesWhere(key string, predicateValue any) []string {
	var out []string
	for id, bucket := range m.values {
		if v, ok := bucket[key]; ok && v == predicateValue {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
