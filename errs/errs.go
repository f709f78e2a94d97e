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

// Package errs declares the compiler's error taxonomy as tagged error
// kinds. Fatal kinds abort compilation; non-fatal kinds are never
// returned to a caller (see the compile package).
package errs

import "gopkg.in/src-d/go-errors.v1"

var (
	// InvalidNode is raised when a normalizer finds an AST node that
	// violates a structural contract, e.g. a field with formatters but
	// no code.
	InvalidNode = errors.NewKind("invalid node at %s: %s")

	// DuplicateNodeId is raised when the same node id is registered
	// twice with two distinct nodes.
	DuplicateNodeId = errors.NewKind("duplicate node id %s: already registered with a different node")

	// CycleInStructuralGraph is raised when adding a structural edge
	// would close a cycle in the structural backbone.
	CycleInStructuralGraph = errors.NewKind("structural edge %s -> %s would create a cycle")

	// MissingCollaborator is never returned to a caller. Compile logs
	// it, at Debug level, for each reference the wiring passes left
	// unresolved.
	MissingCollaborator = errors.NewKind("missing collaborator for %s: %s")

	// ScopeResolutionFailure is never returned to a caller, and no pass
	// in this module raises or logs it: a wiring pass without a scope
	// simply adds no lifecycle edges.
	ScopeResolutionFailure = errors.NewKind("no enclosing scope for node %s")
)
