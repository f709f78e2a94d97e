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

// Package traverse implements the StructuralTraverser: a depth-first
// visitor over any ast.Node's property graph (spec §4.4).
package traverse

import "github.com/ministryofjustice/hmpps-form-engine/ast"

// Signal is what a visitor's Enter callback returns to control descent.
type Signal int

const (
	// Continue descends into the node's properties.
	Continue Signal = iota
	// Skip does not descend into this node, but continues with its
	// siblings.
	Skip
	// Stop aborts the whole traversal immediately.
	Stop
)

// PathElement is one step of a traversal path from the root: either a
// property name, or an index/key within that property's sequence or
// record value.
type PathElement struct {
	Property string
	// Index is set (>=0) when this element selects a Seq element.
	Index int
	// Key is set when this element selects a Record field.
	Key string
	// HasIndex/HasKey disambiguate a zero Index from "no index".
	HasIndex bool
	HasKey   bool
}

// Context carries the traversal state visible at the currently visited
// node: its path from the root, and its ancestor chain (outermost
// first, i.e. root..parent).
type Context struct {
	Path      []PathElement
	Ancestors []ast.Node
}

// Parent returns the immediate parent of the current node, or nil at
// the root.
func (c *Context) Parent() ast.Node {
	if len(c.Ancestors) == 0 {
		return nil
	}
	return c.Ancestors[len(c.Ancestors)-1]
}

// PropertyName returns the property under which the current node was
// reached from its immediate parent. A Seq or Record descent pushes
// path elements with only Index/Key set, so this scans backward to the
// nearest element that carries a Property, which is always the
// property the parent exposed the child's container under. Structural
// wiring (spec §4.10.1) uses this for an edge's propertyName metadata.
func (c *Context) PropertyName() string {
	for i := len(c.Path) - 1; i >= 0; i-- {
		if c.Path[i].Property != "" {
			return c.Path[i].Property
		}
	}
	return ""
}

// EnterFunc is called when a node is first visited.
type EnterFunc func(node ast.Node, ctx *Context) Signal

// ExitFunc is called after a node's descendants have all been visited
// (or immediately, when the enter signal was Skip; never after Stop).
// It is optional.
type ExitFunc func(node ast.Node, ctx *Context)

// Visitor pairs the enter/exit callbacks for one traversal.
type Visitor struct {
	Enter EnterFunc
	Exit  ExitFunc
}

// ExcludeProperty, when non-empty, names a property the traversal
// never descends into even though it holds AST nodes. Spec §4.6/§4.10.1
// use this to keep formatPipeline subtrees out of both
// "descendant-of-step" accounting and structural wiring: their
// data-flow is wired through pseudo-nodes instead.
type Options struct {
	ExcludeProperty string
}

// Walk runs a depth-first traversal of root and its property graph,
// visiting the root first (spec §4.4). It returns the terminal signal
// (Stop if a visitor aborted, Continue otherwise).
func Walk(root ast.Node, v Visitor) Signal {
	return WalkWithOptions(root, v, Options{})
}

// WalkWithOptions is Walk with traversal options.
func WalkWithOptions(root ast.Node, v Visitor, opts Options) Signal {
	if root == nil {
		return Continue
	}
	return walkNode(root, v, opts, nil, nil)
}

func walkNode(n ast.Node, v Visitor, opts Options, path []PathElement, ancestors []ast.Node) Signal {
	ctxPath := make([]PathElement, len(path))
	copy(ctxPath, path)
	ctxAncestors := make([]ast.Node, len(ancestors))
	copy(ctxAncestors, ancestors)

	sig := Continue
	if v.Enter != nil {
		sig = v.Enter(n, &Context{Path: ctxPath, Ancestors: ctxAncestors})
	}
	if sig == Stop {
		return Stop
	}
	if sig != Skip {
		childAncestors := append(append([]ast.Node{}, ancestors...), n)
		for _, prop := range n.Properties() {
			if opts.ExcludeProperty != "" && prop.Name == opts.ExcludeProperty {
				continue
			}
			childPath := append(path, PathElement{Property: prop.Name})
			if walkValue(prop.Value, v, opts, childPath, childAncestors) == Stop {
				return Stop
			}
		}
	}
	if v.Exit != nil {
		v.Exit(n, &Context{Path: ctxPath, Ancestors: ctxAncestors})
	}
	return Continue
}

func walkValue(val ast.Value, v Visitor, opts Options, path []PathElement, ancestors []ast.Node) Signal {
	switch val.Kind {
	case ast.Scalar:
		return Continue
	case ast.NodeKind:
		if val.Node == nil {
			return Continue
		}
		return walkNode(val.Node, v, opts, path, ancestors)
	case ast.Seq:
		for i, item := range val.Items {
			p := append(path, PathElement{Index: i, HasIndex: true})
			if walkValue(item, v, opts, p, ancestors) == Stop {
				return Stop
			}
		}
	case ast.Record:
		for _, field := range val.Fields {
			p := append(path, PathElement{Key: field.Name, HasKey: true})
			if walkValue(field.Value, v, opts, p, ancestors) == Stop {
				return Stop
			}
		}
	}
	return Continue
}
