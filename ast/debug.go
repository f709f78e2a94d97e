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

import (
	"strconv"
	"strings"
)

// childDebug renders a node's properties one indent level deeper,
// skipping empty/nil values. Mirrors the teacher's sql.DebugString
// convention of an indented tree used for test-failure diffs (see
// compile package test helpers, grounded on
// sql/analyzer/common_test.go's assertNodesEqualWithDiff).
func childDebug(depth int, props Properties) string {
	var b strings.Builder
	for _, p := range props {
		debugValue(&b, depth+1, p.Name, p.Value)
	}
	return b.String()
}

func debugValue(b *strings.Builder, depth int, name string, v Value) {
	switch v.Kind {
	case Scalar:
		if v.Scalar == nil {
			return
		}
		b.WriteString(indentf(depth, "%s: %v\n", name, v.Scalar))
	case NodeKind:
		if v.Node == nil {
			return
		}
		b.WriteString(indentf(depth, "%s:\n", name))
		b.WriteString(v.Node.DebugString(depth + 1))
	case Seq:
		if len(v.Items) == 0 {
			return
		}
		b.WriteString(indentf(depth, "%s:\n", name))
		for i, it := range v.Items {
			debugValue(b, depth+1, indexName(i), it)
		}
	case Record:
		if len(v.Fields) == 0 {
			return
		}
		b.WriteString(indentf(depth, "%s:\n", name))
		for _, f := range v.Fields {
			debugValue(b, depth+1, f.Name, f.Value)
		}
	}
}

func indexName(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
