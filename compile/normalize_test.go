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

package compile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/compile"
	"github.com/ministryofjustice/hmpps-form-engine/id"
)

// TestAttachValidationBlockCodeClonesDynamicCode covers spec §8 S6: a
// field whose code is itself an expression gets its validation's
// resolvedBlockCode set to a *clone* of that expression (distinct
// object identity, no carried-over id; same path).
func TestAttachValidationBlockCodeClonesDynamicCode(t *testing.T) {
	gen := id.NewGenerator()
	f := ast.NewFactory(gen, nil)

	dynamicCode := f.Reference("answers", "dynamicCode")
	validation := f.Validation(f.Condition("required"), "required")
	field := f.Field("text-input", ast.NodeValue(dynamicCode), ast.WithValidate(validation))
	step := f.Step("step-1", "/step-1", []ast.Node{field})
	journey := f.Journey("journey-1", []*ast.Step{step})

	require.NoError(t, compile.RunNormalizers(f, journey, nil, nil, nil))

	require.Equal(t, ast.NodeKind, validation.ResolvedBlockCode.Kind)
	clone, ok := validation.ResolvedBlockCode.Node.(*ast.Reference)
	require.True(t, ok)

	assert.True(t, dynamicCode != clone, "resolvedBlockCode must be a distinct clone, not the original node")
	assert.NotEqual(t, dynamicCode.ID(), clone.ID(), "clone must carry a fresh id, not the original's")
	assert.Equal(t, dynamicCode.Root(), clone.Root())
	originalKey, _ := dynamicCode.StaticKey()
	cloneKey, _ := clone.StaticKey()
	assert.Equal(t, originalKey, cloneKey)
}

// TestConvertFormattersToPipelineEmptyFormattersIsNoOp covers spec §8
// boundary behaviour 13: an explicitly empty formatters slice is
// treated as "no formatters" — no pipeline synthesized.
func TestConvertFormattersToPipelineEmptyFormattersIsNoOp(t *testing.T) {
	gen := id.NewGenerator()
	f := ast.NewFactory(gen, nil)
	field := f.Field("text-input", ast.ScalarValue("code"), ast.WithFormatters())

	require.NoError(t, compile.RunNormalizers(f, field, nil, nil, nil))

	assert.Nil(t, field.FormatPipeline)
}
