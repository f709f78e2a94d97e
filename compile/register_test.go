package compile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/compile"
	"github.com/ministryofjustice/hmpps-form-engine/id"
	"github.com/ministryofjustice/hmpps-form-engine/registry"
)

func TestRegisterPopulatesRegistryAndDepth(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	field := f.Field("text-input", ast.ScalarValue("code"))
	step := f.Step("step-1", "/step-1", []ast.Node{field})
	journey := f.Journey("journey-1", []*ast.Step{step})

	reg := compile.NewASTRegistry()
	meta := registry.NewMetadataRegistry()

	stepOf, err := compile.Register(journey, reg, meta, "step-1")
	require.NoError(t, err)

	assert.True(t, reg.Has(journey.ID()))
	assert.True(t, reg.Has(step.ID()))
	assert.True(t, reg.Has(field.ID()))
	assert.Equal(t, 0, meta.Get(journey.ID(), "depth", -1))
	assert.Equal(t, 1, meta.Get(step.ID(), "depth", -1))

	assert.True(t, step == stepOf[field.ID()])
	assert.Equal(t, true, meta.Get(field.ID(), "isCurrentStep", false))
	assert.Equal(t, true, meta.Get(journey.ID(), "isAncestorOfStep", false))
}

// TestRegisterOnlyMarksDescendantsOfTheCurrentStep covers spec's tying
// of isDescendantOfStep to the single current step: a field under some
// other step gets neither isDescendantOfStep nor isCurrentStep, even
// though stepOf still records which step it belongs to.
func TestRegisterOnlyMarksDescendantsOfTheCurrentStep(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	field := f.Field("text-input", ast.ScalarValue("code"))
	step := f.Step("other-step", "/other-step", []ast.Node{field})
	journey := f.Journey("journey-1", []*ast.Step{step})

	reg := compile.NewASTRegistry()
	meta := registry.NewMetadataRegistry()
	stepOf, err := compile.Register(journey, reg, meta, "step-1")
	require.NoError(t, err)

	assert.True(t, step == stepOf[field.ID()])
	assert.Equal(t, false, meta.Get(field.ID(), "isDescendantOfStep", false))
	assert.Equal(t, false, meta.Get(field.ID(), "isCurrentStep", false))
}

// TestRegisterMarksDescendantOfCurrentStep is the positive counterpart:
// a field under the step matching currentStepCode gets both flags.
func TestRegisterMarksDescendantOfCurrentStep(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	field := f.Field("text-input", ast.ScalarValue("code"))
	step := f.Step("step-1", "/step-1", []ast.Node{field})
	journey := f.Journey("journey-1", []*ast.Step{step})

	reg := compile.NewASTRegistry()
	meta := registry.NewMetadataRegistry()
	_, err := compile.Register(journey, reg, meta, "step-1")
	require.NoError(t, err)

	assert.Equal(t, true, meta.Get(field.ID(), "isDescendantOfStep", false))
	assert.Equal(t, true, meta.Get(field.ID(), "isCurrentStep", false))
}
