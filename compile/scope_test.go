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

func TestScopeChainIsStepThenJourneyInnermostFirst(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	stepEffect := f.Effect("loadCase")
	journeyEffect := f.Effect("loadUser")

	field := f.Field("text-input", ast.ScalarValue("code"))
	step := f.Step("step-1", "/step-1", []ast.Node{field}, f.Transition(ast.OnLoad, stepEffect, "load case"))
	journey := f.Journey("journey-1", []*ast.Step{step}, f.Transition(ast.OnLoad, journeyEffect, "load user"))

	reg := compile.NewASTRegistry()
	meta := registry.NewMetadataRegistry()
	stepOf, err := compile.Register(journey, reg, meta, "")
	require.NoError(t, err)

	scope := compile.NewScopeIndex(journey, meta, stepOf)
	chain := scope.OnLoadChain(field.ID())

	require.Len(t, chain, 2)
	assert.Equal(t, stepEffect.Name, chain[0].Effect.Name)
	assert.Equal(t, journeyEffect.Name, chain[1].Effect.Name)
}

func TestScopeChainForNodeOutsideAnyStepIsJourneyOnly(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	journeyEffect := f.Effect("loadUser")
	journey := f.Journey("journey-1", nil, f.Transition(ast.OnLoad, journeyEffect, "load user"))

	reg := compile.NewASTRegistry()
	meta := registry.NewMetadataRegistry()
	stepOf, err := compile.Register(journey, reg, meta, "")
	require.NoError(t, err)

	scope := compile.NewScopeIndex(journey, meta, stepOf)
	chain := scope.OnLoadChain(journey.ID())

	require.Len(t, chain, 1)
	assert.Equal(t, "loadUser", chain[0].Effect.Name)
}
