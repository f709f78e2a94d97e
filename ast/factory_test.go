package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/id"
)

type fakeVariants struct{ known map[string]bool }

func (f fakeVariants) KnownVariant(variant string) bool { return f.known[variant] }

func TestFactoryAssignsDistinctIDs(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	a := f.Field("text-input", ast.ScalarValue("firstName"))
	b := f.Field("text-input", ast.ScalarValue("lastName"))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestFactoryTracksUnknownVariants(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), fakeVariants{known: map[string]bool{"text-input": true}})
	f.Field("text-input", ast.ScalarValue("code"))
	f.Field("radio", ast.ScalarValue("other"))
	assert.Equal(t, []string{"radio"}, f.UnknownVariants())
}

func TestFactoryNilValidatorNeverFlagsVariants(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	f.BasicBlock("anything")
	require.Empty(t, f.UnknownVariants())
}

func TestFieldCodeCanBeAnExpression(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	ref := f.Reference("data", "computedCode")
	blk := f.Field("text-input", ast.NodeValue(ref))
	assert.Equal(t, ast.NodeKind, blk.Code.Kind)
	assert.True(t, ref == blk.Code.Node)
}
