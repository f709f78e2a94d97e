package pseudo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/id"
	"github.com/ministryofjustice/hmpps-form-engine/pseudo"
)

func TestDiscoverEmitsPostAndAnswerForEveryCodedField(t *testing.T) {
	gen := id.NewGenerator()
	f := ast.NewFactory(gen, nil)
	field := f.Field("text-input", ast.ScalarValue("firstName"))
	step := f.Step("step-1", "/step-1", []ast.Node{field})
	journey := f.Journey("journey-1", []*ast.Step{step})

	reg := pseudo.Discover(gen, journey, nil)

	post := reg.FindByType(func(n *pseudo.Node) bool { return n.PKind == pseudo.Post && n.Key == "firstName" })
	answer := reg.FindByType(func(n *pseudo.Node) bool { return n.PKind == pseudo.Answer && n.Key == "firstName" })
	require.Len(t, post, 1)
	require.Len(t, answer, 1)
	assert.Equal(t, field.ID(), answer[0].Node.FieldNodeID)
}

func TestDiscoverDeduplicatesByKey(t *testing.T) {
	gen := id.NewGenerator()
	f := ast.NewFactory(gen, nil)
	fieldA := f.Field("text-input", ast.ScalarValue("sharedCode"))
	fieldB := f.Field("text-input", ast.ScalarValue("sharedCode"))
	step := f.Step("step-1", "/step-1", []ast.Node{fieldA, fieldB})
	journey := f.Journey("journey-1", []*ast.Step{step})

	reg := pseudo.Discover(gen, journey, nil)

	answers := reg.FindByType(func(n *pseudo.Node) bool { return n.PKind == pseudo.Answer && n.Key == "sharedCode" })
	require.Len(t, answers, 1)
}

func TestDiscoverSkipsSelfReferenceAnswers(t *testing.T) {
	gen := id.NewGenerator()
	f := ast.NewFactory(gen, nil)
	field := f.Field("text-input", ast.ScalarValue("code"))
	field.Value = ast.NodeValue(f.Reference("answers", "@self"))
	step := f.Step("step-1", "/step-1", []ast.Node{field})
	journey := f.Journey("journey-1", []*ast.Step{step})

	reg := pseudo.Discover(gen, journey, nil)

	answers := reg.FindByType(func(n *pseudo.Node) bool { return n.PKind == pseudo.Answer })
	require.Len(t, answers, 1, "the @self reference must not produce a second ANSWER pseudo-node")
}

func TestDiscoverEmitsDataQueryParamsFromReferences(t *testing.T) {
	gen := id.NewGenerator()
	f := ast.NewFactory(gen, nil)
	field := f.Field("text-input", ast.ScalarValue("code"),
		ast.WithDefaultValue(ast.NodeValue(f.Reference("data", "caseRef"))))
	field.Validate = []*ast.Validation{
		f.Validation(f.Condition("equals", ast.NodeValue(f.Reference("query", "ref"))), "must equal"),
	}
	step := f.Step("step-1", "/step-1", []ast.Node{field})
	journey := f.Journey("journey-1", []*ast.Step{step})

	reg := pseudo.Discover(gen, journey, nil)

	assert.Len(t, reg.FindByType(func(n *pseudo.Node) bool { return n.PKind == pseudo.Data && n.Key == "caseRef" }), 1)
	assert.Len(t, reg.FindByType(func(n *pseudo.Node) bool { return n.PKind == pseudo.Query && n.Key == "ref" }), 1)
}
