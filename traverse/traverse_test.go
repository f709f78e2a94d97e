package traverse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/hmpps-form-engine/ast"
	"github.com/ministryofjustice/hmpps-form-engine/id"
	"github.com/ministryofjustice/hmpps-form-engine/traverse"
)

func buildSampleTree(f *ast.Factory) *ast.Journey {
	field := f.Field("text-input", ast.ScalarValue("firstName"))
	basic := f.BasicBlock("container", field)
	step := f.Step("step-1", "/step-1", []ast.Node{basic})
	return f.Journey("journey-1", []*ast.Step{step})
}

func TestWalkVisitsRootFirst(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	journey := buildSampleTree(f)

	var order []string
	traverse.Walk(journey, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			order = append(order, n.NodeType())
			return traverse.Continue
		},
	})

	require.NotEmpty(t, order)
	assert.Equal(t, "JOURNEY", order[0])
	assert.Contains(t, order, "STEP")
	assert.Contains(t, order, "BLOCK")
}

func TestWalkSkipDoesNotDescend(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	journey := buildSampleTree(f)

	visited := map[string]bool{}
	traverse.Walk(journey, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			visited[n.NodeType()] = true
			if n.NodeType() == "STEP" {
				return traverse.Skip
			}
			return traverse.Continue
		},
	})

	assert.True(t, visited["STEP"])
	assert.False(t, visited["BLOCK"], "BLOCK should not be reached once its STEP ancestor was skipped")
}

func TestWalkStopAbortsImmediately(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	journey := buildSampleTree(f)

	count := 0
	sig := traverse.Walk(journey, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			count++
			return traverse.Stop
		},
	})

	assert.Equal(t, traverse.Stop, sig)
	assert.Equal(t, 1, count)
}

func TestContextParentAndPropertyName(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	journey := buildSampleTree(f)

	var gotParent ast.Node
	var gotProperty string
	traverse.Walk(journey, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			if n.NodeType() == "STEP" {
				gotParent = ctx.Parent()
				gotProperty = ctx.PropertyName()
			}
			return traverse.Continue
		},
	})

	require.NotNil(t, gotParent)
	assert.Equal(t, "JOURNEY", gotParent.NodeType())
	assert.Equal(t, "steps", gotProperty)
}

// TestPropertyNameSurvivesRecordAndSeqDescent covers the fix for
// PropertyName returning "" once a Seq or Record value is descended
// into: a block reached under "items" (a Record-shaped radio item
// inside the items Seq) must still report "items", not "".
func TestPropertyNameSurvivesRecordAndSeqDescent(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	detail := f.Field("text-input", ast.ScalarValue("detail"))
	radio := f.Field("radio", ast.ScalarValue("choice"), ast.WithItems(
		ast.RadioItem{Value: "x"},
		ast.RadioItem{Value: "y", Block: detail},
	))

	var gotProperty string
	traverse.Walk(radio, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			if n.ID() == detail.ID() {
				gotProperty = ctx.PropertyName()
			}
			return traverse.Continue
		},
	})

	assert.Equal(t, "items", gotProperty)
}

func TestExcludePropertySkipsSubtree(t *testing.T) {
	f := ast.NewFactory(id.NewGenerator(), nil)
	pipeline := f.Pipeline(f.Reference("post", "firstName"), f.Transformer("trim"))
	field := f.Field("text-input", ast.ScalarValue("firstName"))
	field.FormatPipeline = pipeline

	var sawPipeline bool
	traverse.WalkWithOptions(field, traverse.Visitor{
		Enter: func(n ast.Node, ctx *traverse.Context) traverse.Signal {
			if n.NodeType() == "PIPELINE" {
				sawPipeline = true
			}
			return traverse.Continue
		},
	}, traverse.Options{ExcludeProperty: "formatPipeline"})

	assert.False(t, sawPipeline, "formatPipeline subtree must not be descended into")
}
