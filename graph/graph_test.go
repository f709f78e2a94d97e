package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/hmpps-form-engine/graph"
)

func TestAddEdgeRejectsStructuralCycle(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b", graph.Structural, nil))
	require.NoError(t, g.AddEdge("b", "c", graph.Structural, nil))

	err := g.AddEdge("c", "a", graph.Structural, nil)
	assert.Error(t, err)
}

func TestAddEdgeAllowsDataFlowCycle(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b", graph.DataFlow, nil))
	require.NoError(t, g.AddEdge("b", "a", graph.DataFlow, nil))
}

func TestMultipleEdgeTypesBetweenSamePair(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b", graph.Structural, nil))
	require.NoError(t, g.AddEdge("a", "b", graph.DataFlow, nil))

	edges := g.GetEdges("a", "b")
	require.Len(t, edges, 2)
}

func TestGetDependenciesAndDependentsAreSorted(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("z", "x", graph.DataFlow, nil))
	require.NoError(t, g.AddEdge("a", "x", graph.DataFlow, nil))

	assert.Equal(t, []string{"a", "z"}, g.GetDependencies("x"))
	assert.Equal(t, []string{"x"}, g.GetDependents("z"))
}

func TestDOTIsDeterministic(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("b", "c", graph.DataFlow, nil))
	require.NoError(t, g.AddEdge("a", "b", graph.Structural, nil))

	first := g.DOT()
	second := g.DOT()
	assert.Equal(t, first, second)
	assert.Contains(t, first, `"a" -> "b"`)
}
