package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/hmpps-form-engine/registry"
)

func TestRegisterIsIdempotentForEqualNodes(t *testing.T) {
	r := registry.New[string](func(a, b string) bool { return a == b })
	require.NoError(t, r.Register("n1", "hello"))
	require.NoError(t, r.Register("n1", "hello"))
	assert.Equal(t, 1, r.Len())
}

func TestRegisterRejectsConflictingNode(t *testing.T) {
	r := registry.New[string](func(a, b string) bool { return a == b })
	require.NoError(t, r.Register("n1", "hello"))
	err := r.Register("n1", "goodbye")
	assert.Error(t, err)
}

func TestGetIdsPreservesInsertionOrder(t *testing.T) {
	r := registry.New[string](nil)
	r.Register("c", "3")
	r.Register("a", "1")
	r.Register("b", "2")
	assert.Equal(t, []string{"c", "a", "b"}, r.GetIds())
}

func TestFindByTypeFiltersAndPreservesOrder(t *testing.T) {
	r := registry.New[int](nil)
	r.Register("n1", 1)
	r.Register("n2", 2)
	r.Register("n3", 3)

	even := r.FindByType(func(n int) bool { return n%2 == 0 })
	require.Len(t, even, 1)
	assert.Equal(t, "n2", even[0].ID)
}

func TestMetadataRegistryGetSetDelete(t *testing.T) {
	m := registry.NewMetadataRegistry()
	assert.False(t, m.Has("n1", "depth"))
	assert.Equal(t, 0, m.Get("n1", "depth", 0))

	m.Set("n1", "depth", 3)
	assert.True(t, m.Has("n1", "depth"))
	assert.Equal(t, 3, m.Get("n1", "depth", 0))

	m.Delete("n1", "depth")
	assert.False(t, m.Has("n1", "depth"))
}

func TestFindNodesWhereIsSortedForDeterminism(t *testing.T) {
	m := registry.NewMetadataRegistry()
	m.Set("z", "flag", true)
	m.Set("a", "flag", true)
	m.Set("m", "flag", true)
	m.Set("b", "flag", false)

	got := m.FindNodesWhere("flag", true)
	assert.Equal(t, []string{"a", "m", "z"}, got)
}
