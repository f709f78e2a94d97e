package errs_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ministryofjustice/hmpps-form-engine/errs"
)

func TestKindsWrapAndDiscriminate(t *testing.T) {
	err := errs.InvalidNode.New("field:1", "missing code")
	assert.True(t, errs.InvalidNode.Is(err))
	assert.False(t, errs.DuplicateNodeId.Is(err))
	assert.Contains(t, err.Error(), "missing code")
}

func TestDuplicateNodeIdMessage(t *testing.T) {
	err := errs.DuplicateNodeId.New("compile_ast:3")
	assert.Contains(t, fmt.Sprint(err), "compile_ast:3")
}

func TestCycleInStructuralGraphMessage(t *testing.T) {
	err := errs.CycleInStructuralGraph.New("compile_ast:1", "compile_ast:2")
	assert.True(t, errs.CycleInStructuralGraph.Is(err))
}
