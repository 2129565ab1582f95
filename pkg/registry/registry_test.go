// pkg/registry/registry_test.go
package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{ID: "quote.generation.create", TaskType: "generate-quotes"},
			{ID: "quote.recommendation.score", TaskType: "recommend-quote"},
			{ID: "advisory.assignment.select", TaskType: "assign-representative"},
		},
	}
}

func TestRegistry_Validate(t *testing.T) {
	require.NoError(t, validRegistry().Validate())
}

func TestRegistry_Validate_RejectsBadNaming(t *testing.T) {
	reg := validRegistry()
	reg.Activities[0].ID = "GenerateQuotes"

	err := reg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "naming")
}

func TestRegistry_Validate_RejectsDuplicates(t *testing.T) {
	reg := validRegistry()
	reg.Activities[1].TaskType = "generate-quotes"

	assert.Error(t, reg.Validate())
}

func TestRegistry_Validate_RejectsMissingTaskType(t *testing.T) {
	reg := validRegistry()
	reg.Activities[2].TaskType = ""

	assert.Error(t, reg.Validate())
}

func TestRegistry_FindByTaskType(t *testing.T) {
	reg := validRegistry()

	activity, ok := reg.FindByTaskType("recommend-quote")
	require.True(t, ok)
	assert.Equal(t, "quote.recommendation.score", activity.ID)

	_, ok = reg.FindByTaskType("unknown-task")
	assert.False(t, ok)
}

func TestRegistry_TaskTypes(t *testing.T) {
	assert.Equal(t,
		[]string{"generate-quotes", "recommend-quote", "assign-representative"},
		validRegistry().TaskTypes(),
	)
}
