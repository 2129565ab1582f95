// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"insurance-quote-workers/internal/common/validation"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate checks that every activity has a dotted id, a task type, and that
// ids and task types are unique within the registry.
func (r *ActivityRegistry) Validate() error {
	seenIDs := make(map[string]bool, len(r.Activities))
	seenTaskTypes := make(map[string]bool, len(r.Activities))

	for _, activity := range r.Activities {
		if err := validation.ValidateActivityNaming(activity.ID); err != nil {
			return fmt.Errorf("activity id %q does not follow domain.subdomain.action naming: %w", activity.ID, err)
		}
		if activity.TaskType == "" {
			return fmt.Errorf("activity %q has no task type", activity.ID)
		}
		if seenIDs[activity.ID] {
			return fmt.Errorf("duplicate activity id %q", activity.ID)
		}
		if seenTaskTypes[activity.TaskType] {
			return fmt.Errorf("duplicate task type %q", activity.TaskType)
		}
		seenIDs[activity.ID] = true
		seenTaskTypes[activity.TaskType] = true
	}
	return nil
}

// FindByTaskType returns the activity registered for the given task type.
func (r *ActivityRegistry) FindByTaskType(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// TaskTypes returns all registered task types in registry order.
func (r *ActivityRegistry) TaskTypes() []string {
	types := make([]string, 0, len(r.Activities))
	for _, activity := range r.Activities {
		types = append(types, activity.TaskType)
	}
	return types
}
