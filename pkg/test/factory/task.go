package factory

import (
	"fmt"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"taskapi/internal/core/domain"
)

// NewTaskRecord builds a valid, incomplete task with no description or due
// date. Pass Description or DueDate in customData to set them.
func NewTaskRecord(customData ...map[string]any) domain.TaskRecord {
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	defaults := map[string]any{
		"ID":          id,
		"Title":       fmt.Sprintf("Task %s", id.String()[:8]),
		"IsCompleted": false,
		"CreatedAt":   now,
		"UpdatedAt":   now,
	}

	record := fab.New(domain.TaskRecord{}, fab.Options[domain.TaskRecord]{Defaults: defaults}).Build(merge(customData))
	record.Description = nil
	record.DueDate = nil

	for _, data := range customData {
		if description, ok := data["Description"].(*string); ok {
			record.Description = description
		}

		if dueDate, ok := data["DueDate"].(*time.Time); ok {
			record.DueDate = dueDate
		}
	}

	return record
}

func NewTask(customData ...map[string]any) *domain.Task {
	return domain.RestoreTask(NewTaskRecord(customData...))
}

// merge folds customData into the single override map Build honours. Later
// maps win.
func merge(customData []map[string]any) map[string]any {
	overrides := map[string]any{}

	for _, data := range customData {
		for key, value := range data {
			overrides[key] = value
		}
	}

	return overrides
}
