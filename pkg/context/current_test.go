package context_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	ct "taskapi/pkg/context"
)

func TestCurrent(t *testing.T) {
	t.Run("should round trip through a context", func(t *testing.T) {
		current := ct.NewCurrent()
		id := uuid.New()

		current.Set("request_id", "req-1")
		current.Set("user_id", id)

		ctx := ct.WithCurrent(context.Background(), current)
		got, ok := ct.FromContext(ctx)

		assert.True(t, ok)

		requestID, _ := got.GetString("request_id")
		userID, _ := got.GetUUID("user_id")

		assert.Equal(t, "req-1", requestID)
		assert.Equal(t, id, userID)
	})

	t.Run("should hand out an empty bag when none is set", func(t *testing.T) {
		current := ct.GetCurrent(context.Background())

		_, ok := current.GetString("request_id")
		_, hasUser := current.GetUUID("user_id")

		assert.False(t, ok)
		assert.False(t, hasUser)
	})
}
