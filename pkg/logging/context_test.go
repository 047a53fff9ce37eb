package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/scrub/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithColumn adds column to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithColumn(ctx, "email")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithPass adds pass number to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithPass(ctx, 2)

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithOperation adds operation to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithOperation(ctx, "detect")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithFiller adds filler to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithFiller(ctx, "gemini")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithRunID tags logger and context", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithRunID(ctx, "run-42")

		assert.Equal(t, "run-42", logging.RunID(ctx))

		logging.Ctx(ctx).Info().Msg("tagged")
		testLogger.AssertContains(t, "run-42")
	})

	t.Run("WithFields adds custom fields to context", func(t *testing.T) {
		ctx := context.Background()
		fields := map[string]interface{}{
			"rows":   120,
			"run_id": "abc-def",
		}
		ctx = logging.WithFields(ctx, fields)

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("FromContext returns logger from context", func(t *testing.T) {
		ctx := context.Background()

		logger1 := logging.FromContext(ctx)
		assert.NotNil(t, logger1)

		ctx = logging.WithColumn(ctx, "city")
		logger2 := logging.FromContext(ctx)
		assert.NotNil(t, logger2)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithOperation(ctx, "repair")
		ctx = logging.WithPass(ctx, 1)
		ctx = logging.WithColumn(ctx, "country")
		ctx = logging.WithFiller(ctx, "gemini")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})
}
