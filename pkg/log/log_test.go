package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSyncContext(t *testing.T) {
	ctx := WithSyncContext(context.Background(), "req-1", "campaigns", 3)

	assert.NotEmpty(t, GetCorrelationID(ctx))

	syncCtx, ok := GetSyncContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, SyncContext{RequestID: "req-1", Phase: "campaigns", Iteration: 3}, syncCtx)
}

func TestWithSyncContext_KeepsCorrelationID(t *testing.T) {
	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithSyncContext(ctx, "req-1", "ads", 0)

	assert.Equal(t, correlationID, GetCorrelationID(ctx))
}

func TestForContext_WithoutValues(t *testing.T) {
	SetupTestLogger()
	assert.NotNil(t, ForContext(context.Background()))
}

func TestKeepField(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	assert.True(t, keepField("request_id"))
	assert.True(t, keepField("sync_retries"))
	assert.False(t, keepField("user_agent"))

	t.Setenv("APP_ENV", "production")
	assert.True(t, keepField("user_agent"))
}
