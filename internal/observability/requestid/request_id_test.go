package requestid_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pqr-api/internal/observability/requestid"
)

func TestNewRequestIDFormat(t *testing.T) {
	id := requestid.NewRequestID()

	assert.True(t, strings.HasPrefix(id, "req_"), "id %q", id)
	require.Len(t, strings.Split(id, "_"), 3)
	// req_ + millis + _ + 20 hex chars
	assert.GreaterOrEqual(t, len(id), 30)
}

func TestNewRequestIDUniqueness(t *testing.T) {
	const n = 1000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		seen[requestid.NewRequestID()] = true
	}
	assert.Len(t, seen, n)
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	assert.Empty(t, requestid.GetRequestID(context.Background()))

	ctx := requestid.SetRequestID(context.Background(), "req_1")
	assert.Equal(t, "req_1", requestid.GetRequestID(ctx))

	ctx = requestid.SetRequestID(ctx, "req_2")
	assert.Equal(t, "req_2", requestid.GetRequestID(ctx))
}

func TestRequestIDContextIsolation(t *testing.T) {
	ctx1 := requestid.SetRequestID(context.Background(), "req_a")
	ctx2 := requestid.SetRequestID(context.Background(), "req_b")

	assert.Equal(t, "req_a", requestid.GetRequestID(ctx1))
	assert.Equal(t, "req_b", requestid.GetRequestID(ctx2))
}
