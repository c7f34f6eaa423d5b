// Package requestid genera y propaga el identificador de correlación que
// acompaña cada petición en logs y respuestas de error.
package requestid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

// NewRequestID builds a sortable correlation ID: millisecond timestamp plus
// 10 random bytes, so IDs of concurrent calls stay roughly time-ordered in
// log storage.
func NewRequestID() string {
	millis := time.Now().UnixMilli()

	entropy := make([]byte, 10)
	if _, err := rand.Read(entropy); err != nil {
		return fmt.Sprintf("req_%d", millis)
	}

	return fmt.Sprintf("req_%d_%s", millis, hex.EncodeToString(entropy))
}

// GetRequestID returns the correlation ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}

// SetRequestID stores the correlation ID in ctx.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}
