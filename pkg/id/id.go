package id

import (
	"context"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

type contextKey struct{}

// GenRequestID new random request id
func GenRequestID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Valid reports whether id parses as a uuid
func Valid(id string) bool {
	return foxuuid.IsUUID(id)
}

// Derive stable child id of parent, the same pair always yields the same id.
// A parent that is not a uuid is hashed into one first.
func Derive(parent, name string) string {
	if !Valid(parent) {
		parent = foxuuid.MD5(parent)
	}

	return foxuuid.Modify(parent, name)
}

// WithRequestID context carrying the request id
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

// RequestIDFrom request id of ctx, a new one when ctx has none
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok && v != "" {
		return v
	}

	return GenRequestID()
}
