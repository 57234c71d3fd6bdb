package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/taskpad/internal/transport"
)

type contextKey int

const userIDKey contextKey = iota

// getUserID extracts the caller's user ID from context.
func getUserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// identityMiddleware reads an optional bearer token issued by the login
// endpoint. Anonymous calls pass through; malformed tokens are rejected.
func identityMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return next(ctx, method, req)
			}

			auth := extra.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return next(ctx, method, req)
			}
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			userID, _, err := transport.ParseToken(token)
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}

			ctx = context.WithValue(ctx, userIDKey, userID)
			return next(ctx, method, req)
		}
	}
}
