package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const usernameKey = contextKey("username")

// TokenParser verifies a bearer token and returns its subject.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// Auth rejects requests without a valid bearer token.
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization := r.Header.Get("Authorization")
			if !strings.HasPrefix(authorization, "Bearer ") {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			username, err := parser.ParseToken(strings.TrimPrefix(authorization, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Username(ctx context.Context) string {
	if val, ok := ctx.Value(usernameKey).(string); ok {
		return val
	}
	return ""
}
