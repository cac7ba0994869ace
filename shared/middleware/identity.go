package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/threadlens/threadlens/shared/domain"
	"github.com/threadlens/threadlens/shared/identity"
)

// Key to store the caller in the request context
type key int

const callerKey key = 0

// OptionalIdentity attaches a Caller to the context when a valid access token
// is present. Requests without one, or with a stale/garbled token, proceed
// anonymously: the gallery itself decides what an anonymous caller may see.
func OptionalIdentity(decoder identity.Decoder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ""
			if cookie, err := r.Cookie("accessToken"); err == nil {
				tokenString = cookie.Value
			} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
				tokenString = token
			}

			if tokenString != "" {
				if caller, err := decoder.DecodeCaller(tokenString); err == nil {
					ctx := context.WithValue(r.Context(), callerKey, caller)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetCallerFromContext returns the caller set by OptionalIdentity, or nil for
// anonymous requests.
func GetCallerFromContext(r *http.Request) *domain.Caller {
	caller, _ := r.Context().Value(callerKey).(*domain.Caller)
	return caller
}

// WithCaller puts a caller into a request context. Test helper and shell
// handler plumbing.
func WithCaller(ctx context.Context, caller *domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}
