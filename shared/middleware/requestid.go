package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const requestIdKey key = 1

// RequestId assigns each request a uuid, exposed via header and context for
// log correlation.
func RequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIdKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey).(string)
	return id
}
