package requestinfo

import (
	"context"
	"net/http"
)

// Enrich parses request metadata once and stores it in the context so any
// downstream handler can read it via FromContext.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &Info{
			UA: parse(r.UserAgent()),
			IP: clientIP(r),
		}
		ctx := context.WithValue(r.Context(), ctxKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
