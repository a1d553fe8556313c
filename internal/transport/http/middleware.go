package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// CartIDHeader carries the shopper's cart identity.
const CartIDHeader = "X-Cart-ID"

const maxCartIDLength = 64

type ctxKey int

const cartIDKey ctxKey = iota

// CartIDMiddleware reads the cart id from the request header, issuing a new
// one when it is missing or malformed. The id in use is echoed back.
func CartIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(CartIDHeader))
		if id == "" || len(id) > maxCartIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(CartIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), cartIDKey, id)))
	})
}

func cartIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(cartIDKey).(string)
	return id
}
