package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

type contextKey string

const (
	ClientIDKey contextKey = "clientId"
)

// ClientIDHeader carries the anonymous client identity that scopes history and library data
const ClientIDHeader = "X-Client-ID"

var validClientID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ClientID reads X-Client-ID, or issues a fresh one, and echoes it on the response
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(ClientIDHeader)
		if !validClientID.MatchString(id) {
			id = uuid.New().String()
		}
		w.Header().Set(ClientIDHeader, id)

		ctx := context.WithValue(r.Context(), ClientIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID extracts the client ID from context
func GetClientID(ctx context.Context) string {
	if v := ctx.Value(ClientIDKey); v != nil {
		return v.(string)
	}
	return ""
}
