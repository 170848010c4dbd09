package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/karansingh008/Tourizio/authorization"
	"github.com/karansingh008/Tourizio/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

type sessionContextKey struct{}

func decodeBody(req *http.Request, target interface{}) error {
	return json.NewDecoder(req.Body).Decode(target)
}

func jsonResponse(object interface{}, writer http.ResponseWriter) {
	resp, err := json.Marshal(object)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	writer.Write(resp)
}

// SessionFromContext returns the session attached by SessionMiddleware.
func SessionFromContext(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionContextKey{}).(*domain.Session)
	return session
}

// SessionMiddleware resolves the bearer token to a cached session and puts it
// on the request context. Requests without a live session are sent to the
// sign-in page.
func SessionMiddleware(cache domain.SessionCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			bearer := req.Header.Get("Authorization")
			if bearer == "" {
				http.Redirect(writer, req, "/auth", http.StatusFound)
				return
			}

			bearerToken := strings.Split(bearer, "Bearer ")
			if len(bearerToken) != 2 {
				http.Redirect(writer, req, "/auth", http.StatusFound)
				return
			}

			claims, err := authorization.ParseClaims(bearerToken[1])
			if err != nil || time.Now().After(claims.ExpiresAt) {
				http.Redirect(writer, req, "/auth", http.StatusFound)
				return
			}

			session, err := cache.GetSession(req.Context(), claims.SessionID)
			if err != nil {
				log.Println("Error fetching session:", err)
				writer.WriteHeader(http.StatusInternalServerError)
				return
			}
			if session == nil {
				// Logged out or expired on the cache side.
				http.Redirect(writer, req, "/auth", http.StatusFound)
				return
			}

			ctx := context.WithValue(req.Context(), sessionContextKey{}, session)
			next.ServeHTTP(writer, req.WithContext(ctx))
		})
	}
}

func ExtractTraceInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
