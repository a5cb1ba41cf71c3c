package mw

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"machineshop/internal/service"
)

type contextKey string

const (
	ClientCtxKey contextKey = "client_id"
	EmailCtxKey  contextKey = "email"
)

func AuthMiddleware(tokens *service.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "unauthorized")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "invalid token format")
				return
			}

			clientID, email, err := tokens.Parse(parts[1])
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClientCtxKey, clientID)
			ctx = context.WithValue(ctx, EmailCtxKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClientID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ClientCtxKey).(string)
	return id, ok && id != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
