package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/apex/log"
)

type contextKey string

const userIDKey contextKey = "userID"

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UserIDFromContext returns the token subject stored by the middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// JWTAccessTokenMiddleware accepts requests carrying a valid bearer token
// whose role is one of allowedRoles. With no roles every valid token passes.
func JWTAccessTokenMiddleware(jwtManager JWTManagerInterface, allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			claims, err := jwtManager.ValidateAccessToken(tokenString)
			if err != nil {
				if errors.Is(err, ErrExpiredJWTToken) {
					writeJSONError(w, http.StatusUnauthorized, ErrExpiredJWTToken.Error())
					return
				}
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if !roleAllowed(claims.Role, allowedRoles) {
				log.WithFields(log.Fields{"subject": claims.Subject, "role": claims.Role}).Warn("Rejected token with insufficient role")
				writeJSONError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func roleAllowed(role string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}

// writeJSONError writes an error response in JSON format
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
	})
}
