package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

// UserIDKeyType is a private context key type to avoid collisions.
type UserIDKeyType string

// UserIDKey holds the authenticated user id in the request context.
const UserIDKey UserIDKeyType = "authenticatedUserID"

// Claims is the JWT claim structure issued by the identity provider.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTAuth authenticates the bearer token and then authorizes against the
// allow-list of exactly one identity: any authenticated user other than
// adminUID is treated as unauthenticated.
func JWTAuth(jwtSecret, adminUID string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("JWTAuth: 'Authorization' header not found", "path", r.URL.Path)
				http.Error(w, "authorization token is not provided", http.StatusUnauthorized)
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("JWTAuth: invalid 'Authorization' header format, expected 'Bearer <token>'", "path", r.URL.Path)
				http.Error(w, "authorization token format is invalid, expected 'Bearer <token>'", http.StatusUnauthorized)
				return
			}
			tokenString := parts[1]

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					log.Error("JWTAuth: unexpected signing method", "algorithm", token.Header["alg"])
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				log.Warn("JWTAuth: token parsing or validation failed", "path", r.URL.Path, "error", err)
				http.Error(w, "token is invalid", http.StatusUnauthorized)
				return
			}

			if claims.UserID == "" {
				log.Error("JWTAuth: UserID not found in token claims after successful validation", "path", r.URL.Path)
				http.Error(w, "user id not found in token claims", http.StatusUnauthorized)
				return
			}

			if claims.UserID != adminUID {
				log.Warn("JWTAuth: authenticated identity is not on the allow-list", "path", r.URL.Path, "user_id", claims.UserID)
				http.Error(w, "access denied", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
