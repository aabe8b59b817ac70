package auth

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// tokenTTL is how long an issued token stays valid.
const tokenTTL = 30 * 24 * time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// contextKey is the private type for context values set by this package.
type contextKey string

// UserIDKey is the context key under which the middleware stores the
// authenticated caller's user id.
const UserIDKey = contextKey("userID")

// GenerateToken creates a new signed token for a given user id.
func GenerateToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ResolveToken parses and validates a token string and returns the user id it
// was issued for. Missing, malformed, expired or tampered tokens all resolve
// to absent (ok == false); callers treat that as unauthenticated, never as a
// system error.
func ResolveToken(tokenStr string) (string, bool) {
	if tokenStr == "" {
		return "", false
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

// CallerID extracts the authenticated user id from a request context. It
// returns the empty string when no identity was resolved.
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// Middleware creates a middleware for protecting routes. It resolves the
// bearer token once and passes the caller's user id down via context.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// 1. Try to get the token from the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			// 2. If not in header, fall back to the cookie
			if tokenStr == "" {
				if cookie, err := r.Cookie("token"); err == nil {
					tokenStr = cookie.Value
				}
			}

			// 3. Resolve the token; any failure means unauthenticated
			userID, ok := ResolveToken(tokenStr)
			if !ok {
				http.Error(w, "Missing or invalid auth token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
