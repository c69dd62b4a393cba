package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fikshb/LSPLMS-sub000/internal/config"
)

type contextKey string

const claimsContextKey contextKey = "user_claims"

var ErrNoClaims = errors.New("no user claims in context")

// AuthMiddleware accepts the token either from the Authorization header or
// from the jwt cookie set at login.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := ""
		if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenStr = strings.TrimPrefix(header, "Bearer ")
		} else if cookie, err := r.Cookie("jwt"); err == nil {
			tokenStr = cookie.Value
		}

		if tokenStr == "" {
			config.Error(w, http.StatusUnauthorized, "missing credentials")
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Rejected request with invalid token")
			config.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles guards a subtree behind one of the given roles. It assumes
// AuthMiddleware ran earlier in the chain.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := GetUserClaimsFromContext(r.Context())
			if err != nil {
				config.Error(w, http.StatusUnauthorized, "missing credentials")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			config.Error(w, http.StatusForbidden, "insufficient role")
		})
	}
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}
