package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// RequireRoles builds a role gate that must run after AuthMiddleware. It is
// a pure predicate over the allowed role set: no state is shared across
// requests, and a request with no resolved identity fails closed.
func RequireRoles(logger *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				logger.Warn("role check failed: user not found in context")
				writeRoleError(w, "Access denied")
				return
			}

			if _, ok := allowed[user.Role]; !ok {
				logger.Warn("access denied: role not permitted",
					"user_id", user.ID,
					"role", user.Role,
					"required_roles", roles)
				writeRoleError(w, fmt.Sprintf("Access denied: requires one of roles [%s]", strings.Join(roles, ", ")))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeRoleError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusForbidden,
		"message": message,
	})
}
