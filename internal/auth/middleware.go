package auth

import (
	"net/http"
)

// RequireAdmin is the plain-handler counterpart of Authorize, for routes that
// bypass huma (file uploads and document downloads).
func (h *AuthHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.AdminToken == "" {
			http.Error(w, "ADMIN_TOKEN not configured on the server", http.StatusInternalServerError)
			return
		}

		input := AdminInput{
			AdminToken: r.Header.Get("X-Admin-Token"),
			Cookie:     r.Header.Get("Cookie"),
		}
		if err := h.Authorize(input); err != nil {
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
