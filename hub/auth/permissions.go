package auth

import (
	"net/http"
)

// AdminOnly guards routes that mutate other users. Must run after the
// identity provider's middleware has attached the user to the context.
func AdminOnly(next http.Handler) http.Handler {
	handler := func(w http.ResponseWriter, r *http.Request) {
		user, err := UserFromContext(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if !user.IsAdmin {
			http.Error(w, "user must be an admin to access this endpoint", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(handler)
}
