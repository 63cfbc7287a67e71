package router

import (
	"crypto/subtle"
	"net/http"
)

// HeaderCronSecret authenticates scheduler-triggered internal endpoints.
const HeaderCronSecret = "X-Cron-Secret"

// MiddlewareCronSecret rejects requests whose X-Cron-Secret header does not
// match the configured secret. Intended for internal endpoints invoked by the
// cron scheduler rather than end users.
func MiddlewareCronSecret(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get(HeaderCronSecret)
			if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
