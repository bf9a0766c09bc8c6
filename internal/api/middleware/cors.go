package middleware

import "net/http"

// CORS allows the dashboard frontend to call the API from another
// origin and to read the rotated-token headers set by Auth
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Refresh-Token")
		w.Header().Set("Access-Control-Expose-Headers", "X-Access-Token, X-Refresh-Token, X-Token-Expires")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
