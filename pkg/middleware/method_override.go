package middleware

import (
	"net/http"
	"strings"
)

const MethodOverrideField = "_method"

// MethodOverride lets HTML forms issue PATCH and DELETE through a hidden
// _method field. It wraps the whole engine because gin picks the route
// before its own middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && isForm(r) {
			if err := r.ParseForm(); err == nil {
				switch m := strings.ToUpper(r.PostForm.Get(MethodOverrideField)); m {
				case http.MethodPatch, http.MethodPut, http.MethodDelete:
					r.Method = m
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
