package testutil

import (
	"net/http"

	id "inu/pkg/domain"
	"inu/pkg/requestcontext"
)

// WithCaller marks the request as authenticated by account, as the auth
// middleware would. The zero account leaves the request anonymous.
func WithCaller(req *http.Request, account id.AccountID) *http.Request {
	if account.IsZero() {
		return req
	}
	return req.WithContext(requestcontext.WithCaller(req.Context(), account))
}

// CallerMiddleware authenticates every request as *caller at serve time, so
// suites can switch accounts between subtests.
func CallerMiddleware(caller *id.AccountID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, WithCaller(r, *caller))
		})
	}
}
