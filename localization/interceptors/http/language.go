package http

import (
	"net/http"

	"github.com/itoolpack/itoolpack/localization"
)

// LanguageHTTPMiddleware negotiates the request language against n and sets it in the context.
func LanguageHTTPMiddleware(n localization.Negotiator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := n.Match(localization.ExtractLanguageFromHTTPRequest(r)...)

		ctx := localization.ToContext(r.Context(), lang)
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}
