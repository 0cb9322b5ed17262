package middleware

import (
	"mime"
	"net/http"

	apierrors "dataclean/internal/errors"
)

// ContentTypeValidator rejects bodies whose media type is not one of
// contentTypes with 415.
func ContentTypeValidator(errorHandler *apierrors.ErrorHandler, contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err == nil {
				for _, allowed := range contentTypes {
					if mediaType == allowed {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			errorHandler.HandleError(w, r, apierrors.ErrUnsupportedFormat.WithDetails(map[string]interface{}{
				"content_type": r.Header.Get("Content-Type"),
				"allowed":      contentTypes,
			}))
		})
	}
}
