package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"dataclean/internal/config"
	apierrors "dataclean/internal/errors"
)

// APIKeyAuth requires a valid X-API-Key header. The key is checked against the
// bcrypt hash when one is configured, otherwise against the plain key in
// constant time. With neither configured the middleware is a pass-through.
func APIKeyAuth(logger *slog.Logger, security config.SecurityConfig, errorHandler *apierrors.ErrorHandler) func(next http.Handler) http.Handler {
	verify := keyVerifier(security)

	return func(next http.Handler) http.Handler {
		if verify == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			apiKey := r.Header.Get(config.HeaderAPIKey)
			if apiKey == "" {
				logger.WarnContext(ctx, "missing API key",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				)
				errorHandler.HandleError(w, r, apierrors.ErrUnauthorized.WithDetails("API key required"))
				return
			}

			if !verify(apiKey) {
				logger.WarnContext(ctx, "invalid API key",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				)
				errorHandler.HandleError(w, r, apierrors.ErrUnauthorized.WithDetails("Invalid API key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func keyVerifier(security config.SecurityConfig) func(string) bool {
	switch {
	case security.APIKeyHash != "":
		hash := []byte(security.APIKeyHash)
		return func(key string) bool {
			return bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil
		}
	case security.APIKey != "":
		want := []byte(security.APIKey)
		return func(key string) bool {
			return subtle.ConstantTimeCompare(want, []byte(key)) == 1
		}
	default:
		return nil
	}
}

// HashAPIKey returns the bcrypt hash to configure as the API key hash.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
