package middlew

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/internal/service"
	"currency-converter/pkg/response"
)

// RequireAdmin пропускает запрос дальше только с валидным Bearer токеном администратора.
func RequireAdmin(authService service.Auth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.WriteJSONError(w, log, http.StatusUnauthorized, response.CodeUnauthorized, "Authorization header is required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Warn("invalid authorization header format")
				response.WriteJSONError(w, log, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, custom_err.ErrTokenExpired):
					response.WriteJSONError(w, log, http.StatusUnauthorized, response.CodeTokenExpired, "Token has expired")
				case errors.Is(err, custom_err.ErrTokenNotActive):
					response.WriteJSONError(w, log, http.StatusUnauthorized, response.CodeTokenNotActive, "Token not yet active")
				case errors.Is(err, custom_err.ErrInvalidToken):
					response.WriteJSONError(w, log, http.StatusUnauthorized, response.CodeInvalidToken, "Invalid token")
				default:
					log.Error("failed to validate token", slog.String("error", err.Error()))
					response.WriteJSONError(w, log, http.StatusInternalServerError, response.CodeInternal, "Internal error")
				}
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, loggerKey, log.With(slog.String("role", claims.Role)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAdminClaims(ctx context.Context) (*models.AdminClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*models.AdminClaims)
	return claims, ok
}
