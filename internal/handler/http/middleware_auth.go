package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token
// via [utils.ParseBearerToken], resolves the account via
// [service.AuthService.Authorize], and — on success — stores the user's ID
// and role in the request context under [utils.UserIDCtxKey] and
// [utils.UserRoleCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - the "Authorization" header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader]);
//   - the token is expired, malformed, or belongs to no known account.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authorize(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("authorization failed")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the identity in the context so that downstream handlers can
		// retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.UserID)
		ctx = context.WithValue(ctx, utils.UserRoleCtxKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authOptional resolves the caller's identity when a valid bearer token is
// present but never rejects the request. It is used on the public card read
// route so that an owner viewing their own card is recognized and not
// counted as a visitor. A missing or invalid token simply leaves the
// request anonymous.
func (h *Handler) authOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authorize(ctx, tokenString)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("optional authorization skipped")
			next.ServeHTTP(w, r)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.UserID)
		ctx = context.WithValue(ctx, utils.UserRoleCtxKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
