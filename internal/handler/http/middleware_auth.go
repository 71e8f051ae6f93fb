package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It reads the bearer token from the "Authorization" header, validates it via
// [service.AuthService.ParseToken] and stores the resulting
// [models.Principal] in the request context with [utils.WithPrincipal].
//
// Requests without a header are rejected with 401 and
// [app.MsgAuthenticationRequired]; malformed, expired or forged tokens with
// 401 and [app.MsgTokenIsExpiredOrInvalid].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if r.Header.Get("Authorization") == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, app.MsgAuthenticationRequired, http.StatusUnauthorized)
			return
		}

		h.authenticate(w, r, next)
	})
}

// optionalAuth attaches the principal when a token is presented and lets
// anonymous requests through untouched. A presented but invalid token is
// still rejected.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		h.authenticate(w, r, next)
	})
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	log := logger.FromRequest(r)

	tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		log.Err(ErrInvalidAuthorizationHeader).Send()
		http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Msg("error occurred during parsing token")
		http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
		return
	}

	next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(ctx, token.Principal())))
}
