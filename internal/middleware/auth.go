package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taekwondodev/ledger-auth/internal/config"
	customerrors "github.com/taekwondodev/ledger-auth/internal/customErrors"
)

type claimsKey struct{}

// RequireAuth rejects requests without a valid bearer token and stores the
// token's claims in the request context.
func RequireAuth(token config.Token) func(HandlerFunc) HandlerFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			raw, ok := bearerToken(r)
			if !ok {
				return customerrors.ErrUnauthorized
			}

			claims, err := token.ValidateJWT(raw)
			if err != nil {
				return err
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			return next(w, r.WithContext(ctx))
		}
	}
}

func ClaimsFromContext(ctx context.Context) (*config.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*config.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
