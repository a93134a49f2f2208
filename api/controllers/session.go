package controllers

import (
	"net/http"

	"github.com/pricewatch/pricewatch-bff/api/responses"
	pkgauth "github.com/pricewatch/pricewatch-bff/pkg/auth"
	pkgerrors "github.com/pricewatch/pricewatch-bff/pkg/errors"
	"github.com/pricewatch/pricewatch-bff/pkg/logger"
)

// SessionSignOut ends the caller's session. Access tokens are short-lived
// and stateless, so sign-out acknowledges the discard and logs it; the
// frontend drops the token.
func SessionSignOut(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := pkgauth.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeAuthRequired, "no authenticated session"))
			return
		}

		if logg != nil {
			ctx := logg.WithUserID(r.Context(), identity.UserID)
			logg.Info(ctx, "session.sign_out")
		}

		responses.WriteSuccess(w, map[string]bool{"signed_out": true})
	}
}
