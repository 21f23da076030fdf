package middleware

import (
	"errors"
	"net/http"

	"github.com/emp-proj/employee-register-go/internal/domain/auth"
	"github.com/emp-proj/employee-register-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired lets only verified access tokens through. It runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())

		switch {
		case errors.Is(err, jwtauth.ErrNoTokenFound):
			response.HandleError(w, auth.ErrMissingToken)
			return
		case errors.Is(err, jwtauth.ErrExpired):
			response.HandleError(w, auth.ErrTokenExpired)
			return
		case err != nil:
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		claims, err := token.AsMap(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
