package middleware

import (
	"net/http"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/user"
	"github.com/astek-sistemas/participacao-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func SuperAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		level, ok := claims["access_level"].(string)
		if !ok || level != string(employee.AccessSuperAdmin) {
			response.HandleError(w, participation.ErrSuperAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
