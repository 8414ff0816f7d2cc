package middleware

import (
	"context"
	"net/http"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// Context keys
type contextKey string

const (
	userIDContextKey = contextKey("userID")
	tokenContextKey  = contextKey("token")
)

// Auth valide le token de session et injecte l'identifiant utilisateur
// dans le contexte de la requête
func Auth(st store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Récupérer le token depuis le header Authorization
			token, err := utils.GetToken(r)
			if err != nil {
				utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
				return
			}

			// Valider le token et récupérer l'utilisateur associé
			userID, err := st.GetUserIDByToken(r.Context(), token)
			if err != nil || userID == "" {
				utils.ErrorSimple(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			// Injecter l'utilisateur et le token dans le contexte
			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			ctx = context.WithValue(ctx, tokenContextKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext récupère l'ID de l'utilisateur depuis le contexte de la requête
func GetUserIDFromContext(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

// GetTokenFromContext récupère le token depuis le contexte de la requête
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok && token != ""
}
