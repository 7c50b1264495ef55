// internal/handlers/guest.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/teencards/teenpatti/internal/auth"
)

// EnsureGuest resolves the participant identity for a connection. A valid
// auth_token cookie keeps its identity; anything else mints a fresh guest id
// and sets a signed cookie for it.
func EnsureGuest(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if cookie, err := r.Cookie("auth_token"); err == nil {
		sub, err := auth.AuthenticateJWT(cookie.Value)
		if err == nil {
			if id, parseErr := uuid.Parse(sub); parseErr == nil {
				return id, nil
			}
		}
		// Fall through: bad or stale token gets a new guest identity.
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to allocate guest id: %w", err)
	}
	token, err := auth.CreateJWT(id.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create guest token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return id, nil
}
