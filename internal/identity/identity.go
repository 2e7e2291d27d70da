package identity

import (
	"github.com/golang-jwt/jwt/v5"
)

// GuestKey marks an unauthenticated user. Guests have no persisted history.
const GuestKey = ""

// UserKey resolves the identity the session collection is keyed by. An
// explicit email wins; otherwise the email claim is read from the stored
// access token. The token was issued and verified by the login collaborator,
// so it is decoded without signature verification here.
func UserKey(email, accessToken string) string {
	if email != "" {
		return email
	}
	if accessToken == "" {
		return GuestKey
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return GuestKey
	}
	if claimed, ok := claims["email"].(string); ok {
		return claimed
	}
	return GuestKey
}

// IsLoggedIn reports whether a user key denotes an authenticated user.
func IsLoggedIn(userKey string) bool {
	return userKey != GuestKey
}
