package auth

import "strings"

// Guard gates private operations on a valid bearer token. It trusts the
// token's claims and never consults the user store.
type Guard struct {
	tokens *TokenManager
}

// NewGuard creates a Guard verifying tokens with tokens.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticate extracts the token from an "Authorization: Bearer <token>"
// header value and verifies it.
func (g *Guard) Authenticate(header string) (Identity, error) {
	token, ok := bearerToken(header)
	if !ok {
		return Identity{}, ErrTokenMissing
	}
	return g.tokens.Parse(token)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
