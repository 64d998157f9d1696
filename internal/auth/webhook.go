package auth

import (
	"errors"
	"strings"
)

var ErrUnauthorized = errors.New("unauthorized")

// SecretsEqual compares token against secret without short-circuiting on
// the first differing byte. Unequal lengths fail immediately.
func SecretsEqual(token, secret string) bool {
	if len(token) != len(secret) {
		return false
	}

	var acc byte
	for i := 0; i < len(token); i++ {
		acc |= token[i] ^ secret[i]
	}
	return acc == 0
}

// BearerToken pulls the token out of an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// CheckWebhook validates an Authorization header against the shared secret.
func CheckWebhook(header, secret string) error {
	if secret == "" {
		return ErrUnauthorized
	}
	token, ok := BearerToken(header)
	if !ok {
		return ErrUnauthorized
	}
	if !SecretsEqual(token, secret) {
		return ErrUnauthorized
	}
	return nil
}
