package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies a dashboard user. Tokens are minted by the identity
// provider; this service only verifies them.
type Claims struct {
	UserID       string
	Email        string
	RestaurantID string
}

func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

// GenerateToken signs a 24h token. Used by tests.
func GenerateToken(c Claims) (string, error) {
	if c.UserID == "" {
		return "", errors.New("empty userID passed to GenerateToken")
	}

	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"userID":       c.UserID,
		"email":        c.Email,
		"restaurantID": c.RestaurantID,
		"exp":          time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	c := &Claims{}
	c.UserID, _ = mc["userID"].(string)
	c.Email, _ = mc["email"].(string)
	c.RestaurantID, _ = mc["restaurantID"].(string)

	if c.UserID == "" {
		return nil, errors.New("token has no subject")
	}
	return c, nil
}
