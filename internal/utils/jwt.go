package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the claims of an identity-provider access token. The user id
// is the subject.
type Claims struct {
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

type UserMetadata struct {
	Name string `json:"name,omitempty"`
}

// GenerateAccessToken signs an HS256 access token in the identity
// provider's format.
func GenerateAccessToken(userID, email, name, jwtSecret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(ttl)

	claims := &Claims{
		Email:        email,
		Role:         "authenticated",
		UserMetadata: UserMetadata{Name: name},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expirationTime, nil
}

// Validate token and return claims
func ValidateToken(tokenString, jwtSecret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.Subject != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
