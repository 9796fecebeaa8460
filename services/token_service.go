package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims are the verified contents of a session token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// TokenService is responsible for creating and validating session JWTs.
//
// Tokens are session-lifetime: they carry iat but no exp claim, so they stay
// valid until the signing secret rotates.
type TokenService struct {
	secretKey []byte
}

// NewTokenService creates a TokenService with the given signing secret.
func NewTokenService(secret string) *TokenService {
	if secret == "" {
		panic("token service requires a signing secret")
	}
	return &TokenService{secretKey: []byte(secret)}
}

// Generate signs a session token for the given identity. Pure function of
// identity + secret; no state is recorded.
func (s *TokenService) Generate(userID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Validate parses and verifies a token string, returning its claims.
func (s *TokenService) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, ok := mapClaims["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("invalid token: user_id claim is missing or not a string")
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token: email claim is missing or not a string")
	}
	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token: role claim is missing or not a string")
	}

	return &Claims{UserID: userID, Email: email, Role: role}, nil
}
