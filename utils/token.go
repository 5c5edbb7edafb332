package utils

import (
	"fmt"
	"os"
	"time"

	"locker-booking/constants"
	userModel "locker-booking/models/user"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is how long an issued session token stays valid.
const tokenTTL = 24 * time.Hour

func jwtSecret() ([]byte, error) {
	secret := os.Getenv(constants.EnvJWTSecret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return []byte(secret), nil
}

// IssueToken signs an HS256 session token carrying the user's id, uuid,
// username and role.
func IssueToken(u *userModel.User) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"uid":      u.ID,
		"uuid":     u.Uuid,
		"username": u.Username,
		"role":     u.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken parses and validates a session token, returning its claims.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}
