package controllers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func getJWTSecret() string {
	secret := getenv("JWT_SECRET", "")
	if secret == "" {
		secret = getenv("MOODLOG_JWT_SECRET", "")
	}
	if secret == "" {
		secret = "CHANGE_ME"
	}
	return secret
}

// signToken issues an HS256 token with the standard claims used by Login.
func signToken(secret string, userID int64, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
