package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// RoleAdmin is the only role allowed to move orders along
const RoleAdmin = "admin"

// AdminTokenTTL is how long a minted admin token stays valid
const AdminTokenTTL = 24 * time.Hour

var ErrMissingSecret = errors.New("ADMIN_JWT_SECRET is not set")

// Claims represents the JWT claims
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// GenerateAdminJWT mints an HS256 admin token for subject
func GenerateAdminJWT(secret []byte, subject string, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	claims := &Claims{
		Role: RoleAdmin,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(AdminTokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseToken verifies an HS256 token against secret and returns its claims
func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
