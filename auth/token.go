package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/josuejheymi/backend-levels/config"
	"github.com/josuejheymi/backend-levels/models"
)

// Tokens are valid for 10 hours.
const tokenTTL = 10 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the per-request identity extracted from a bearer token.
type Claims struct {
	UserID uint
	Email  string
	Role   string
}

// IssueToken signs an HS256 JWT with the user's identity as subject.
func IssueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.Email,
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ParseToken validates a signed token and returns its identity claims.
func ParseToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)

	return Claims{UserID: uint(userID), Email: email, Role: role}, nil
}
