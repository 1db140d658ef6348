package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidJWTToken = errors.New("JWT token is invalid")
	ErrExpiredJWTToken = errors.New("JWT token is expired")
)

// AccessTokenClaims mirrors the claims the hosted auth provider puts into its
// HS256 access tokens.
type AccessTokenClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.StandardClaims
}

type JWTManagerInterface interface {
	ValidateAccessToken(tokenString string) (*AccessTokenClaims, error)
}

type JWTManager struct {
	secret string
}

func NewJWTManager(secret string) (*JWTManager, error) {
	if secret == "" {
		return nil, errors.New("JWT secret must not be empty")
	}
	return &JWTManager{secret: secret}, nil
}

// GenerateAccessJWT signs a token the same way the auth provider does. It is
// used by tests and local tooling only.
func (j *JWTManager) GenerateAccessJWT(subject, role string, duration time.Duration) (string, error) {
	claims := &AccessTokenClaims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTManager) ValidateAccessToken(tokenString string) (*AccessTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(j.secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&(jwt.ValidationErrorExpired) != 0 {
				return nil, ErrExpiredJWTToken
			}
		}
		return nil, ErrInvalidJWTToken
	}

	claims, ok := token.Claims.(*AccessTokenClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidJWTToken
	}

	return claims, nil
}
