package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "modeva-storefront"

// VisitorClaims identify an anonymous visitor's browse session and cart.
type VisitorClaims struct {
	SessionID string `json:"sid"`
	CartID    string `json:"cid"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies visitor tokens.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenService(secretKey string, ttl time.Duration) (*TokenService, error) {
	if secretKey == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenService{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for sessionID and cartID. It returns the expiry too.
func (s *TokenService) Issue(sessionID, cartID string) (string, time.Time, error) {
	if sessionID == "" || cartID == "" {
		return "", time.Time{}, errors.New("sessionID and cartID cannot be empty")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := VisitorClaims{
		SessionID: sessionID,
		CartID:    cartID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Verify parses a token and checks its signature, expiry and claims.
func (s *TokenService) Verify(tokenString string) (*VisitorClaims, error) {
	claims := &VisitorClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.SessionID == "" || claims.CartID == "" {
		return nil, errors.New("token missing required claims")
	}
	return claims, nil
}
