package helpers

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"github.com/spycce/SmartTrip/models"
)

// SignedDetails only carries the user id; everything else is looked up when needed.
type SignedDetails struct {
	Uid string `json:"id"`
	jwt.StandardClaims
}

// TokenManager signs and validates HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a manager for secret. A zero ttl issues tokens without expiry.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) GenerateToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	claims := &SignedDetails{Uid: userID}
	issued := m.now()
	claims.IssuedAt = issued.Unix()
	if m.ttl > 0 {
		claims.ExpiresAt = issued.Add(m.ttl).Unix()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ValidateToken returns the user id bound to clientToken.
func (m *TokenManager) ValidateToken(clientToken string) (string, error) {
	if clientToken == "" {
		return "", fmt.Errorf("%w: token is required", models.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(clientToken, &SignedDetails{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid || claims.Uid == "" {
		return "", fmt.Errorf("%w: invalid token claims", models.ErrInvalidToken)
	}
	return claims.Uid, nil
}
