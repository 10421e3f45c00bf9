package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "credably-api"
	audience = "credably"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// JWTService signs and verifies the HS256 session tokens.
type JWTService struct {
	secretKey     []byte
	tokenLifespan time.Duration
	now           func() time.Time
}

type CustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// Token is a signed session token and the instant it stops being accepted.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

func NewJWTService(secretKey string, tokenLifespan time.Duration) *JWTService {
	return &JWTService{
		secretKey:     []byte(secretKey),
		tokenLifespan: tokenLifespan,
		now:           time.Now,
	}
}

func (s *JWTService) Issue(userID uuid.UUID) (Token, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenLifespan)
	claims := CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return Token{}, fmt.Errorf("cannot sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// ParseUserID verifies the token and returns the user it was issued to.
// Errors wrap ErrTokenExpired or ErrTokenInvalid.
func (s *JWTService) ParseUserID(tokenString string) (uuid.UUID, error) {
	claims := &CustomClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return uuid.Nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case err != nil:
		return uuid.Nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.UserID == uuid.Nil || claims.Subject != claims.UserID.String() {
		return uuid.Nil, fmt.Errorf("%w: subject does not match user", ErrTokenInvalid)
	}
	return claims.UserID, nil
}
