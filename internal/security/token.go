package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"snsproject/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Audience is the aud claim of every issued token.
const Audience = "snsproject-client"

// Claims are the JWT claims carried by an access token.
type Claims struct {
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user id held in the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer. ttl is the lifetime of every token.
func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for user.
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}

	now := t.now()
	claims := Claims{
		UserName: user.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies the signature, issuer, audience and time claims of tokenString.
// Every failure is reported as an INVALID_TOKEN AppError.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, models.NewInvalidTokenError(err)
	}
	if !token.Valid {
		return nil, models.NewInvalidTokenError(errors.New("token is not valid"))
	}
	if claims.UserName == "" {
		return nil, models.NewInvalidTokenError(errors.New("missing user_name claim"))
	}
	if _, err := claims.UserID(); err != nil {
		return nil, models.NewInvalidTokenError(err)
	}
	return claims, nil
}
