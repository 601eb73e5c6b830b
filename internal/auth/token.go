package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"career-advisor/internal/domain"
)

// Issuer signs and verifies bearer tokens. Tokens carry the user id as subject
// and an expiry; nothing else.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL reports how long issued tokens stay valid.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) Issue(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(i.now().Add(i.ttl)),
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id bound to a token. Every failure wraps
// domain.ErrUnauthenticated.
func (i *Issuer) Verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, fmt.Errorf("%w: missing token", domain.ErrUnauthenticated)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
		}
		return 0, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: invalid subject", domain.ErrUnauthenticated)
	}
	return userID, nil
}
