// Package token issues and validates the signed session tokens that bind a
// wallet address to a user id.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired is returned when a token's validity window has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid is returned for every other validation failure.
	ErrInvalid = errors.New("token invalid")
)

// Claims is the signed claim set embedded in every issued token.
type Claims struct {
	WalletPubkey string `json:"wallet_pubkey"`
	UID          int64  `json:"uid"`
	jwt.RegisteredClaims
}

// Issuer builds and validates HS256-signed tokens. Issuance and validation
// are stateless; an Issuer is safe for concurrent use.
type Issuer struct {
	secret     []byte
	expiration time.Duration
	notBefore  time.Duration
	now        func() time.Time
}

// NewIssuer constructs an Issuer with the shared signing secret and the
// configured validity-window offsets.
func NewIssuer(secret []byte, expiration, notBefore time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("signing secret is empty")
	}
	if expiration <= 0 {
		return nil, fmt.Errorf("expiration offset must be positive, got %s", expiration)
	}
	if notBefore < 0 {
		return nil, fmt.Errorf("not-before offset must not be negative, got %s", notBefore)
	}
	return &Issuer{
		secret:     secret,
		expiration: expiration,
		notBefore:  notBefore,
		now:        time.Now,
	}, nil
}

// Issue creates a signed token vouching for (address, uid) with
// exp = now + expiration and nbf = now - notBefore.
func (i *Issuer) Issue(address string, uid int64) (string, error) {
	now := i.now()
	claims := Claims{
		WalletPubkey: address,
		UID:          uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiration)),
			NotBefore: jwt.NewNumericDate(now.Add(-i.notBefore)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature and the time window, returning the bound
// uid and wallet address. An expired token fails with ErrExpired; every other
// failure collapses to ErrInvalid.
func (i *Issuer) Validate(tokenString string) (int64, string, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, "", ErrExpired
		}
		return 0, "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !tok.Valid {
		return 0, "", ErrInvalid
	}

	return claims.UID, claims.WalletPubkey, nil
}
