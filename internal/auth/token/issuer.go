package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	typeAccess  = ""
	typeRefresh = "refresh"
)

var (
	// ErrInvalidToken is returned when a token fails signature, claim or
	// type checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token has expired")
)

// Pair holds a freshly minted access/refresh token pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Claims are the session token claims. Access tokens carry email and name;
// refresh tokens carry only the subject plus the type marker that keeps them
// from being accepted where an access token is required.
type Claims struct {
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	TokenType string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints and validates HS256-signed session tokens. Tokens are
// stateless: there is no revocation list, expiry is the sole bound on
// their lifetime.
type Issuer struct {
	issuer     string
	key        []byte
	accessExp  time.Duration
	refreshExp time.Duration
}

// New builds an Issuer. The signing secret must be at least 32 bytes;
// anything shorter is a startup configuration error, not a per-request
// condition.
func New(issuer, secret string, accessExpMinutes, refreshExpDays int) (*Issuer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 bytes, got %d", len(secret))
	}
	if accessExpMinutes <= 0 || refreshExpDays <= 0 {
		return nil, fmt.Errorf("jwt expiries must be positive")
	}

	return &Issuer{
		issuer:     issuer,
		key:        []byte(secret),
		accessExp:  time.Duration(accessExpMinutes) * time.Minute,
		refreshExp: time.Duration(refreshExpDays) * 24 * time.Hour,
	}, nil
}

// IssueAccessToken mints a short-lived access token for a user.
func (i *Issuer) IssueAccessToken(userID, email, name string) (string, error) {
	return i.sign(userID, email, name, typeAccess, i.accessExp)
}

// IssueRefreshToken mints a long-lived refresh token carrying only the
// subject and the refresh type marker.
func (i *Issuer) IssueRefreshToken(userID string) (string, error) {
	return i.sign(userID, "", "", typeRefresh, i.refreshExp)
}

// IssuePair mints an access/refresh token pair for a user.
func (i *Issuer) IssuePair(userID, email, name string) (Pair, error) {
	access, err := i.IssueAccessToken(userID, email, name)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.IssueRefreshToken(userID)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// AccessTokenSeconds returns the access token lifetime in seconds, as
// reported to clients in login responses.
func (i *Issuer) AccessTokenSeconds() int64 {
	return int64(i.accessExp.Seconds())
}

func (i *Issuer) sign(userID, email, name, tokenType string, exp time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     email,
		Name:      name,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.key)
}

// Validate parses a token, verifies the signature with the shared secret
// and rejects expired tokens.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateAccess validates a token and rejects refresh tokens.
func (i *Issuer) ValidateAccess(tokenString string) (*Claims, error) {
	claims, err := i.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType == typeRefresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRefresh validates a token and rejects anything without the
// refresh type marker.
func (i *Issuer) ValidateRefresh(tokenString string) (*Claims, error) {
	claims, err := i.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != typeRefresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
