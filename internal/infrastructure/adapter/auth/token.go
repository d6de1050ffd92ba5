package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
)

// Claims are the bearer token claims. Subject is the account UUID.
type Claims struct {
	Role        string   `json:"role,omitempty"`
	ServerRoles []string `json:"server_roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 bearer tokens
type TokenManager struct {
	secret       []byte
	issuer       string
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
// An empty issuer disables the issuer check.
func NewTokenManager(secret, issuer string, ttl time.Duration, timeProvider coreport.TimeProvider) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		issuer:       issuer,
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Generate issues a signed token for the given account
func (t *TokenManager) Generate(userID string, role entity.Role, serverRoles []string) (string, error) {
	now := t.timeProvider.Now()
	claims := Claims{
		Role:        string(role),
		ServerRoles: serverRoles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies the signature, algorithm, expiry and issuer of a token
func (t *TokenManager) Parse(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.timeProvider.Now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}
	return claims, nil
}

// ParsePrincipal verifies a token and returns the caller it identifies
func (t *TokenManager) ParsePrincipal(raw string) (entity.Principal, error) {
	claims, err := t.Parse(raw)
	if err != nil {
		return entity.Principal{}, err
	}

	userID, err := entity.ParseUserID(claims.Subject)
	if err != nil {
		return entity.Principal{}, fmt.Errorf("%w: subject is not an account id", errs.ErrInvalidToken)
	}
	return entity.Principal{UserID: userID, ServerRoles: claims.ServerRoles}, nil
}
