package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/palengkeproph/palengkeproph-backend/pkg/config"
)

var signingMethod = jwt.SigningMethodHS256

// MintToken issues a signed token of the requested type for the user.
func MintToken(cfg config.JWTConfig, now time.Time, userID uint, tokenType TokenType) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}

	var ttl time.Duration
	switch tokenType {
	case TokenTypeAccess:
		ttl = cfg.AccessTTL()
	case TokenTypeRefresh:
		ttl = cfg.RefreshTTL()
	default:
		return "", fmt.Errorf("unknown token type %q", tokenType)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("%s token TTL must be positive", tokenType)
	}

	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// MintPair issues an access and a refresh token in one call.
func MintPair(cfg config.JWTConfig, now time.Time, userID uint) (access, refresh string, err error) {
	access, err = MintToken(cfg, now, userID, TokenTypeAccess)
	if err != nil {
		return "", "", err
	}
	refresh, err = MintToken(cfg, now, userID, TokenTypeRefresh)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ParseToken validates signature, expiry and token type, returning the claims.
func ParseToken(cfg config.JWTConfig, tokenString string, want TokenType) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != signingMethod {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != want {
		return nil, fmt.Errorf("token type %q is not %q", claims.TokenType, want)
	}
	return claims, nil
}
