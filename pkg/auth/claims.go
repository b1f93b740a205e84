package auth

import "github.com/golang-jwt/jwt/v5"

// TokenType distinguishes the two credentials the API mints.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the signed payload carried by both access and refresh tokens.
type Claims struct {
	UserID    uint      `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}
