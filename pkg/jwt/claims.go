package jwt

import "github.com/golang-jwt/jwt/v5"

// AccountClaims are the claims carried by an authenticated request token.
// The subject is the account UUID issued by the identity provider.
type AccountClaims struct {
	jwt.RegisteredClaims
	DisplayName string `json:"name,omitempty"`
}
