package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload carried in the signed session cookie. Roles
// are deliberately absent: capability is re-resolved from the membership
// tables on every request.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// GoogleUserInfo mirrors the identity provider's userinfo response.
type GoogleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
