package sso

import (
	"errors"
	"time"
)

// Claims is the structured SSO payload. The issuer signs the serialized form
// of these fields; dept, email, and exp are required, the rest enrich the
// session identity when present.
type Claims struct {
	Dept     string `json:"dept"`
	Email    string `json:"email"`
	Exp      int64  `json:"exp"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// DepartmentSecret is the shared HMAC key for one issuing department.
type DepartmentSecret struct {
	ID         int64
	Department string
	Key        string
	IsActive   bool
	CreatedAt  time.Time
}

// Identity is the session identity materialized from a verified token.
type Identity struct {
	UserID      int64
	Username    string
	Role        string
	Name        string
	Email       string
	Department  string
	Phone       string
	Roles       []string
	Permissions []string
}

// Verification failures. Each one terminates processing immediately; there is
// no retry path and no partial session creation.
var (
	// ErrTokenMissing indicates no token parameter was supplied.
	ErrTokenMissing = errors.New("sso: token missing")
	// ErrInvalidToken indicates the token could not be base64-decoded.
	ErrInvalidToken = errors.New("sso: invalid token")
	// ErrInvalidTokenStructure indicates the envelope lacks payload or signature.
	ErrInvalidTokenStructure = errors.New("sso: invalid token structure")
	// ErrInvalidPayload indicates the payload is neither an object nor a JSON string.
	ErrInvalidPayload = errors.New("sso: invalid payload")
	// ErrSecretNotFound indicates no active secret exists for the department.
	ErrSecretNotFound = errors.New("sso: department secret not found")
	// ErrTokenTampered indicates the HMAC signature does not match.
	ErrTokenTampered = errors.New("sso: invalid or tampered token")
	// ErrTokenExpired indicates the exp claim lies in the past.
	ErrTokenExpired = errors.New("sso: token expired")
	// ErrInvalidDepartment indicates the dept claim does not match this instance.
	ErrInvalidDepartment = errors.New("sso: invalid department access")
	// ErrEmailMissing indicates the payload carries no email claim.
	ErrEmailMissing = errors.New("sso: email missing")
	// ErrUserNotFound indicates no active user matches the email claim.
	ErrUserNotFound = errors.New("sso: user not found")
)
