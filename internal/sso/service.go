package sso

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/fingate/fingate/internal/shared"
	"github.com/fingate/fingate/internal/users"
)

// SecretStore looks up department HMAC keys.
type SecretStore interface {
	ActiveSecret(ctx context.Context, department string) (DepartmentSecret, error)
}

// UserStore resolves the user the token identifies.
type UserStore interface {
	FindActiveByEmail(ctx context.Context, email string) (users.User, error)
}

// PermissionStore loads role and permission grants for the session identity.
type PermissionStore interface {
	RolesForUser(ctx context.Context, userID int64) ([]string, error)
	PermissionsForUser(ctx context.Context, userID int64) ([]string, error)
}

// Verifier validates inbound cross-system SSO tokens and materializes the
// session identity. Every check is fail-closed: the first failing step
// terminates verification with its sentinel error.
type Verifier struct {
	secrets    SecretStore
	users      UserStore
	perms      PermissionStore
	department string
	now        func() time.Time
}

// NewVerifier constructs a Verifier for the given department code.
func NewVerifier(secrets SecretStore, userStore UserStore, perms PermissionStore, department string) *Verifier {
	return &Verifier{
		secrets:    secrets,
		users:      userStore,
		perms:      perms,
		department: department,
		now:        time.Now,
	}
}

// WithNow overrides the clock for testing.
func (v *Verifier) WithNow(now func() time.Time) {
	if now != nil {
		v.now = now
	}
}

// Verify runs the token through the full verification sequence and returns
// the resolved identity. The caller owns session establishment.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (Identity, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Identity{}, ErrTokenMissing
	}

	decoded, err := Decode(Normalize(rawToken))
	if err != nil {
		return Identity{}, err
	}

	envelope, err := ParseEnvelope(decoded)
	if err != nil {
		return Identity{}, err
	}

	secret, err := v.secrets.ActiveSecret(ctx, v.department)
	if err != nil {
		if errors.Is(err, ErrSecretNotFound) {
			return Identity{}, ErrSecretNotFound
		}
		return Identity{}, err
	}

	if !verifySignature(envelope.Canonical, envelope.Signature, secret.Key) {
		return Identity{}, ErrTokenTampered
	}

	if envelope.Claims.Exp < v.now().Unix() {
		return Identity{}, ErrTokenExpired
	}

	if envelope.Claims.Dept != v.department {
		return Identity{}, ErrInvalidDepartment
	}

	if strings.TrimSpace(envelope.Claims.Email) == "" {
		return Identity{}, ErrEmailMissing
	}
	user, err := v.users.FindActiveByEmail(ctx, envelope.Claims.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Identity{}, ErrUserNotFound
		}
		return Identity{}, err
	}

	identity := Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		Name:       user.Name,
		Email:      user.Email,
		Department: v.department,
		Phone:      user.Phone,
	}
	if v.perms != nil {
		if roles, err := v.perms.RolesForUser(ctx, user.ID); err == nil {
			identity.Roles = roles
		} else {
			return Identity{}, err
		}
		if perms, err := v.perms.PermissionsForUser(ctx, user.ID); err == nil {
			identity.Permissions = perms
		} else {
			return Identity{}, err
		}
	}
	return identity, nil
}

// verifySignature recomputes the HMAC-SHA256 over the canonical payload and
// compares it to the provided hex signature in constant time.
func verifySignature(canonical, signature, key string) bool {
	mac := hmac.New(sha256.New, []byte(key))
	_, _ = mac.Write([]byte(canonical))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// SignPayload produces the hex HMAC-SHA256 signature for a serialized
// payload. Exposed for issuing test tokens.
func SignPayload(canonical, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	_, _ = mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}
