package sso

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fingate/fingate/internal/observability"
	"github.com/fingate/fingate/internal/platform/httpx"
	"github.com/fingate/fingate/internal/shared"
)

// LoginRecorder stamps a successful login on the user record.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, id int64, at time.Time) error
}

// Handler exposes the token login endpoint.
type Handler struct {
	logger   *slog.Logger
	verifier *Verifier
	logins   LoginRecorder
	metrics  *observability.Metrics
}

// NewHandler constructs the SSO handler.
func NewHandler(logger *slog.Logger, verifier *Verifier, logins LoginRecorder, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, verifier: verifier, logins: logins, metrics: metrics}
}

// MountRoutes registers the SSO entry route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login-sso", h.handleTokenLogin)
}

func (h *Handler) handleTokenLogin(w http.ResponseWriter, r *http.Request) {
	identity, err := h.verifier.Verify(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.reject(w, r, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("sso login without session in context")
		httpx.PlainError(w, http.StatusInternalServerError, "session unavailable")
		return
	}
	sess.Regenerate()
	sess.SetUser(strconv.FormatInt(identity.UserID, 10))
	sess.Set("username", identity.Username)
	sess.Set("name", identity.Name)
	sess.Set("email", identity.Email)
	sess.Set("role", identity.Role)
	sess.Set("department", identity.Department)
	if len(identity.Roles) > 0 {
		if b, err := json.Marshal(identity.Roles); err == nil {
			sess.Set("roles", string(b))
		}
	}
	if len(identity.Permissions) > 0 {
		if b, err := json.Marshal(identity.Permissions); err == nil {
			sess.Set("permissions", string(b))
		}
	}

	if h.logins != nil {
		if err := h.logins.RecordLogin(r.Context(), identity.UserID, time.Now()); err != nil {
			h.logger.Warn("record sso login", slog.Any("error", err))
		}
	}

	h.record("success")
	h.logger.Info("sso login",
		slog.Int64("user_id", identity.UserID),
		slog.String("email", identity.Email),
		slog.String("department", identity.Department))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// reject maps a verification failure to its public response. Secret and user
// lookup failures share the tampered-token text so the response does not leak
// which side of the check failed.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusUnauthorized
	public := "invalid or expired token"
	outcome := "error"

	switch {
	case errors.Is(err, ErrTokenMissing):
		status, public, outcome = http.StatusBadRequest, "token is required", "missing"
	case errors.Is(err, ErrInvalidToken):
		status, public, outcome = http.StatusBadRequest, "malformed token", "malformed"
	case errors.Is(err, ErrInvalidTokenStructure):
		status, public, outcome = http.StatusBadRequest, "malformed token", "malformed"
	case errors.Is(err, ErrInvalidPayload):
		status, public, outcome = http.StatusBadRequest, "malformed token", "malformed"
	case errors.Is(err, ErrTokenTampered):
		outcome = "tampered"
	case errors.Is(err, ErrTokenExpired):
		outcome = "expired"
	case errors.Is(err, ErrInvalidDepartment):
		outcome = "wrong_department"
	case errors.Is(err, ErrEmailMissing):
		status, public, outcome = http.StatusBadRequest, "malformed token", "malformed"
	case errors.Is(err, ErrSecretNotFound):
		outcome = "secret_missing"
	case errors.Is(err, ErrUserNotFound):
		outcome = "unknown_user"
	default:
		status, public = http.StatusInternalServerError, "verification unavailable"
	}

	h.record(outcome)
	h.logger.Warn("sso login rejected",
		slog.String("outcome", outcome),
		slog.String("remote", r.RemoteAddr),
		slog.Any("error", err))
	httpx.PlainError(w, status, public)
}

func (h *Handler) record(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordSSOOutcome(outcome)
	}
}
