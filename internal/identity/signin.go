package identity

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// Demo account defaults.
const (
	DemoUserID          = "demo-user-id"
	DemoEmail           = "demo@organizeit.com"
	DefaultDemoPassword = "demo123"
	demoAccessToken     = "demo-token"
)

// Session is handed back on successful sign-in.
type Session struct {
	AccessToken string `json:"access_token"`
}

// SignInResult is the profile and session of a signed-in user.
type SignInResult struct {
	User    model.UserProfile `json:"user"`
	Session Session           `json:"session"`
}

// Credentials are submitted to SignIn.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DemoAuth signs in the single local demo account.
type DemoAuth struct {
	dir   *Directory
	email string
	hash  []byte
}

// NewDemoAuth returns a DemoAuth for email whose password matches the bcrypt
// passwordHash. An empty hash is replaced by a hash of DefaultDemoPassword.
func NewDemoAuth(dir *Directory, email, passwordHash string) (*DemoAuth, error) {
	if email == "" {
		email = DemoEmail
	}
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(DefaultDemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing demo password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("demo password hash: %w", err)
	}
	return &DemoAuth{dir: dir, email: strings.ToLower(email), hash: hash}, nil
}

// SignIn checks c against the demo account and, on success, refreshes the
// demo profile's last_login. Any mismatch is apperr.ErrAuthRequired.
func (a *DemoAuth) SignIn(ctx context.Context, c Credentials) (SignInResult, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(c.Email)), []byte(a.email)) == 1
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(c.Password)); err != nil || !emailOK {
		slog.Info("sign in rejected", "email", c.Email)
		a.audit(ctx, model.AuditEvent{
			EventType: "failed_access",
			UserEmail: c.Email,
			Action:    "failed_login_attempt",
			Resource:  "authentication_system",
			Status:    model.AuditFailed,
		})
		return SignInResult{}, fmt.Errorf("%w: invalid credentials", apperr.ErrAuthRequired)
	}

	now := a.dir.now().UTC()
	profile := model.UserProfile{
		ID:         DemoUserID,
		Email:      a.email,
		Name:       "Demo User",
		Role:       "System Administrator",
		Department: "IT Operations",
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LastLogin:  &now,
		Preferences: model.Preferences{
			Theme:           "light",
			Notifications:   true,
			DashboardLayout: "default",
		},
	}
	if err := a.dir.SaveProfile(ctx, profile); err != nil {
		return SignInResult{}, err
	}

	a.audit(ctx, model.AuditEvent{
		EventType: "user_login",
		UserID:    &profile.ID,
		UserEmail: profile.Email,
		Action:    "successful_login",
		Resource:  "authentication_system",
		Timestamp: now,
		Status:    model.AuditSuccess,
	})

	return SignInResult{User: profile, Session: Session{AccessToken: demoAccessToken}}, nil
}

// audit appends ev to the audit trail, best-effort.
func (a *DemoAuth) audit(ctx context.Context, ev model.AuditEvent) {
	if _, err := a.dir.RecordAudit(ctx, ev); err != nil {
		slog.Warn("recording sign-in audit event", "error", err)
	}
}
