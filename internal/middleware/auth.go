package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/contract-analysis-api/internal/auth"
	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/repository"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

type contextKey struct{}

var principalKey = contextKey{}

var errNoToken = errors.New("missing bearer token")

func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the authenticated caller, or nil.
func PrincipalFrom(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey).(*models.Principal)
	return p
}

// Authenticator resolves bearer tokens to principals from the users table.
type Authenticator struct {
	secret string
	users  repository.UserRepository
	logger *utils.Logger
}

func NewAuthenticator(secret string, users repository.UserRepository, logger *utils.Logger) *Authenticator {
	return &Authenticator{secret: secret, users: users, logger: logger}
}

// Required rejects requests without a valid token for an active user.
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, status, msg := a.resolve(r)
		if p == nil {
			writeError(w, status, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// Optional attaches the principal when a valid token is present and lets
// anonymous requests through. A token that is present but invalid is rejected.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		a.Required(next).ServeHTTP(w, r)
	})
}

func (a *Authenticator) resolve(r *http.Request) (*models.Principal, int, string) {
	tokenStr, err := bearerToken(r)
	if err != nil {
		return nil, http.StatusUnauthorized, "Authentication credentials were not provided"
	}

	userID, err := auth.ParseToken(a.secret, tokenStr)
	if err != nil {
		a.logger.Debug("Rejected token", "error", err)
		return nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	p, err := a.users.GetByID(r.Context(), userID)
	if err != nil {
		a.logger.Error("Failed to load principal", "error", err, "user_id", userID)
		return nil, http.StatusInternalServerError, "Internal server error"
	}
	if p == nil {
		return nil, http.StatusUnauthorized, "User not found"
	}
	if !p.IsActive {
		return nil, http.StatusForbidden, "User account is disabled"
	}

	return p, 0, ""
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", errNoToken
	}
	return strings.TrimSpace(token), nil
}

// RequireStaff must run after Authenticator.Required.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFrom(r.Context())
		if p == nil || !p.IsStaff {
			writeError(w, http.StatusForbidden, "You do not have permission to perform this action")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
