package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Euphysics/ziphonix/internal/common"
	"github.com/Euphysics/ziphonix/internal/cryptox"
	"github.com/Euphysics/ziphonix/internal/dbx"
	"github.com/Euphysics/ziphonix/internal/logging"
	"github.com/Euphysics/ziphonix/internal/server/models"
	"github.com/Euphysics/ziphonix/internal/server/repositories/repomanager"
)

// Credentials is one login attempt. Password is set only for
// models.ProviderCredential; for federated providers the email arrived
// already verified upstream.
type Credentials struct {
	Email    string
	Password string
	Provider models.Provider
}

// AuthService decides login outcomes per provider and manages credential
// records. Rejections surface as common.ErrorUnauthorized and are logged at
// warning level; store failures are returned as-is so the orchestrator can
// tell an outage apart from a bad password.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	crypto      *cryptox.Crypto
	logger      logging.Logger
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, crypto *cryptox.Crypto, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		crypto:      crypto,
		logger:      logger.With("module", "auth_service"),
	}
}

// Login resolves a login attempt to the matching credential record.
// For an unknown email under a federated provider it returns a transient
// record flagged IsNewUser for the orchestrator to complete.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*models.Authentication, error) {
	auth, err := s.repomanager.Auths(s.db).FindByEmail(ctx, creds.Email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		auth = nil
	}

	if creds.Provider == models.ProviderCredential {
		return s.credentialLogin(ctx, auth, creds)
	}
	return s.socialLogin(ctx, auth, creds)
}

// credentialLogin requires an existing CREDENTIAL record with a password
// digest and a supplied password; anything else rejects fail-closed.
func (s *AuthService) credentialLogin(ctx context.Context, auth *models.Authentication, creds Credentials) (*models.Authentication, error) {
	if auth == nil || auth.Provider != models.ProviderCredential || auth.PasswordHash == "" || creds.Password == "" {
		s.logger.Warn(ctx, "invalid credentials provided")
		return nil, common.ErrorUnauthorized
	}

	if !s.crypto.VerifyPassword(creds.Password, auth.PasswordHash) {
		s.logger.Warn(ctx, "password does not match")
		return nil, common.ErrorUnauthorized
	}

	return auth, nil
}

// socialLogin accepts a same-provider record, synthesizes an unsaved record
// for an unknown email, and rejects an email owned by a different provider
// to prevent silent account merges.
func (s *AuthService) socialLogin(ctx context.Context, auth *models.Authentication, creds Credentials) (*models.Authentication, error) {
	if auth == nil {
		return &models.Authentication{
			Email:     creds.Email,
			Provider:  creds.Provider,
			IsNewUser: true,
		}, nil
	}

	if auth.Provider != creds.Provider {
		s.logger.Warn(ctx, "email already exists with a different provider")
		return nil, common.ErrorUnauthorized
	}

	return auth, nil
}

// Register persists a credential record for userID. It is expected to run on
// the orchestrator's transaction handle.
func (s *AuthService) Register(ctx context.Context, db dbx.DBTX, email string, provider models.Provider, password, userID string) (*models.Authentication, error) {
	return s.repomanager.Auths(db).Create(ctx, email, provider, password, userID)
}

// Delete removes the user's credential records. Failures are logged and
// swallowed; deletion is best-effort at this layer.
func (s *AuthService) Delete(ctx context.Context, db dbx.DBTX, userID string) {
	if err := s.repomanager.Auths(db).DeleteByUserID(ctx, userID); err != nil {
		s.logger.Error(ctx, "failed to delete credentials", "user_id", userID, "error", err)
	}
}
