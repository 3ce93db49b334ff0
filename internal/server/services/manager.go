package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Euphysics/ziphonix/internal/common"
	"github.com/Euphysics/ziphonix/internal/dbx"
	"github.com/Euphysics/ziphonix/internal/logging"
	"github.com/Euphysics/ziphonix/internal/server/models"
)

// RegisterInput is an explicit registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Provider models.Provider
}

// AuthManager coordinates the profile and credential services. It decides
// between plain login, social login with implicit registration, and explicit
// registration, and owns the cross-store transaction.
//
// Login never returns internal errors to its caller: every failure surfaces
// as common.ErrorUnauthorized, with store failures logged at error level so
// an outage is not mistaken for bad credentials. Registration errors
// propagate untouched so the all-or-nothing guarantee stays visible.
type AuthManager struct {
	db     *sql.DB
	users  *UserService
	auths  *AuthService
	logger logging.Logger
}

func NewAuthManager(db *sql.DB, users *UserService, auths *AuthService, logger logging.Logger) *AuthManager {
	return &AuthManager{
		db:     db,
		users:  users,
		auths:  auths,
		logger: logger.With("module", "auth_manager"),
	}
}

// Login authenticates the credentials and returns the profile with its
// lastLogin freshly stamped. A first federated login for an unknown email
// registers the account implicitly with a blank name, pending a later
// profile-completion step.
func (m *AuthManager) Login(ctx context.Context, creds Credentials) (*models.User, error) {
	auth, err := m.auths.Login(ctx, creds)
	if err != nil {
		if !errors.Is(err, common.ErrorUnauthorized) {
			m.logger.Error(ctx, "login failed", "error", err)
		}
		return nil, common.ErrorUnauthorized
	}

	if creds.Provider.Social() && auth.IsNewUser {
		return m.socialRegistration(ctx, creds)
	}

	user, err := m.users.Login(ctx, auth.UserID)
	if err != nil {
		m.logger.Error(ctx, "login failed", "error", err)
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

func (m *AuthManager) socialRegistration(ctx context.Context, creds Credentials) (*models.User, error) {
	user, err := m.Register(ctx, RegisterInput{
		Name:     "",
		Email:    creds.Email,
		Provider: creds.Provider,
	})
	if err != nil {
		m.logger.Error(ctx, "implicit registration failed", "error", err)
		return nil, common.ErrorUnauthorized
	}

	user, err = m.users.Login(ctx, user.ID)
	if err != nil {
		m.logger.Error(ctx, "login failed", "error", err)
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Register creates the profile and its credential record inside one
// transaction; either both persist or neither does. The role is fixed to
// USER. A concurrent registration for the same email loses on the email
// hash uniqueness and surfaces common.ErrorAlreadyExists.
func (m *AuthManager) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var user *models.User

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := m.users.CreateUser(ctx, tx, in.Name, models.RoleUser)
		if err != nil {
			return err
		}

		if _, err := m.auths.Register(ctx, tx, in.Email, in.Provider, in.Password, u.ID); err != nil {
			return fmt.Errorf("error creating credentials: %w", err)
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount soft-deletes the profile and removes its credentials in one
// transaction so a reader never observes a credential without its profile.
// Credential deletion stays best-effort inside the transaction.
func (m *AuthManager) DeleteAccount(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := m.users.DeleteProfile(ctx, tx, userID); err != nil {
			return err
		}
		m.auths.Delete(ctx, tx, userID)
		return nil
	})
}
