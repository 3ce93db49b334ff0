// Package services contains the server-side business logic: profile
// operations, the per-provider login decision machine, and the orchestrator
// that reconciles profiles and credentials under one transaction.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Euphysics/ziphonix/internal/common"
	"github.com/Euphysics/ziphonix/internal/dbx"
	"github.com/Euphysics/ziphonix/internal/logging"
	"github.com/Euphysics/ziphonix/internal/server/models"
	"github.com/Euphysics/ziphonix/internal/server/repositories/repomanager"
)

// ProfileUpdate carries the mutable profile fields. Role is accepted here
// only so the update path can reject escalation attempts explicitly.
type ProfileUpdate struct {
	Name string
	Role models.Role
}

// UserService provides business operations on profile records.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "user_service"),
	}
}

// CreateUser creates a profile with the given name. An empty role defaults
// to USER. The db handle may be a transaction opened by the orchestrator.
func (s *UserService) CreateUser(ctx context.Context, db dbx.DBTX, name string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role %q", common.ErrorValidation, role)
	}

	user, err := s.repomanager.Users(db).Create(ctx, name, role)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login stamps lastLogin and fetches the profile. Stamping is best-effort:
// a transient store failure is logged distinctly and does not fail the login.
func (s *UserService) Login(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if err := repo.UpdateLastLogin(ctx, userID, time.Now()); err != nil {
		s.logger.Error(ctx, "last login stamp failed", "user_id", userID, "error", err)
	}

	return repo.FindByID(ctx, userID)
}

// GetProfile returns the profile or common.ErrorNotFound.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByID(ctx, userID)
}

// UpdateProfile renames the profile. Any attempted role change through this
// path fails with common.ErrorUnsupported.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.User, error) {
	if upd.Role != "" {
		return nil, fmt.Errorf("%w: role update", common.ErrorUnsupported)
	}
	return s.repomanager.Users(s.db).UpdateName(ctx, userID, upd.Name)
}

// DeleteProfile soft-deletes the profile. The db handle may be a transaction
// so profile and credential deletion commit together.
func (s *UserService) DeleteProfile(ctx context.Context, db dbx.DBTX, userID string) error {
	return s.repomanager.Users(db).Delete(ctx, userID)
}
