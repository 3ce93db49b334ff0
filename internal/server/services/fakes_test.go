package services

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Euphysics/ziphonix/internal/cryptox"
	"github.com/Euphysics/ziphonix/internal/dbx"
	"github.com/Euphysics/ziphonix/internal/logging"
	"github.com/Euphysics/ziphonix/internal/server/models"
	authsrepo "github.com/Euphysics/ziphonix/internal/server/repositories/auths"
	usersrepo "github.com/Euphysics/ziphonix/internal/server/repositories/users"
)

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newCapturingLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h)), &buf
}

func newServiceCrypto(t *testing.T) *cryptox.Crypto {
	t.Helper()
	c, err := cryptox.New(bytes.Repeat([]byte("k"), 32), []byte("test-salt"))
	if err != nil {
		t.Fatalf("cryptox.New error: %v", err)
	}
	return c
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- repository fakes ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	findOut *models.User
	findErr error

	updateNameOut *models.User
	updateNameErr error

	lastLoginErr error
	stampedIDs   []string
	stampedAt    []time.Time

	deleteErr error
	deletedID string
}

func (f *fakeUsersRepo) Create(ctx context.Context, name string, role models.Role) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u := *f.createOut
	u.Name = name
	u.Role = role
	return &u, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeUsersRepo) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	if f.updateNameErr != nil {
		return nil, f.updateNameErr
	}
	return f.updateNameOut, nil
}

func (f *fakeUsersRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	f.stampedIDs = append(f.stampedIDs, id)
	f.stampedAt = append(f.stampedAt, at)
	return f.lastLoginErr
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeAuthsRepo struct {
	createOut  *models.Authentication
	createErr  error
	createdPwd string

	findOut *models.Authentication
	findErr error

	deleteErr error
	deletedID string
}

func (f *fakeAuthsRepo) Create(ctx context.Context, email string, provider models.Provider, password, userID string) (*models.Authentication, error) {
	f.createdPwd = password
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return &models.Authentication{UserID: userID, Email: email, Provider: provider}, nil
}

func (f *fakeAuthsRepo) FindByEmail(ctx context.Context, email string) (*models.Authentication, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeAuthsRepo) DeleteByUserID(ctx context.Context, userID string) error {
	f.deletedID = userID
	return f.deleteErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	a *fakeAuthsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Auths(db dbx.DBTX) authsrepo.Repository      { return m.a }
