// Package rest exposes the account and profile services over HTTP.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Euphysics/ziphonix/internal/logging"
	"github.com/Euphysics/ziphonix/internal/server/models"
	"github.com/Euphysics/ziphonix/internal/server/services"
)

// Accounts is the slice of the auth manager the transport needs.
type Accounts interface {
	Login(ctx context.Context, creds services.Credentials) (*models.User, error)
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// Profiles is the slice of the profile service the transport needs.
type Profiles interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd services.ProfileUpdate) (*models.User, error)
}

type Server struct {
	address  string
	accounts Accounts
	profiles Profiles
	logger   logging.Logger
	engine   *gin.Engine
}

func NewServer(address string, accounts Accounts, profiles Profiles, logger logging.Logger) *Server {
	s := &Server{
		address:  address,
		accounts: accounts,
		profiles: profiles,
		logger:   logger.With("module", "rest_server"),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(RequestID(), AccessLog(s.logger), Recovery(s.logger))

	engine.GET("/ping", s.ping)

	auth := engine.Group("/api/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)

	account := engine.Group("/api/account")
	account.GET("/profile/:id", s.getProfile)
	account.PUT("/profile/:id", s.updateProfile)
	account.DELETE("/profile/:id", s.deleteProfile)

	s.engine = engine
	return s
}

// Handler returns the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
