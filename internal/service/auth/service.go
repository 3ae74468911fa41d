// Package auth implements the dashboard's mock login: a fixed-credential
// check behind a simulated network delay. There is no real authentication
// in this system.
package auth

import (
	"time"

	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/config"
)

// User identifies the single dashboard operator.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Service checks credentials against the configured pair after a fixed
// simulated delay. The delay always elapses, success or failure, and is not
// cancellable.
type Service struct {
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewService wires a new auth service instance.
func NewService(cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, logger: logger}
}

// Login reports whether the credentials match, returning the operator on
// success.
func (s *Service) Login(username, password string) (User, bool) {
	time.Sleep(s.cfg.LoginDelay)

	if username != s.cfg.Username || password != s.cfg.Password {
		s.logger.Warn("login rejected", zap.String("username", username))
		return User{}, false
	}

	s.logger.Info("login accepted", zap.String("username", username))
	return User{ID: "1", Username: username}, true
}
