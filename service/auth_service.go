// service/auth_service.go
package service

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/imdes/console/client"
	console_errors "github.com/imdes/console/errors"
	logger "github.com/imdes/console/logging"
	"github.com/imdes/console/model"
	"github.com/imdes/console/session"
)

const (
	signinEndpoint = "/auth/api/signin"
	signupEndpoint = "/auth/api/signup"
)

// AuthService drives the signin/signup/signout flows against the auth
// backend and owns the session store writes they imply.
type AuthService struct {
	client  *client.Client
	session *session.Store
}

func NewAuthService(client *client.Client, sessionStore *session.Store) *AuthService {
	return &AuthService{client: client, session: sessionStore}
}

// Login exchanges credentials for a token/user pair and persists it.
func (s *AuthService) Login(ctx context.Context, credentials model.Credentials) (model.AuthResult, error) {
	resp := s.client.Do(ctx, http.MethodPost, signinEndpoint, credentials)
	if !resp.Success {
		logger.Warn("Sign-in rejected", zap.String("email", credentials.Email), zap.String("error", resp.Error))
		return model.AuthResult{}, fmt.Errorf("%w: %s", console_errors.ErrInvalidCredentials, resp.Error)
	}

	var result model.AuthResult
	if err := resp.Decode(&result); err != nil {
		return model.AuthResult{}, err
	}
	if result.Token == "" {
		return model.AuthResult{}, console_errors.ErrInvalidCredentials
	}

	if err := s.session.Set(ctx, result.Token, result.User); err != nil {
		logger.Error("Failed to persist session", zap.Error(err))
		return model.AuthResult{}, err
	}
	return result, nil
}

// SignUp registers a new user. The backend signs the new user in as part of
// registration, so a returned token is persisted the same way login does.
func (s *AuthService) SignUp(ctx context.Context, data model.SignUpData) (model.AuthResult, error) {
	resp := s.client.Do(ctx, http.MethodPost, signupEndpoint, data)
	if !resp.Success {
		logger.Warn("Sign-up rejected", zap.String("email", data.Email), zap.String("error", resp.Error))
		return model.AuthResult{}, fmt.Errorf("%w: %s", console_errors.ErrInvalidSignUpData, resp.Error)
	}

	var result model.AuthResult
	if err := resp.Decode(&result); err != nil {
		return model.AuthResult{}, err
	}

	if result.Token != "" {
		if err := s.session.Set(ctx, result.Token, result.User); err != nil {
			logger.Error("Failed to persist session", zap.Error(err))
			return model.AuthResult{}, err
		}
	}
	return result, nil
}

// Logout clears the persisted session. There is no upstream call; the
// bearer token simply stops being attached.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}
