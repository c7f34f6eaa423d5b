package client

import (
	"context"
	"net/http"
)

// AuthService signs operators in and out.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a bearer token and stores it in the
// session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	body := map[string]string{"username": username, "password": password}

	var resp TokenResponse
	if err := s.client.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp, true); err != nil {
		return nil, err
	}
	if s.client.session != nil {
		s.client.session.SetToken(resp.AccessToken)
	}
	return &resp, nil
}

// Logout tells the server the operator signed out and clears the session.
// The local session is cleared even when the call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, false)
	if s.client.session != nil {
		s.client.session.Clear()
	}
	return err
}

// Me returns the authenticated operator.
func (s *AuthService) Me(ctx context.Context) (*Usuario, error) {
	var usuario Usuario
	if err := s.client.do(ctx, http.MethodGet, "/auth/me", nil, nil, &usuario, false); err != nil {
		return nil, err
	}
	return &usuario, nil
}
