package client

import "sync"

// Session holds the bearer token for a logged in operator. It is safe for
// concurrent use. OnExpired, when set, runs once each time the server
// rejects the token so the caller can route back to the login screen.
type Session struct {
	mu        sync.RWMutex
	token     string
	OnExpired func()
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// SetToken stores the bearer token after a successful login.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Token returns the stored bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear drops the stored token without firing OnExpired.
func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// expire clears the token and notifies the owner. Called from the response
// path when the server answers 401.
func (s *Session) expire() {
	s.mu.Lock()
	hadToken := s.token != ""
	s.token = ""
	callback := s.OnExpired
	s.mu.Unlock()

	if hadToken && callback != nil {
		callback()
	}
}
