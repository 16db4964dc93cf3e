// Package session holds the logged-in identities for the three marketplace
// roles. A Session is an explicit object injected into each dashboard
// rather than an ambient singleton: it is written at login and logout,
// read by many screens, and every reader must tolerate an absent identity.
//
// Only the investor identity survives a restart. It is saved, together
// with its bearer token, through a [PersistentStore]; Hydrate restores it
// at startup and discards it when the saved token has expired. Company and
// admin identities are memory-only and lost on exit.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/tokenmart/tokenmart.go/pkg/models"
)

// PersistentStore is the key-value slot the investor identity persists to.
type PersistentStore interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// Session is the process-wide identity context: at most one company, one
// investor and one admin logged in at a time.
type Session struct {
	mu       sync.RWMutex
	company  *models.Company
	investor *models.Investor
	admin    *models.AdminUser
	token    string

	store PersistentStore
	log   zerolog.Logger
	now   func() time.Time
}

type persistedInvestor struct {
	Investor models.Investor `json:"investor"`
	Token    string          `json:"token"`
}

// New returns a session. store may be nil, in which case nothing persists.
func New(store PersistentStore, log zerolog.Logger) *Session {
	return &Session{store: store, log: log, now: time.Now}
}

// Hydrate restores the persisted investor identity, if any. A stored
// bearer token whose expiry claim has passed is discarded, forcing a fresh
// login. Decode failures clear the slot rather than propagate.
func (s *Session) Hydrate() {
	if s.store == nil {
		return
	}
	data, err := s.store.Load()
	if err != nil || len(data) == 0 {
		return
	}

	var saved persistedInvestor
	if err := json.Unmarshal(data, &saved); err != nil {
		s.log.Warn().Err(err).Msg("discarding unreadable persisted session")
		_ = s.store.Clear()
		return
	}
	if saved.Token != "" && tokenExpired(saved.Token, s.now()) {
		s.log.Info().Msg("persisted session token expired")
		_ = s.store.Clear()
		return
	}

	s.mu.Lock()
	s.investor = &saved.Investor
	s.token = saved.Token
	s.mu.Unlock()
}

// tokenExpired checks the token's exp claim without verifying the
// signature; the client holds no key material, and the server re-validates
// every call anyway.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}

// SetInvestor records an investor login and persists it.
func (s *Session) SetInvestor(investor models.Investor, token string) {
	s.mu.Lock()
	s.investor = &investor
	s.token = token
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	data, err := json.Marshal(persistedInvestor{Investor: investor, Token: token})
	if err == nil {
		err = s.store.Save(data)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to persist investor session")
	}
}

// SetCompany records a company login. Memory-only.
func (s *Session) SetCompany(company models.Company, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = &company
	s.token = token
}

// SetAdmin records an admin login. Memory-only.
func (s *Session) SetAdmin(admin models.AdminUser, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = &admin
	s.token = token
}

// Investor returns the logged-in investor, or nil.
func (s *Session) Investor() *models.Investor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.investor
}

// Company returns the logged-in company, or nil.
func (s *Session) Company() *models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

// Admin returns the logged-in admin, or nil.
func (s *Session) Admin() *models.AdminUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// Token returns the current bearer token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear logs out all roles and clears the persisted slot.
func (s *Session) Clear() {
	s.mu.Lock()
	s.company = nil
	s.investor = nil
	s.admin = nil
	s.token = ""
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear persisted session")
		}
	}
}
