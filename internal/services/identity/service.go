package identity

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hmori/dopabalance/internal/dependencies/clock"
	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/credential"
)

// Errors
var (
	ErrInvalidSession = errors.New("invalid or expired session")
)

// Session represents an authenticated identity. It carries the identity
// facts (including the password digest) so later requests never need the
// raw password again.
type Session struct {
	Token      string
	Identity   model.Identity
	Resolution model.Resolution

	// DigestFromLedger says whether Identity.PasswordDigest was read off
	// the identity of record at login. It is false for a new identity or
	// an unclaimed legacy one, whose digest was freshly minted and is not
	// yet on record anywhere.
	DigestFromLedger bool

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service classifies login attempts against the ledger and manages
// sessions for resolved identities.
type Service struct {
	store  ledger.Store
	clock  clock.Clock
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the identity service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default identity configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new identity Service
func New(store ledger.Store, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		store:           store,
		clock:           clk,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Resolve classifies a login attempt. It never mutates the ledger.
//
// No entries for the real name means New: whatever password, nickname and
// team were supplied become of-record on the first save. For a known
// identity the password is checked first (AuthFailed on mismatch), then
// nickname and team, which are immutable identity facts rather than
// preferences (ProfileMismatch on disagreement).
func (s *Service) Resolve(ctx context.Context, realName, password, nickname, team string) (model.Resolution, error) {
	if err := validateProfile(realName, password, nickname, team); err != nil {
		return "", err
	}

	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		return "", err
	}

	return resolve(snap.Records, realName, password, nickname, team), nil
}

// resolve is the pure classification over a record set
func resolve(records []ledger.Record, realName, password, nickname, team string) model.Resolution {
	onRecord, ok := ledger.IdentityOf(records, realName)
	if !ok {
		return model.ResolutionNew
	}
	if !credential.Verify(password, onRecord.PasswordDigest) {
		return model.ResolutionAuthFailed
	}
	if nickname != onRecord.Nickname || team != onRecord.Team {
		return model.ResolutionProfileMismatch
	}
	return model.ResolutionReturningOK
}

// Login resolves the attempt and, when it succeeds (New or ReturningOK),
// mints a session so the raw password never travels again. AuthFailed and
// ProfileMismatch surface as errors.
func (s *Service) Login(ctx context.Context, realName, password, nickname, team string) (*Session, error) {
	if err := validateProfile(realName, password, nickname, team); err != nil {
		return nil, err
	}

	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	resolution := resolve(snap.Records, realName, password, nickname, team)
	switch resolution {
	case model.ResolutionAuthFailed:
		return nil, model.ErrAuthFailed
	case model.ResolutionProfileMismatch:
		return nil, model.ErrProfileMismatch
	}

	identity := model.Identity{
		RealName: realName,
		Nickname: nickname,
		Team:     team,
	}
	if onRecord, ok := ledger.IdentityOf(snap.Records, realName); ok {
		identity.PasswordDigest = onRecord.PasswordDigest
	}
	digestFromLedger := identity.PasswordDigest != ""
	if !digestFromLedger {
		// New identity, or a legacy passwordless row being claimed: the
		// verified password becomes of-record on the next save
		digest, err := credential.Hash(password)
		if err != nil {
			return nil, err
		}
		identity.PasswordDigest = digest
	}

	return s.createSession(identity, resolution, digestFromLedger), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// InvalidateIdentity removes every session for a real name. Called after
// account erasure so no cached identity state survives the purge.
func (s *Service) InvalidateIdentity(realName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if session.Identity.RealName == realName {
			delete(s.sessions, token)
		}
	}
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// createSession creates a new session for an identity
func (s *Service) createSession(identity model.Identity, resolution model.Resolution, digestFromLedger bool) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:            uuid.NewString(),
		Identity:         identity,
		Resolution:       resolution,
		DigestFromLedger: digestFromLedger,
		CreatedAt:        now,
		ExpiresAt:        now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

func validateProfile(realName, password, nickname, team string) error {
	switch {
	case realName == "":
		return model.NewValidationError("real name is required")
	case password == "":
		return model.NewValidationError("password is required")
	case nickname == "":
		return model.NewValidationError("nickname is required")
	case team == "":
		return model.NewValidationError("team is required")
	}
	return nil
}
