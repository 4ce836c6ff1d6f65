package bluesky

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/skypost/internal/domain"
	"github.com/MrSnakeDoc/skypost/internal/logger"
)

// SessionStore persists the session between invocations so a restart
// can skip login. Persistence failures never abort a post.
type SessionStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

// Manager owns the account's session and implements the
// login / refresh-on-demand / re-login-on-refresh-failure policy.
//
// A session is never proactively distrusted: whenever one exists,
// refresh is attempted first and the server's rejection is the only
// expiry signal used. That trades one wasted round trip for not
// tracking token lifetimes locally.
type Manager struct {
	client     *Client
	store      SessionStore
	identifier string
	password   string
	logger     logger.Logger

	mu      sync.Mutex
	session *domain.Session
}

func NewManager(client *Client, store SessionStore, identifier, password string, log logger.Logger) *Manager {
	return &Manager{
		client:     client,
		store:      store,
		identifier: identifier,
		password:   password,
		logger:     log,
	}
}

// EnsureSession returns a session valid for authenticated calls,
// minting or refreshing one as needed. It fails with *AuthError only
// when both the refresh and the fresh login failed.
//
// The whole operation runs under the manager's mutex so concurrent
// post actions cannot race to refresh simultaneously and clobber each
// other's token pair.
func (m *Manager) EnsureSession(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		m.loadStored(ctx)
	}

	if m.session == nil {
		session, err := m.client.CreateSession(ctx, m.identifier, m.password)
		if err != nil {
			return nil, &AuthError{LoginErr: err}
		}
		m.adopt(ctx, session)
		m.logger.Info("logged in", logger.String("handle", m.session.Handle))
		return m.session, nil
	}

	refreshed, refreshErr := m.client.RefreshSession(ctx, m.session.RefreshJwt)
	if refreshErr == nil {
		m.adopt(ctx, refreshed)
		m.logger.Debug("session refreshed", logger.String("handle", m.session.Handle))
		return m.session, nil
	}

	m.logger.Warn("session refresh failed, falling back to login",
		logger.Error(refreshErr))
	m.session = nil

	session, loginErr := m.client.CreateSession(ctx, m.identifier, m.password)
	if loginErr != nil {
		return nil, &AuthError{RefreshErr: refreshErr, LoginErr: loginErr}
	}
	m.adopt(ctx, session)
	m.logger.Info("logged in after failed refresh", logger.String("handle", m.session.Handle))
	return m.session, nil
}

// loadStored tries to resume a persisted session. Any load failure is
// just a cache miss.
func (m *Manager) loadStored(ctx context.Context) {
	if m.store == nil {
		return
	}
	stored, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Debug("no stored session", logger.Error(err))
		return
	}
	if stored.Valid() {
		m.session = stored
		m.logger.Debug("resumed stored session", logger.String("handle", stored.Handle))
	}
}

// adopt replaces the held session and persists it. The session is
// only ever swapped whole; a failed refresh or login never leaves a
// half-written token pair behind.
func (m *Manager) adopt(ctx context.Context, session *domain.Session) {
	m.session = session
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, session); err != nil {
		m.logger.Warn("failed to persist session", logger.Error(err))
	}
}
