package workspace

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/session"
	"orcafacil/go_backend/internal/infra/state"
)

// Manager owns the live workspaces and restores them from the state store.
type Manager struct {
	deps

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewManager(remote Remote, store state.Store, notes NotesSuggester, log *zap.Logger) *Manager {
	return &Manager{
		deps:       deps{remote: remote, store: store, notes: notes, log: log}.withDefaults(),
		workspaces: make(map[string]*Workspace),
	}
}

// Login authenticates against the backend and opens a new workspace. Nothing
// is stored unless the backend returned a usable session.
func (m *Manager) Login(ctx context.Context, email, password string) (*Workspace, error) {
	sess, err := m.remote.Login(ctx, email, password)
	if err != nil {
		m.log.Info("login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	user, err := session.MarshalUser(sess.User)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "encode user")
	}

	id := m.newID()
	if err := m.store.SaveSession(ctx, id, state.Credentials{Token: sess.Token, User: user}); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "store session")
	}

	w := m.attach(id, sess)
	m.log.Info("login", zap.String("workspace", id), zap.String("user", sess.User.ID))
	return w, nil
}

// Get returns the workspace for id, restoring it from the store after a
// restart. Stored credentials that are incomplete are cleared.
func (m *Manager) Get(ctx context.Context, id string) (*Workspace, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.New(apperr.KindUnauthorized, "missing workspace id")
	}

	m.mu.Lock()
	w, ok := m.workspaces[id]
	m.mu.Unlock()
	if ok && w.Authenticated() {
		return w, nil
	}

	creds, err := m.store.LoadSession(ctx, id)
	if errors.Is(err, state.ErrNotFound) {
		return nil, apperr.New(apperr.KindUnauthorized, "unknown workspace")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "load session")
	}
	sess, err := session.Restore(creds.Token, creds.User)
	if err != nil {
		m.log.Warn("stored session unusable, logging out", zap.String("workspace", id), zap.Error(err))
		if cerr := m.store.ClearSession(ctx, id); cerr != nil {
			m.log.Error("clear stored session", zap.String("workspace", id), zap.Error(cerr))
		}
		return nil, err
	}
	return m.attach(id, sess), nil
}

func (m *Manager) attach(id string, sess session.Session) *Workspace {
	w := newWorkspace(id, sess, m.deps)
	w.onExpire = m.forget

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.workspaces[id]; ok && existing.Authenticated() {
		return existing
	}
	m.workspaces[id] = w
	return w
}

func (m *Manager) forget(id string) {
	m.mu.Lock()
	delete(m.workspaces, id)
	m.mu.Unlock()
}

// Logout drops the workspace and everything stored for it.
func (m *Manager) Logout(ctx context.Context, id string) error {
	m.mu.Lock()
	w, ok := m.workspaces[id]
	delete(m.workspaces, id)
	m.mu.Unlock()

	if ok {
		w.mu.Lock()
		w.sess = session.Session{}
		w.mu.Unlock()
	}
	if err := m.store.ClearSession(ctx, id); err != nil {
		return apperr.Wrap(apperr.KindInternal, err, "clear session")
	}
	m.log.Info("logout", zap.String("workspace", id))
	return nil
}

// Len reports the number of live workspaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}
