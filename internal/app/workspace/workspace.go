// Package workspace holds the server side state of one logged-in browser
// session: catalog and provider caches, the quote listing, the quote being
// viewed or edited, and the deletion pending confirmation.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/catalog"
	"orcafacil/go_backend/internal/domain/provider"
	"orcafacil/go_backend/internal/domain/quote"
	"orcafacil/go_backend/internal/domain/session"
	"orcafacil/go_backend/internal/infra/state"
)

// Remote is the quote backend.
type Remote interface {
	Login(ctx context.Context, email, password string) (session.Session, error)

	Products(ctx context.Context, sess session.Session) ([]catalog.Item, error)
	CreateProduct(ctx context.Context, sess session.Session, it catalog.Item) error
	UpdateProduct(ctx context.Context, sess session.Session, it catalog.Item) error
	DeleteProduct(ctx context.Context, sess session.Session, id string) error

	Budgets(ctx context.Context, sess session.Session) ([]quote.Quote, error)
	CreateBudget(ctx context.Context, sess session.Session, q quote.Quote) (*quote.Quote, error)
	UpdateBudget(ctx context.Context, sess session.Session, q quote.Quote) (*quote.Quote, error)
	DeleteBudget(ctx context.Context, sess session.Session, id string) error

	Company(ctx context.Context, sess session.Session) (*provider.Info, error)
	SaveCompany(ctx context.Context, sess session.Session, p provider.Info) (provider.Info, error)
}

type NotesSuggester interface {
	Suggest(ctx context.Context, q quote.Quote) string
}

type State int

const (
	Listing State = iota
	Editing
	Viewing
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Viewing:
		return "viewing"
	default:
		return "listing"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status is what the UI polls to render its chrome.
type Status struct {
	User          session.User `json:"user"`
	State         State        `json:"state"`
	Busy          bool         `json:"busy"`
	Saving        bool         `json:"saving"`
	ViewingID     string       `json:"viewing_id,omitempty"`
	PendingDelete string       `json:"pending_delete,omitempty"`
}

type deps struct {
	remote Remote
	store  state.Store
	notes  NotesSuggester
	log    *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Workspace state is guarded by mu; mu is never held across a remote call.
type Workspace struct {
	id string
	deps
	onExpire func(id string)

	busy atomic.Int32

	mu            sync.Mutex
	sess          session.Session
	state         State
	catalog       []catalog.Item
	provider      *provider.Info
	quotes        []quote.Quote
	viewingID     string
	draft         *quote.Quote
	draftIsNew    bool
	saving        bool
	pendingDelete string
}

func (d deps) withDefaults() deps {
	if d.log == nil {
		d.log = zap.NewNop()
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.newID == nil {
		d.newID = uuid.NewString
	}
	return d
}

func newWorkspace(id string, sess session.Session, d deps) *Workspace {
	return &Workspace{id: id, deps: d.withDefaults(), sess: sess, state: Listing}
}

func (w *Workspace) ID() string { return w.id }

func (w *Workspace) User() session.User {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sess.User
}

func (w *Workspace) Authenticated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sess.IsAuthenticated()
}

func (w *Workspace) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{
		User:          w.sess.User,
		State:         w.state,
		Busy:          w.busy.Load() > 0,
		Saving:        w.saving,
		ViewingID:     w.viewingID,
		PendingDelete: w.pendingDelete,
	}
}

// track marks a remote call in flight until the returned func runs.
func (w *Workspace) track() func() {
	w.busy.Add(1)
	return func() { w.busy.Add(-1) }
}

func (w *Workspace) credentials() (session.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.sess.IsAuthenticated() {
		return session.Session{}, apperr.New(apperr.KindUnauthorized, "not logged in")
	}
	return w.sess, nil
}

// checkAuth drops the credentials when the backend rejected them.
func (w *Workspace) checkAuth(ctx context.Context, err error) error {
	if apperr.Is(err, apperr.KindUnauthorized) {
		w.expire(ctx)
	}
	return err
}

func (w *Workspace) expire(ctx context.Context) {
	w.mu.Lock()
	w.sess = session.Session{}
	w.draft = nil
	w.state = Listing
	w.mu.Unlock()

	w.log.Info("workspace: credentials cleared", zap.String("workspace", w.id))
	if err := w.store.ClearSession(context.WithoutCancel(ctx), w.id); err != nil {
		w.log.Error("workspace: clear stored session", zap.String("workspace", w.id), zap.Error(err))
	}
	if w.onExpire != nil {
		w.onExpire(w.id)
	}
}

func (w *Workspace) saveCache(ctx context.Context, kind string, v any) {
	b, err := json.Marshal(v)
	if err == nil {
		err = w.store.SaveCache(ctx, w.id, kind, b)
	}
	if err != nil {
		w.log.Warn("workspace: cache write failed", zap.String("workspace", w.id), zap.String("kind", kind), zap.Error(err))
	}
}

func (w *Workspace) loadCache(ctx context.Context, kind string, v any) bool {
	b, err := w.store.LoadCache(ctx, w.id, kind)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			w.log.Warn("workspace: cache read failed", zap.String("workspace", w.id), zap.String("kind", kind), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		w.log.Warn("workspace: cached payload unreadable", zap.String("workspace", w.id), zap.String("kind", kind), zap.Error(err))
		return false
	}
	return true
}
