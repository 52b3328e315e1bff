package workspace

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/catalog"
	"orcafacil/go_backend/internal/domain/provider"
	"orcafacil/go_backend/internal/domain/quote"
	"orcafacil/go_backend/internal/domain/session"
	"orcafacil/go_backend/internal/infra/state"
)

// fakeRemote is an in-memory quote backend.
type fakeRemote struct {
	mu       sync.Mutex
	products []catalog.Item
	budgets  []quote.Quote
	company  *provider.Info
	calls    map[string]int
	seq      int

	loginErr    error
	productsErr error
	budgetsErr  error
	companyErr  error
	writeErr    error
	noBody      bool

	// saveStarted is signalled and saveGate awaited inside budget writes when set.
	saveStarted chan struct{}
	saveGate    chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{calls: make(map[string]int)}
}

func (f *fakeRemote) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeRemote) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRemote) Login(_ context.Context, email, password string) (session.Session, error) {
	f.hit("Login")
	if f.loginErr != nil {
		return session.Session{}, f.loginErr
	}
	return session.New("tok-"+email, session.User{ID: "u1", Email: email, CompanyID: "c1"})
}

func (f *fakeRemote) Products(context.Context, session.Session) ([]catalog.Item, error) {
	f.hit("Products")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return append([]catalog.Item{}, f.products...), nil
}

func (f *fakeRemote) CreateProduct(_ context.Context, _ session.Session, it catalog.Item) error {
	f.hit("CreateProduct")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.seq++
	it.ID = fmt.Sprintf("p%d", f.seq)
	f.products = append(f.products, it)
	return nil
}

func (f *fakeRemote) UpdateProduct(_ context.Context, _ session.Session, it catalog.Item) error {
	f.hit("UpdateProduct")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	for i := range f.products {
		if f.products[i].ID == it.ID {
			f.products[i] = it
			return nil
		}
	}
	return apperr.New(apperr.KindRemote, "product not found")
}

func (f *fakeRemote) DeleteProduct(_ context.Context, _ session.Session, id string) error {
	f.hit("DeleteProduct")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	kept := f.products[:0]
	for _, p := range f.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.products = kept
	return nil
}

func (f *fakeRemote) Budgets(context.Context, session.Session) ([]quote.Quote, error) {
	f.hit("Budgets")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.budgetsErr != nil {
		return nil, f.budgetsErr
	}
	out := make([]quote.Quote, 0, len(f.budgets))
	for _, q := range f.budgets {
		out = append(out, q.Clone())
	}
	return out, nil
}

func (f *fakeRemote) waitGate() {
	if f.saveStarted != nil {
		f.saveStarted <- struct{}{}
	}
	if f.saveGate != nil {
		<-f.saveGate
	}
}

func (f *fakeRemote) CreateBudget(_ context.Context, _ session.Session, q quote.Quote) (*quote.Quote, error) {
	f.hit("CreateBudget")
	f.waitGate()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.seq++
	q.ID = fmt.Sprintf("b%d", f.seq)
	f.budgets = append(f.budgets, q.Clone())
	if f.noBody {
		return nil, nil
	}
	return &q, nil
}

func (f *fakeRemote) UpdateBudget(_ context.Context, _ session.Session, q quote.Quote) (*quote.Quote, error) {
	f.hit("UpdateBudget")
	f.waitGate()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	for i := range f.budgets {
		if f.budgets[i].ID == q.ID {
			f.budgets[i] = q.Clone()
		}
	}
	if f.noBody {
		return nil, nil
	}
	return &q, nil
}

func (f *fakeRemote) DeleteBudget(_ context.Context, _ session.Session, id string) error {
	f.hit("DeleteBudget")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	kept := f.budgets[:0]
	for _, q := range f.budgets {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	f.budgets = kept
	return nil
}

func (f *fakeRemote) Company(context.Context, session.Session) (*provider.Info, error) {
	f.hit("Company")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	if f.company == nil {
		return nil, nil
	}
	c := *f.company
	return &c, nil
}

func (f *fakeRemote) SaveCompany(_ context.Context, _ session.Session, p provider.Info) (provider.Info, error) {
	f.hit("SaveCompany")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return provider.Info{}, f.writeErr
	}
	f.company = &p
	return p, nil
}

type fakeNotes struct{ text string }

func (n fakeNotes) Suggest(context.Context, quote.Quote) string { return n.text }

// countingStore records credential writes on top of the memory store.
type countingStore struct {
	*state.Memory
	mu    sync.Mutex
	saves int
}

func (s *countingStore) SaveSession(ctx context.Context, id string, c state.Credentials) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.Memory.SaveSession(ctx, id, c)
}

func (s *countingStore) sessionSaves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type fixture struct {
	remote  *fakeRemote
	store   *countingStore
	manager *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	remote := newFakeRemote()
	remote.products = []catalog.Item{
		{ID: "paint", Name: "Paint", Price: decimal.NewFromInt(100), Unit: "un", Type: catalog.TypeProduct},
		{ID: "labor", Name: "Labor", Price: decimal.NewFromInt(300), Unit: "h", Type: catalog.TypeService},
	}
	store := &countingStore{Memory: state.NewMemory()}
	m := NewManager(remote, store, fakeNotes{text: "Obrigado!"}, nil)
	seq := 0
	m.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	m.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return &fixture{remote: remote, store: store, manager: m}
}

func (fx *fixture) login(t *testing.T) *Workspace {
	t.Helper()
	w, err := fx.manager.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	return w
}
