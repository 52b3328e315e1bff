package workspace

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orcafacil/go_backend/internal/domain/catalog"
	"orcafacil/go_backend/internal/domain/format"
	"orcafacil/go_backend/internal/domain/provider"
	"orcafacil/go_backend/internal/domain/quote"
	"orcafacil/go_backend/internal/infra/state"
)

type editingContext struct {
	remote  *fakeRemote
	manager *Manager
	ws      *Workspace
	current quote.Quote
	saved   quote.Quote
	err     error
}

func (c *editingContext) reset() {
	c.remote = newFakeRemote()
	c.manager = NewManager(c.remote, state.NewMemory(), fakeNotes{}, nil)
	c.manager.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	c.ws = nil
	c.current = quote.Quote{}
	c.saved = quote.Quote{}
	c.err = nil
}

func (c *editingContext) catalogHas(name string, price int, unit string) error {
	c.remote.products = append(c.remote.products, catalog.Item{
		ID:    strings.ToLower(name),
		Name:  name,
		Price: decimal.NewFromInt(int64(price)),
		Unit:  unit,
		Type:  catalog.TypeProduct,
	})
	return nil
}

func (c *editingContext) providerIs(name string) error {
	c.remote.company = &provider.Info{Name: name}
	return nil
}

func (c *editingContext) loggedIn() error {
	w, err := c.manager.Login(context.Background(), "ana@example.com", "secret")
	c.ws = w
	return err
}

func (c *editingContext) startQuote() error {
	q, err := c.ws.NewQuote(context.Background())
	c.current = q
	return err
}

func (c *editingContext) addItem(name string) error {
	q, err := c.ws.AddItem(strings.ToLower(name))
	c.current = q
	return err
}

func (c *editingContext) setQuantity(line int, raw string) error {
	q, err := c.ws.UpdateQuantity(line-1, raw)
	c.current = q
	return err
}

func (c *editingContext) removeLine(line int) error {
	q, err := c.ws.RemoveItem(line - 1)
	c.current = q
	return err
}

func (c *editingContext) customerIs(name string) error {
	q, err := c.ws.UpdateCustomer(quote.Customer{Name: name})
	c.current = q
	return err
}

func (c *editingContext) saveQuote() error {
	q, err := c.ws.Save(context.Background())
	c.saved, c.current = q, q
	return err
}

func (c *editingContext) savedQuoteFor(name string) error {
	q := quote.New(uuid.NewString(), "ORC-0001", time.Now(), provider.Info{Name: "Acme"}, "c1")
	q.Customer.Name = name
	c.remote.budgets = append(c.remote.budgets, q)
	c.saved = q
	_, err := c.ws.Quotes(context.Background(), "")
	return err
}

func (c *editingContext) lineCount(n int) error {
	if len(c.current.Items) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(c.current.Items))
	}
	return nil
}

func (c *editingContext) lineQuantity(line int, want string) error {
	if line < 1 || line > len(c.current.Items) {
		return fmt.Errorf("no line %d", line)
	}
	if got := format.Quantity(c.current.Items[line-1].Quantity); got != want {
		return fmt.Errorf("expected quantity %s, got %s", want, got)
	}
	return nil
}

func (c *editingContext) totalIs(want string) error {
	if got := format.Currency(c.current.Total); got != want {
		return fmt.Errorf("expected total %q, got %q", want, got)
	}
	return nil
}

func (c *editingContext) shareTextContains(part string) error {
	q, err := c.ws.Quote(c.saved.ID)
	if err != nil {
		return err
	}
	if text := quote.ShareText(q); !strings.Contains(text, part) {
		return fmt.Errorf("share text %q does not contain %q", text, part)
	}
	return nil
}

func (c *editingContext) askDelete() error {
	return c.ws.RequestDelete(c.saved.ID)
}

func (c *editingContext) cancelDelete() error {
	c.ws.CancelDelete()
	return nil
}

func (c *editingContext) confirmDelete() error {
	return c.ws.ConfirmDelete(context.Background(), c.saved.ID)
}

func (c *editingContext) listingHas(n int) error {
	c.ws.mu.Lock()
	got := len(c.ws.quotes)
	c.ws.mu.Unlock()
	if got != n {
		return fmt.Errorf("expected %d quotes listed, got %d", n, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &editingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog has "([^"]*)" priced (\d+) per "([^"]*)"$`, tc.catalogHas)
	ctx.Step(`^the provider is "([^"]*)"$`, tc.providerIs)
	ctx.Step(`^I am logged in$`, tc.loggedIn)
	ctx.Step(`^a saved quote for "([^"]*)"$`, tc.savedQuoteFor)

	// When steps
	ctx.Step(`^I start a new quote$`, tc.startQuote)
	ctx.Step(`^I add "([^"]*)" to the quote$`, tc.addItem)
	ctx.Step(`^I set the quantity of line (\d+) to "([^"]*)"$`, tc.setQuantity)
	ctx.Step(`^I remove line (\d+)$`, tc.removeLine)
	ctx.Step(`^the customer is "([^"]*)"$`, tc.customerIs)
	ctx.Step(`^I save the quote$`, tc.saveQuote)
	ctx.Step(`^I ask to delete the quote$`, tc.askDelete)
	ctx.Step(`^I cancel the deletion$`, tc.cancelDelete)
	ctx.Step(`^I confirm the deletion$`, tc.confirmDelete)

	// Then steps
	ctx.Step(`^the quote has (\d+) lines?$`, tc.lineCount)
	ctx.Step(`^line (\d+) has quantity "([^"]*)"$`, tc.lineQuantity)
	ctx.Step(`^the quote total is "([^"]*)"$`, tc.totalIs)
	ctx.Step(`^the share text contains "([^"]*)"$`, tc.shareTextContains)
	ctx.Step(`^the listing has (\d+) quotes?$`, tc.listingHas)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/quote_editing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
