package quote

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/catalog"
	"orcafacil/go_backend/internal/domain/format"
	"orcafacil/go_backend/internal/domain/provider"
)

type Quote struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	CreatedAt time.Time       `json:"created_at"`
	Customer  Customer        `json:"customer"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Notes     string          `json:"notes,omitempty"`
	Provider  provider.Info   `json:"provider"`
	CompanyID string          `json:"company_id,omitempty"`
}

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
}

func (c Customer) Normalize() Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
	c.State = strings.ToUpper(strings.TrimSpace(c.State))
	if c.Phone != "" {
		c.Phone = format.MaskPhone(c.Phone)
	}
	return c
}

// Item is a quote line: a copy of a catalog item taken when it was added.
type Item struct {
	CatalogID   string           `json:"catalog_id"`
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	Type        catalog.ItemType `json:"type,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Quantity    decimal.Decimal  `json:"quantity"`
}

func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Mul(it.Quantity)
}

func (it Item) Label() string {
	if d := strings.TrimSpace(it.Description); d != "" {
		return d
	}
	return it.Name
}

// UnitLabel defaults to "un" when the catalog item had no unit.
func (it Item) UnitLabel() string {
	if u := strings.TrimSpace(it.Unit); u != "" {
		return u
	}
	return "un"
}

// New returns an empty quote with a provider snapshot.
func New(id, number string, createdAt time.Time, p provider.Info, companyID string) Quote {
	return Quote{
		ID:        id,
		Number:    number,
		CreatedAt: createdAt,
		Items:     []Item{},
		Total:     decimal.Zero,
		Provider:  p,
		CompanyID: companyID,
	}
}

// CalculateTotal sums price x quantity over items. Missing values count as zero.
func CalculateTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (q *Quote) Recalculate() {
	q.Total = CalculateTotal(q.Items)
}

// AddFromCatalog bumps the quantity of the line that already holds ci, or
// appends a new line with quantity 1.
func (q *Quote) AddFromCatalog(ci catalog.Item) {
	for i := range q.Items {
		if q.Items[i].CatalogID == ci.ID {
			q.Items[i].Quantity = q.Items[i].Quantity.Add(decimal.NewFromInt(1))
			q.Recalculate()
			return
		}
	}
	q.Items = append(q.Items, Item{
		CatalogID:   ci.ID,
		Name:        ci.Name,
		Description: ci.Label(),
		Unit:        ci.Unit,
		Type:        ci.Type,
		Price:       ci.Price,
		Quantity:    decimal.NewFromInt(1),
	})
	q.Recalculate()
}

// UpdateQuantity sets the quantity of line index from user input.
func (q *Quote) UpdateQuantity(index int, raw string) error {
	return q.SetQuantity(index, format.ParseQuantity(raw))
}

// SetQuantity sets the quantity of line index; negative values become 0.
func (q *Quote) SetQuantity(index int, qty decimal.Decimal) error {
	if index < 0 || index >= len(q.Items) {
		return apperr.Validation("no line item at index %d", index)
	}
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	q.Items[index].Quantity = qty
	q.Recalculate()
	return nil
}

func (q *Quote) RemoveItem(index int) error {
	if index < 0 || index >= len(q.Items) {
		return apperr.Validation("no line item at index %d", index)
	}
	q.Items = append(q.Items[:index:index], q.Items[index+1:]...)
	q.Recalculate()
	return nil
}

// Clone returns a copy that shares no line storage with q.
func (q Quote) Clone() Quote {
	items := make([]Item, len(q.Items))
	copy(items, q.Items)
	q.Items = items
	return q
}
