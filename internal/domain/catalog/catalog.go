package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"orcafacil/go_backend/internal/domain/apperr"
)

type ItemType string

const (
	TypeProduct ItemType = "PRODUCT"
	TypeService ItemType = "SERVICE"
)

// ParseType maps free text to an ItemType. Anything that is not a product is a service.
func ParseType(s string) ItemType {
	if strings.EqualFold(strings.TrimSpace(s), string(TypeProduct)) {
		return TypeProduct
	}
	return TypeService
}

// Item is a reusable product or service template owned by a company.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit,omitempty"`
	Type        ItemType        `json:"type"`
	CompanyID   string          `json:"company_id,omitempty"`
}

// Label is the text shown for the item on a quote line.
func (it Item) Label() string {
	if d := strings.TrimSpace(it.Description); d != "" {
		return d
	}
	return it.Name
}

// Normalize trims text fields and fills the defaults a new item gets.
func (it Item) Normalize() Item {
	it.Name = strings.TrimSpace(it.Name)
	it.Description = strings.TrimSpace(it.Description)
	it.Unit = strings.TrimSpace(it.Unit)
	if it.Type != TypeProduct {
		it.Type = TypeService
	}
	return it
}

func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return apperr.Validation("item name is required")
	}
	if it.Price.IsNegative() {
		return apperr.Validation("item price cannot be negative")
	}
	return nil
}

// Find returns the item with the given id.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
