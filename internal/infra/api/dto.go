package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/catalog"
	"orcafacil/go_backend/internal/domain/format"
	"orcafacil/go_backend/internal/domain/provider"
	"orcafacil/go_backend/internal/domain/quote"
	"orcafacil/go_backend/internal/domain/session"
)

// unwrap strips an optional {"data": ...} envelope.
func unwrap(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(trimmed, &env) == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		return env.Data
	}
	return trimmed
}

func decodeList[T any](raw json.RawMessage, what string) ([]T, error) {
	var out []T
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(unwrap(raw), &out); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformed, err, what+" list is malformed")
	}
	return out, nil
}

func decodeOne[T any](raw json.RawMessage, what string) (*T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(unwrap(raw), &out); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformed, err, what+" is malformed")
	}
	return &out, nil
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexDecimal accepts numbers and strings such as "12.5" or "1.234,56".
type flexDecimal struct {
	decimal.Decimal
	Set bool
}

func (d *flexDecimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			return nil
		}
		v, err := format.ParseDecimal(s)
		if err != nil {
			return err
		}
		d.Decimal, d.Set = v, true
		return nil
	}
	v, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	d.Decimal, d.Set = v, true
	return nil
}

func first[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

func firstDecimal(vals ...flexDecimal) decimal.Decimal {
	for _, v := range vals {
		if v.Set {
			return v.Decimal
		}
	}
	return decimal.Zero
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// --- auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	Sub       flexString `json:"sub"`
	ID        flexString `json:"id"`
	MongoID   flexString `json:"_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CompanyID flexString `json:"companyId"`
	Company   flexString `json:"company_id"`
}

func (u userDTO) toDomain() session.User {
	return session.User{
		ID:        string(first(u.Sub, u.ID, u.MongoID)),
		Email:     strings.TrimSpace(u.Email),
		Name:      strings.TrimSpace(u.Name),
		CompanyID: string(first(u.CompanyID, u.Company)),
	}
}

type loginResponse struct {
	Token       string   `json:"token"`
	AccessToken string   `json:"access_token"`
	AccessCamel string   `json:"accessToken"`
	User        *userDTO `json:"user"`
}

func (r loginResponse) token() string {
	return first(r.Token, r.AccessToken, r.AccessCamel)
}

// --- products ---

type productDTO struct {
	ID          flexString  `json:"id"`
	MongoID     flexString  `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       flexDecimal `json:"price"`
	Value       flexDecimal `json:"value"`
	Unit        string      `json:"unit"`
	Type        string      `json:"type"`
	CompanyID   flexString  `json:"companyId"`
}

func (p productDTO) toDomain() catalog.Item {
	return catalog.Item{
		ID:          string(first(p.ID, p.MongoID)),
		Name:        first(p.Name, p.Description),
		Description: p.Description,
		Price:       firstDecimal(p.Price, p.Value),
		Unit:        p.Unit,
		Type:        catalog.ParseType(p.Type),
		CompanyID:   string(p.CompanyID),
	}.Normalize()
}

type productWrite struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Unit        string      `json:"unit"`
	Type        string      `json:"type"`
	CompanyID   string      `json:"companyId"`
}

func productPayload(it catalog.Item, companyID string) productWrite {
	return productWrite{
		Name:        it.Name,
		Description: it.Description,
		Price:       number(it.Price),
		Unit:        it.Unit,
		Type:        string(it.Type),
		CompanyID:   first(it.CompanyID, companyID),
	}
}

// --- companies ---

type companyDTO struct {
	ID        flexString `json:"id"`
	MongoID   flexString `json:"_id"`
	Name      string     `json:"name"`
	Document  string     `json:"document"`
	CNPJ      string     `json:"cnpj"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	Logo      string     `json:"logo"`
	CompanyID flexString `json:"companyId"`
}

func (c companyDTO) toDomain() provider.Info {
	return provider.Info{
		Name:      c.Name,
		Document:  first(c.Document, c.CNPJ),
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Logo:      c.Logo,
		CompanyID: string(first(c.CompanyID, c.ID, c.MongoID)),
	}.Normalize()
}

type companyWrite struct {
	Name      string `json:"name"`
	Document  string `json:"document"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Logo      string `json:"logo,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
}

func companyPayload(p provider.Info) companyWrite {
	return companyWrite{
		Name:      p.Name,
		Document:  p.Document,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		Logo:      p.Logo,
		CompanyID: p.CompanyID,
	}
}

// --- budgets ---

type budgetItemDTO struct {
	ProductID   flexString  `json:"productId"`
	ID          flexString  `json:"id"`
	MongoID     flexString  `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Unit        string      `json:"unit"`
	Type        string      `json:"type"`
	Price       flexDecimal `json:"price"`
	Value       flexDecimal `json:"value"`
	Quantity    flexDecimal `json:"quantity"`
	Product     *productDTO `json:"product"`
}

func (it budgetItemDTO) toDomain() quote.Item {
	out := quote.Item{
		CatalogID:   string(first(it.ProductID, it.ID, it.MongoID)),
		Name:        it.Name,
		Description: it.Description,
		Unit:        it.Unit,
		Type:        catalog.ItemType(strings.ToUpper(it.Type)),
		Price:       firstDecimal(it.Price, it.Value),
		Quantity:    firstDecimal(it.Quantity),
	}
	// Populated references fill what the line itself left out.
	if it.Product != nil {
		p := it.Product.toDomain()
		out.CatalogID = first(out.CatalogID, p.ID)
		out.Name = first(out.Name, p.Name)
		out.Description = first(out.Description, p.Description)
		out.Unit = first(out.Unit, p.Unit)
		out.Type = first(out.Type, p.Type)
		if !it.Price.Set && !it.Value.Set {
			out.Price = p.Price
		}
	}
	if out.Quantity.IsNegative() {
		out.Quantity = decimal.Zero
	}
	return out
}

type budgetDTO struct {
	ID            flexString      `json:"id"`
	MongoID       flexString      `json:"_id"`
	Number        flexString      `json:"number"`
	ClientName    string          `json:"clientName"`
	CustomerName  string          `json:"customerName"`
	ClientPhone   string          `json:"clientPhone"`
	CustomerPhone string          `json:"customerPhone"`
	ClientEmail   string          `json:"clientEmail"`
	CustomerEmail string          `json:"customerEmail"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Notes         string          `json:"notes"`
	Items         []budgetItemDTO `json:"items"`
	ProviderInfo  *companyDTO     `json:"providerInfo"`
	CompanyID     flexString      `json:"companyId"`
	CreatedAt     string          `json:"createdAt"`
}

// toDomain ignores any total the backend sent; the total is always derived
// from the lines.
func (b budgetDTO) toDomain() quote.Quote {
	q := quote.Quote{
		ID:     string(first(b.ID, b.MongoID)),
		Number: string(b.Number),
		Customer: quote.Customer{
			Name:    first(b.ClientName, b.CustomerName),
			Phone:   first(b.ClientPhone, b.CustomerPhone),
			Email:   first(b.ClientEmail, b.CustomerEmail),
			Address: b.Address,
			City:    b.City,
			State:   b.State,
		},
		Items:     make([]quote.Item, 0, len(b.Items)),
		Notes:     b.Notes,
		Provider:  provider.Default(),
		CompanyID: string(b.CompanyID),
		CreatedAt: parseTime(b.CreatedAt),
	}
	for _, it := range b.Items {
		q.Items = append(q.Items, it.toDomain())
	}
	if b.ProviderInfo != nil {
		q.Provider = b.ProviderInfo.toDomain()
	}
	q.Recalculate()
	return q
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

type budgetItemWrite struct {
	ProductID   string      `json:"productId"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Unit        string      `json:"unit,omitempty"`
	Type        string      `json:"type,omitempty"`
	Quantity    json.Number `json:"quantity"`
	Price       json.Number `json:"price"`
}

type budgetWrite struct {
	CompanyID    string            `json:"companyId"`
	Number       string            `json:"number,omitempty"`
	ClientName   string            `json:"clientName"`
	ClientPhone  string            `json:"clientPhone"`
	ClientEmail  string            `json:"clientEmail"`
	Address      string            `json:"address"`
	City         string            `json:"city"`
	State        string            `json:"state"`
	Notes        string            `json:"notes"`
	Items        []budgetItemWrite `json:"items"`
	Total        json.Number       `json:"total"`
	ProviderInfo companyWrite      `json:"providerInfo"`
	CreatedAt    string            `json:"createdAt,omitempty"`
}

func budgetPayload(q quote.Quote, companyID string) budgetWrite {
	out := budgetWrite{
		CompanyID:    first(q.CompanyID, companyID),
		Number:       q.Number,
		ClientName:   q.Customer.Name,
		ClientPhone:  q.Customer.Phone,
		ClientEmail:  q.Customer.Email,
		Address:      q.Customer.Address,
		City:         q.Customer.City,
		State:        q.Customer.State,
		Notes:        q.Notes,
		Items:        make([]budgetItemWrite, 0, len(q.Items)),
		Total:        number(quote.CalculateTotal(q.Items)),
		ProviderInfo: companyPayload(q.Provider),
	}
	if !q.CreatedAt.IsZero() {
		out.CreatedAt = q.CreatedAt.UTC().Format(time.RFC3339)
	}
	for _, it := range q.Items {
		out.Items = append(out.Items, budgetItemWrite{
			ProductID:   it.CatalogID,
			Name:        it.Name,
			Description: it.Description,
			Unit:        it.Unit,
			Type:        string(it.Type),
			Quantity:    number(it.Quantity),
			Price:       number(it.Price),
		})
	}
	return out
}
