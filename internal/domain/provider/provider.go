// Package provider describes the business that issues quotes.
package provider

import (
	"strings"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/format"
)

const DefaultName = "Minha Empresa"

// Info is the business identity printed on every quote. Quotes embed a copy
// taken when they are saved, so later edits do not rewrite old documents.
type Info struct {
	Name      string `json:"name"`
	Document  string `json:"document,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	Logo      string `json:"logo,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
}

// Default is shown until the company saves its own profile.
func Default() Info {
	return Info{Name: DefaultName}
}

func (i Info) Normalize() Info {
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.TrimSpace(i.Email)
	i.Address = strings.TrimSpace(i.Address)
	i.Logo = strings.TrimSpace(i.Logo)
	if i.Phone != "" {
		i.Phone = format.MaskPhone(i.Phone)
	}
	if i.Document != "" {
		i.Document = format.MaskDocument(i.Document)
	}
	return i
}

func (i Info) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return apperr.Validation("provider name is required")
	}
	return nil
}
