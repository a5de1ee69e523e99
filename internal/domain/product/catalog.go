package product

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"loan-origination-backend/internal/domain/application"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID    string                   `json:"id"    yaml:"id"`
	Name  string                   `json:"name"  yaml:"name"`
	Terms application.ProductTerms `json:"terms" yaml:"terms"`
}

// Catalog is the read-only product reference data. It is loaded once and
// shared by pointer; nothing mutates it after construction.
type Catalog struct {
	byID  map[string]Product
	order []string
}

type catalogFile struct {
	Products []Product `yaml:"products"`
}

// NewCatalog indexes products, rejecting duplicates and inconsistent ranges.
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Product, len(products))}
	for _, p := range products {
		if p.ID == "" {
			return nil, errors.New("product with empty id")
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		t := p.Terms
		if t.MinAmount <= 0 || t.MaxAmount < t.MinAmount {
			return nil, fmt.Errorf("product %q: invalid amount range %v-%v", p.ID, t.MinAmount, t.MaxAmount)
		}
		if t.MinTenure <= 0 || t.MaxTenure < t.MinTenure {
			return nil, fmt.Errorf("product %q: invalid tenure range %d-%d", p.ID, t.MinTenure, t.MaxTenure)
		}
		if t.BaseInterestAPR <= 0 {
			return nil, fmt.Errorf("product %q: base_interest_apr must be > 0", p.ID)
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// LoadCatalog reads a YAML catalog file. An empty path yields the default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(Defaults())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(f.Products)
}

func (c *Catalog) Get(id string) (Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// List returns products in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// IDs returns the sorted product ids.
func (c *Catalog) IDs() []string {
	ids := append([]string(nil), c.order...)
	sort.Strings(ids)
	return ids
}

// Attach sets d.Product from the catalog entry named by d.ProductID.
// Unknown or empty ids clear it, so range checks are skipped rather than run
// against stale terms.
func (c *Catalog) Attach(d *application.Draft) {
	if d == nil {
		return
	}
	p, err := c.Get(d.ProductID)
	if err != nil {
		d.Product = nil
		return
	}
	terms := p.Terms
	d.Product = &terms
}

// Defaults is the built-in catalog used when no file is configured.
func Defaults() []Product {
	return []Product{
		{ID: "personal", Name: "Personal Loan", Terms: application.ProductTerms{
			MinAmount: 50000, MaxAmount: 2000000, MinTenure: 12, MaxTenure: 60, BaseInterestAPR: 12.5}},
		{ID: "home", Name: "Home Loan", Terms: application.ProductTerms{
			MinAmount: 500000, MaxAmount: 50000000, MinTenure: 60, MaxTenure: 360, BaseInterestAPR: 8.5}},
		{ID: "vehicle", Name: "Vehicle Loan", Terms: application.ProductTerms{
			MinAmount: 100000, MaxAmount: 5000000, MinTenure: 12, MaxTenure: 84, BaseInterestAPR: 9.75}},
		{ID: "education", Name: "Education Loan", Terms: application.ProductTerms{
			MinAmount: 100000, MaxAmount: 4000000, MinTenure: 12, MaxTenure: 120, BaseInterestAPR: 10.25}},
		{ID: "business", Name: "Business Loan", Terms: application.ProductTerms{
			MinAmount: 200000, MaxAmount: 10000000, MinTenure: 12, MaxTenure: 72, BaseInterestAPR: 14}},
	}
}
