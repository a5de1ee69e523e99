package product

import (
	"os"
	"path/filepath"
	"testing"

	"loan-origination-backend/internal/domain/application"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_Defaults(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, c.List(), len(Defaults()))

	p, err := c.Get("personal")
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.Terms.BaseInterestAPR)
}

func TestLoadCatalog_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.yaml")
	body := `
products:
  - id: gold
    name: Gold Loan
    terms:
      min_amount: 10000
      max_amount: 500000
      min_tenure: 3
      max_tenure: 24
      base_interest_apr: 9.5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gold"}, c.IDs())

	p, err := c.Get("gold")
	require.NoError(t, err)
	assert.Equal(t, application.ProductTerms{
		MinAmount: 10000, MaxAmount: 500000, MinTenure: 3, MaxTenure: 24, BaseInterestAPR: 9.5,
	}, p.Terms)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products: [ {id: x"), 0o600))
	_, err = LoadCatalog(path)
	assert.Error(t, err)
}

func TestNewCatalog_RejectsInvalid(t *testing.T) {
	good := application.ProductTerms{MinAmount: 1, MaxAmount: 2, MinTenure: 1, MaxTenure: 2, BaseInterestAPR: 1}

	_, err := NewCatalog([]Product{{ID: "a", Terms: good}, {ID: "a", Terms: good}})
	assert.ErrorContains(t, err, "duplicate")

	bad := good
	bad.MaxAmount = 0
	_, err = NewCatalog([]Product{{ID: "a", Terms: bad}})
	assert.ErrorContains(t, err, "amount range")

	bad = good
	bad.MinTenure = 3
	_, err = NewCatalog([]Product{{ID: "a", Terms: bad}})
	assert.ErrorContains(t, err, "tenure range")

	_, err = NewCatalog([]Product{{ID: "", Terms: good}})
	assert.Error(t, err)
}

func TestCatalog_Attach(t *testing.T) {
	c, err := NewCatalog(Defaults())
	require.NoError(t, err)

	d := &application.Draft{ProductID: "home"}
	c.Attach(d)
	require.NotNil(t, d.Product)
	assert.Equal(t, 8.5, d.Product.BaseInterestAPR)

	// the catalog entry is not shared with the draft
	d.Product.BaseInterestAPR = 99
	p, _ := c.Get("home")
	assert.Equal(t, 8.5, p.Terms.BaseInterestAPR)

	d.ProductID = "unknown"
	c.Attach(d)
	assert.Nil(t, d.Product)

	_, err = c.Get("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
