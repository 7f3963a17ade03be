package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_CloneIsDeep(t *testing.T) {
	c := Collection{notebook()}
	c[0].Amortizations = []Amortization{{ID: "a-1", Amount: decimal.NewFromInt(1)}}

	clone := c.Clone()
	clone[0].Name = "changed"
	clone[0].Amortizations[0].ID = "changed"

	assert.Equal(t, "Notebook", c[0].Name)
	assert.Equal(t, "a-1", c[0].Amortizations[0].ID)
}

func TestCollection_NilClonesToEmptyArray(t *testing.T) {
	var c Collection
	data, err := json.Marshal(c.Clone())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCollection_Find(t *testing.T) {
	c := Collection{{ID: "x"}, {ID: "y"}}
	assert.Equal(t, 0, c.Find("x"))
	assert.Equal(t, 1, c.Find("y"))
	assert.Equal(t, -1, c.Find("z"))
}

func TestCollection_Summarize(t *testing.T) {
	paid := notebook()
	paid.ID = "p-2"
	paid.Amortizations = []Amortization{{ID: "a", Amount: decimal.NewFromInt(1500)}}

	c := Collection{notebook(), paid}
	s := c.Summarize()

	assert.Equal(t, 2, s.Purchases)
	assert.Equal(t, 1, s.PaidOff)
	assert.Equal(t, "2400", s.TotalValue.String())
	assert.Equal(t, "1500", s.TotalAmortized.String())
	assert.Equal(t, "1200", s.TotalBalance.String())
}

func TestPurchase_JSONLayout(t *testing.T) {
	p := notebook()
	p.Amortizations = []Amortization{{ID: "a-1", Amount: MustAmount("200.5"), Date: MustParseDate("2024-02-01")}}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "p-1",
		"name": "Notebook",
		"totalValue": 1200,
		"installments": 12,
		"startDate": "2024-01-10",
		"amortizations": [{"id": "a-1", "amount": 200.5, "date": "2024-02-01"}]
	}`, string(data))
	assert.NotContains(t, string(data), "receiptUrl")

	p.ReceiptURL = "https://drive.example/r"
	data, err = json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"receiptUrl":"https://drive.example/r"`)
}
