package param

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type query struct {
	Limit int    `json:"limit"`
	Asset string `json:"asset" valid:"required"`
}

type body struct {
	TraceID string `json:"trace_id" valid:"uuid,optional"`
	Amount  uint64 `json:"amount"`
}

func TestBindingQuery(t *testing.T) {
	var q query
	r := httptest.NewRequest("GET", "/transactions?limit=20&asset=btc&other=1", nil)
	require.Nil(t, Binding(r, &q))
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, "btc", q.Asset)

	q = query{}
	r = httptest.NewRequest("GET", "/transactions?limit=20", nil)
	assert.NotNil(t, Binding(r, &q))
}

func TestBindingBody(t *testing.T) {
	var b body
	r := httptest.NewRequest("POST", "/actions/deposit", strings.NewReader(`{"amount":1000}`))
	require.Nil(t, Binding(r, &b))
	assert.Equal(t, uint64(1000), b.Amount)

	b = body{}
	r = httptest.NewRequest("POST", "/actions/deposit", strings.NewReader(`{"trace_id":"nope","amount":1}`))
	assert.NotNil(t, Binding(r, &b))

	r = httptest.NewRequest("POST", "/actions/deposit", strings.NewReader(`{"amount":-1}`))
	assert.NotNil(t, Binding(r, &b))
}
