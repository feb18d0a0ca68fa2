package statement

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/techmarket/internal/models"
)

type stubFetcher struct {
	records []models.TransactionRecord
	err     error
	calls   int
}

func (s *stubFetcher) Fetch(ctx context.Context, endpoint string) ([]models.TransactionRecord, error) {
	s.calls++
	return s.records, s.err
}

func newTestRenderer(t *testing.T, f Fetcher, opts ...Option) *Renderer {
	t.Helper()
	format, err := NewFormatter("pt-BR", "R$")
	require.NoError(t, err)
	return NewRenderer(f, format, opts...)
}

func record(desc, amount string, kind models.Kind, day int) models.TransactionRecord {
	return models.TransactionRecord{
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Kind:        kind,
		Date:        models.NewDate(2024, 1, day),
	}
}

func TestBuildHighValueInflow(t *testing.T) {
	r := newTestRenderer(t, &stubFetcher{})

	list := r.Build([]models.TransactionRecord{record("Salário", "6000", models.KindInflow, 5)})

	require.Len(t, list.Rows, 1)
	row := list.Rows[0]
	assert.Equal(t, "Salário", row.Description)
	assert.Equal(t, "05/01/2024", row.Date)
	assert.Equal(t, "+", row.Sign)
	assert.Equal(t, ClassInflow, row.Color)
	assert.Equal(t, "R$ 6.000,00", row.Amount)
	assert.True(t, row.HighValue)
	assert.False(t, list.Failed())
}

func TestBuildKeepsOrderAndSigns(t *testing.T) {
	r := newTestRenderer(t, &stubFetcher{})

	list := r.Build([]models.TransactionRecord{
		record("Supermercado", "450.75", models.KindOutflow, 12),
		record("Reembolso", "300", models.KindInflow, 15),
		record("Fornecedor", "5000", models.KindOutflow, 8),
		record("Fornecedor XYZ", "7820", models.KindOutflow, 8),
	})

	require.Len(t, list.Rows, 4)
	assert.Equal(t, []string{"Supermercado", "Reembolso", "Fornecedor", "Fornecedor XYZ"},
		[]string{list.Rows[0].Description, list.Rows[1].Description, list.Rows[2].Description, list.Rows[3].Description})

	assert.Equal(t, "-", list.Rows[0].Sign)
	assert.Equal(t, ClassOutflow, list.Rows[0].Color)
	assert.Equal(t, "+", list.Rows[1].Sign)
	assert.False(t, list.Rows[2].HighValue, "threshold is strict")
	assert.True(t, list.Rows[3].HighValue)
}

func TestBuildCustomThreshold(t *testing.T) {
	r := newTestRenderer(t, &stubFetcher{}, WithHighValueThreshold(decimal.NewFromInt(100)))

	list := r.Build([]models.TransactionRecord{record("Café", "100.01", models.KindOutflow, 1)})
	require.Len(t, list.Rows, 1)
	assert.True(t, list.Rows[0].HighValue)
}

func TestLoadAndRenderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := newTestRenderer(t, NewClient(srv.Client()))
	list := r.LoadAndRender(context.Background(), srv.URL)

	assert.True(t, list.Failed())
	assert.Equal(t, MsgFetchFailed, list.Error)
	assert.Empty(t, list.Rows)

	html, err := RenderHTML(list)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(html, "<li"))
	assert.Contains(t, html, "text-danger")
	assert.Contains(t, html, MsgFetchFailed)
}

func TestLoadAndRenderTransportError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	r := newTestRenderer(t, fetcher)

	list := r.LoadAndRender(context.Background(), "http://backend/api/transacoes/extrato")

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, MsgLoadFailed, list.Error)
	assert.Empty(t, list.Rows)
}

func TestLoadAndRenderSuccess(t *testing.T) {
	fetcher := &stubFetcher{records: []models.TransactionRecord{
		record("Salário", "6000", models.KindInflow, 5),
		record("Compra <b>Online</b>", "1250.50", models.KindOutflow, 10),
	}}
	r := newTestRenderer(t, fetcher)

	list := r.LoadAndRender(context.Background(), "http://backend/api/transacoes/extrato")
	require.False(t, list.Failed())
	require.Len(t, list.Rows, 2)

	html, err := RenderHTML(list)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(html, "<li"))
	assert.Equal(t, 1, strings.Count(html, ClassHighValue))
	assert.Contains(t, html, `<span class="text-success">+ R$ 6.000,00</span>`)
	assert.Contains(t, html, `<span class="text-danger">- R$ 1.250,50</span>`)
	assert.Contains(t, html, "Compra &lt;b&gt;Online&lt;/b&gt;")
	assert.NotContains(t, html, "text-danger\">Falha")
}

func TestRenderHTMLEmptyList(t *testing.T) {
	html, err := RenderHTML(List{})
	require.NoError(t, err)
	assert.NotContains(t, html, "<li")
}
