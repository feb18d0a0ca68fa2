// Package statement fetches an account statement and turns it into display
// rows.
package statement

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/osteele/liquid"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/techmarket/internal/metrics"
	"github.com/insightdelivered/techmarket/internal/models"
)

// Messages shown in place of the list when loading fails.
const (
	MsgFetchFailed = "Falha ao buscar dados do extrato."
	MsgLoadFailed  = "Não foi possível carregar o extrato."
)

// CSS classes applied to rows.
const (
	ClassInflow    = "text-success"
	ClassOutflow   = "text-danger"
	ClassHighValue = "transacao-alta"
)

// DefaultHighValueThreshold marks rows whose amount is strictly above it.
var DefaultHighValueThreshold = decimal.NewFromInt(5000)

// Row is one rendered transaction.
type Row struct {
	Description string          `json:"descricao"`
	Date        string          `json:"data"`
	Sign        string          `json:"sinal"`
	Amount      string          `json:"valor"`
	Color       string          `json:"cor"`
	HighValue   bool            `json:"alto"`
	Kind        models.Kind     `json:"tipo"`
	Value       decimal.Decimal `json:"-"`
}

// List is the content of the statement area: either rows, in backend order,
// or a single error message.
type List struct {
	Rows  []Row  `json:"rows"`
	Error string `json:"error,omitempty"`
}

// Failed reports whether the list holds an error instead of rows.
func (l List) Failed() bool {
	return l.Error != ""
}

// Renderer builds statement lists.
type Renderer struct {
	fetcher   Fetcher
	format    *Formatter
	threshold decimal.Decimal
	logger    *log.Logger
	metrics   *metrics.Metrics
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighValueThreshold overrides DefaultHighValueThreshold.
func WithHighValueThreshold(threshold decimal.Decimal) Option {
	return func(r *Renderer) {
		r.threshold = threshold
	}
}

// WithLogger sets the logger used to report load failures.
func WithLogger(logger *log.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records fetch outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// NewRenderer creates a Renderer fetching through fetcher and formatting
// with format.
func NewRenderer(fetcher Fetcher, format *Formatter, opts ...Option) *Renderer {
	r := &Renderer{
		fetcher:   fetcher,
		format:    format,
		threshold: DefaultHighValueThreshold,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build turns records into rows without reordering them.
func (r *Renderer) Build(records []models.TransactionRecord) List {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{
			Description: rec.Description,
			Date:        r.format.Date(rec.Date),
			Amount:      r.format.Currency(rec.Amount),
			Kind:        rec.Kind,
			Value:       rec.Amount,
			HighValue:   rec.Amount.GreaterThan(r.threshold),
			Sign:        "+",
			Color:       ClassInflow,
		}
		if rec.Kind.IsOutflow() {
			row.Sign = "-"
			row.Color = ClassOutflow
		}
		rows = append(rows, row)
	}
	return List{Rows: rows}
}

// LoadAndRender fetches endpoint and builds a fresh list from it. Failures
// never escape: they become a list with one error message and no rows.
func (r *Renderer) LoadAndRender(ctx context.Context, endpoint string) List {
	records, err := r.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			r.metrics.ObserveFetch(metrics.OutcomeStatus)
			r.logger.Warn("statement endpoint rejected request", "endpoint", endpoint, "status", statusErr.Code)
			return List{Error: MsgFetchFailed}
		}
		r.metrics.ObserveFetch(metrics.OutcomeFailed)
		r.logger.Error("statement load failed", "endpoint", endpoint, "err", err)
		return List{Error: MsgLoadFailed}
	}

	r.metrics.ObserveFetch(metrics.OutcomeOK)
	r.logger.Debug("statement loaded", "endpoint", endpoint, "records", len(records))
	return r.Build(records)
}

var listTemplate = mustParse(`{% if error != "" %}<li class="list-group-item text-danger">{{ error | escape }}</li>
{% else %}{% for row in rows %}<li class="list-group-item d-flex justify-content-between align-items-center{% if row.high %} transacao-alta{% endif %}">
    <span>
        {{ row.description | escape }}
        <small class="d-block text-muted">{{ row.date | escape }}</small>
    </span>
    <span class="{{ row.color }}">{{ row.sign }} {{ row.amount | escape }}</span>
</li>
{% endfor %}{% endif %}`)

func mustParse(src string) *liquid.Template {
	tpl, err := liquid.NewEngine().ParseString(src)
	if err != nil {
		panic(err)
	}
	return tpl
}

// RenderHTML renders the list items of l as HTML.
func RenderHTML(l List) (string, error) {
	rows := make([]map[string]any, 0, len(l.Rows))
	for _, row := range l.Rows {
		rows = append(rows, map[string]any{
			"description": row.Description,
			"date":        row.Date,
			"sign":        row.Sign,
			"amount":      row.Amount,
			"color":       row.Color,
			"high":        row.HighValue,
		})
	}
	out, err := listTemplate.RenderString(liquid.Bindings{
		"error": l.Error,
		"rows":  rows,
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
