package statement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/insightdelivered/techmarket/internal/models"
)

// Formatter renders amounts and dates for one locale.
type Formatter struct {
	group      string
	decimal    string
	symbol     string
	dateLayout string
}

// dateLayouts holds the short date form per locale; the base language is
// used when the full tag is not listed.
var dateLayouts = map[string]string{
	"pt-BR": "02/01/2006",
	"pt":    "02/01/2006",
	"es":    "02/01/2006",
	"fr":    "02/01/2006",
	"de":    "02.01.2006",
	"en-US": "1/2/2006",
	"en":    "02/01/2006",
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "pt-BR".
func NewFormatter(locale, currencySymbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	group, dec := separatorsFor(tag)
	return &Formatter{
		group:      group,
		decimal:    dec,
		symbol:     strings.TrimSpace(currencySymbol),
		dateLayout: layoutFor(tag),
	}, nil
}

// separatorsFor reads the grouping and decimal marks off the locale's own
// rendering of 1234567.5. Locales that do not print ASCII digits fall back to
// "," and ".".
func separatorsFor(tag language.Tag) (group, dec string) {
	sample := message.NewPrinter(tag).Sprint(number.Decimal(1234567.5, number.Scale(1)))
	var marks []string
	for _, r := range sample {
		if r >= '0' && r <= '9' {
			continue
		}
		marks = append(marks, string(r))
	}
	switch {
	case len(sample)-len(strings.Join(marks, "")) != 8:
		return ",", "."
	case len(marks) == 3 && marks[0] == marks[1]:
		return marks[0], marks[2]
	case len(marks) == 1:
		return "", marks[0]
	default:
		return ",", "."
	}
}

func layoutFor(tag language.Tag) string {
	if layout, ok := dateLayouts[tag.String()]; ok {
		return layout
	}
	base, _ := tag.Base()
	if layout, ok := dateLayouts[base.String()]; ok {
		return layout
	}
	return models.DateLayout
}

// Currency formats the absolute value of amount with two decimals and the
// currency symbol, e.g. "R$ 6.000,00" for pt-BR.
func (f *Formatter) Currency(amount decimal.Decimal) string {
	whole, cents, _ := strings.Cut(amount.Abs().StringFixed(2), ".")
	num := groupThousands(whole, f.group) + f.decimal + cents
	if f.symbol == "" {
		return num
	}
	return f.symbol + " " + num
}

func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date formats a calendar date in the locale's short form.
func (f *Formatter) Date(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(f.dateLayout)
}
