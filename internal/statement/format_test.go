package statement

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/techmarket/internal/models"
)

func TestFormatterCurrency(t *testing.T) {
	f, err := NewFormatter("pt-BR", "R$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"6000", "R$ 6.000,00"},
		{"1250.5", "R$ 1.250,50"},
		{"450.75", "R$ 450,75"},
		{"-300", "R$ 300,00"},
		{"0", "R$ 0,00"},
		{"999.999", "R$ 1.000,00"},
		{"123456.7", "R$ 123.456,70"},
		{"12345678901234567.89", "R$ 12.345.678.901.234.567,89"},
		{"-98765432109876543.21", "R$ 98.765.432.109.876.543,21"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := f.Currency(decimal.RequireFromString(tt.input))
			if got != tt.expected {
				t.Errorf("Currency(%s): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatterCurrencySeparators(t *testing.T) {
	tests := []struct {
		locale   string
		symbol   string
		expected string
	}{
		{"pt-BR", "R$", "R$ 1.234.567,89"},
		{"en-US", "$", "$ 1,234,567.89"},
		{"de", "", "1.234.567,89"},
	}

	amount := decimal.RequireFromString("1234567.89")
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			f, err := NewFormatter(tt.locale, tt.symbol)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := f.Currency(amount); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatterDate(t *testing.T) {
	tests := []struct {
		locale   string
		expected string
	}{
		{"pt-BR", "05/01/2024"},
		{"pt-PT", "05/01/2024"},
		{"en-US", "1/5/2024"},
		{"ja", "2024-01-05"},
	}

	d := models.NewDate(2024, 1, 5)
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			f, err := NewFormatter(tt.locale, "R$")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := f.Date(d); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewFormatterRejectsBadLocale(t *testing.T) {
	if _, err := NewFormatter("not a locale!", "R$"); err == nil {
		t.Error("expected error, got nil")
	}
}
