package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		wantErr  bool
	}{
		{"2024-01-05", NewDate(2024, time.January, 5), false},
		{" 2024-01-05 ", NewDate(2024, time.January, 5), false},
		{"2024-01-05T10:30:00Z", NewDate(2024, time.January, 5), false},
		{"2024-01-05T22:30:00-03:00", NewDate(2024, time.January, 5), false},
		{"2024-01-05T10:30:00", NewDate(2024, time.January, 5), false},
		{"", Date{}, true},
		{"05/01/2024", Date{}, true},
		{"2024-13-01", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected.Time) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTransactionRecordJSON(t *testing.T) {
	var rec TransactionRecord
	err := json.Unmarshal([]byte(`{"descricao":"Salário","valor":6000.5,"tipo":"entrada","data":"2024-01-05"}`), &rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Description != "Salário" || rec.Amount.String() != "6000.5" || rec.Kind != KindInflow {
		t.Errorf("unexpected record: %+v", rec)
	}

	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"descricao":"Salário","valor":6000.5,"tipo":"entrada","data":"2024-01-05"}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestTransactionRecordJSONLeavesDecimalDefaults(t *testing.T) {
	rec := TransactionRecord{
		Description: "Aluguel",
		Amount:      decimal.RequireFromString("12345678901234567.89"),
		Kind:        KindOutflow,
		Date:        NewDate(2024, time.January, 8),
	}
	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"descricao":"Aluguel","valor":12345678901234567.89,"tipo":"saida","data":"2024-01-08"}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}

	if decimal.MarshalJSONWithoutQuotes {
		t.Error("decimal.MarshalJSONWithoutQuotes was changed")
	}
	plain, err := json.Marshal(decimal.RequireFromString("10.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(plain) != `"10.5"` {
		t.Errorf("plain decimal: got %s, want %q", plain, `"10.5"`)
	}
}

func TestDateUnmarshalRejectsNumbers(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`20240105`), &d); err == nil {
		t.Error("expected error, got nil")
	}
	if err := json.Unmarshal([]byte(`null`), &d); err != nil || !d.IsZero() {
		t.Errorf("null should decode to zero date, got %v (%v)", d, err)
	}
}

func TestKindIsOutflow(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected bool
	}{
		{KindOutflow, true},
		{"SAIDA", true},
		{KindInflow, false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.kind.IsOutflow(); got != tt.expected {
			t.Errorf("Kind(%q).IsOutflow(): got %v, want %v", tt.kind, got, tt.expected)
		}
	}
}
