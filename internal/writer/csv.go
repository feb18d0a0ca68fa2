package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/techmarket/internal/statement"
)

// CSVWriter writes rendered statement rows to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the list to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, list statement.List) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, list); err != nil {
		return err
	}
	return f.Close()
}

// Write writes the list in CSV format to the given writer. A failed list is
// written as a single "# Erro" row.
func (w *CSVWriter) Write(out io.Writer, list statement.List) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		header := []string{"Data", "Descricao", "Tipo", "Valor", "Alto"}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	if list.Failed() {
		if err := writer.Write([]string{"# Erro", list.Error}); err != nil {
			return fmt.Errorf("failed to write CSV error row: %w", err)
		}
	}

	for _, row := range list.Rows {
		record := []string{
			row.Date,
			row.Description,
			string(row.Kind),
			formatAmount(row),
			formatFlag(row.HighValue),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatAmount writes the signed amount with two decimals and a dot separator
// so spreadsheets read it as a number.
func formatAmount(row statement.Row) string {
	value := row.Value.Abs().StringFixed(2)
	if row.Sign == "-" {
		return "-" + value
	}
	return value
}

func formatFlag(b bool) string {
	if b {
		return "sim"
	}
	return "nao"
}
