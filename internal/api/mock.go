package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/techmarket/internal/models"
)

// MockStatement returns the demo statement, dated within the month of now.
func MockStatement(now time.Time) []models.TransactionRecord {
	day := func(d int) models.Date {
		return models.NewDate(now.Year(), now.Month(), d)
	}
	return []models.TransactionRecord{
		{Description: "Salário Mensal", Amount: decimal.RequireFromString("9500.00"), Kind: models.KindInflow, Date: day(5)},
		{Description: "Pagamento Fornecedor XYZ", Amount: decimal.RequireFromString("7820.00"), Kind: models.KindOutflow, Date: day(8)},
		{Description: "Compra Online - TechStore", Amount: decimal.RequireFromString("1250.50"), Kind: models.KindOutflow, Date: day(10)},
		{Description: "Supermercado Alfa", Amount: decimal.RequireFromString("450.75"), Kind: models.KindOutflow, Date: day(12)},
		{Description: "Reembolso de Despesa", Amount: decimal.RequireFromString("300.00"), Kind: models.KindInflow, Date: day(15)},
	}
}
