package models

import "github.com/shopspring/decimal"

// RegistrationForm is one submission of the registration page. Values are
// taken as typed, masks included.
type RegistrationForm struct {
	CPF       string `json:"cpf" form:"cpf"`
	BirthDate string `json:"dataNascimento" form:"dataNascimento"`
	Phone     string `json:"telefone" form:"telefone"`
}

// TransferRequest asks the backend to simulate a transfer between accounts.
type TransferRequest struct {
	SourceAccountID      *int64              `json:"contaOrigemId"`
	DestinationAccountID *int64              `json:"contaDestinoId"`
	Amount               decimal.NullDecimal `json:"valor"`
}
