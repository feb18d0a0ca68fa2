// Package validator checks registration and transfer submissions.
//
// Invalid input is an expected outcome: it is reported as a Result holding
// every violation found, never as an error.
package validator

import (
	"time"

	"github.com/insightdelivered/techmarket/internal/mask"
	"github.com/insightdelivered/techmarket/internal/models"
)

// Violation messages shown to the user, in rule order.
const (
	MsgCPF       = "O CPF deve conter exatamente 11 dígitos."
	MsgBirthDate = "A Data de Nascimento é inválida ou está no futuro."
	MsgPhone     = "O Telefone é inválido. Deve conter 10 ou 11 dígitos."

	MsgSourceAccount      = "A conta de origem é obrigatória."
	MsgDestinationAccount = "A conta de destino é obrigatória."
	MsgAmount             = "O valor deve ser maior que zero."
)

// Result is the outcome of one validation attempt.
type Result struct {
	Violations []string `json:"errors,omitempty"`
}

// Valid reports whether no rule was violated.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

func (r *Result) add(msg string) {
	r.Violations = append(r.Violations, msg)
}

// Validator evaluates submissions against the current date.
type Validator struct {
	now func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the CPF, birth date and phone rules. All three are always
// evaluated and their violations reported in that order.
func (v *Validator) Validate(form models.RegistrationForm) Result {
	var res Result
	if !validCPF(form.CPF) {
		res.add(MsgCPF)
	}
	if !v.validBirthDate(form.BirthDate) {
		res.add(MsgBirthDate)
	}
	if !validPhone(form.Phone) {
		res.add(MsgPhone)
	}
	return res
}

// ValidateTransfer requires both accounts and a strictly positive amount.
func (v *Validator) ValidateTransfer(req models.TransferRequest) Result {
	var res Result
	if req.SourceAccountID == nil {
		res.add(MsgSourceAccount)
	}
	if req.DestinationAccountID == nil {
		res.add(MsgDestinationAccount)
	}
	if !req.Amount.Valid || !req.Amount.Decimal.IsPositive() {
		res.add(MsgAmount)
	}
	return res
}

// validCPF only counts digits; check digits are not verified.
func validCPF(raw string) bool {
	return len(mask.Normalize(raw, 0)) == mask.MaxDigits
}

func validPhone(raw string) bool {
	n := len(mask.Normalize(raw, 0))
	return n == 10 || n == 11
}

// validBirthDate rejects empty and unparseable values and any day after
// today in the clock's location. Today itself is accepted.
func (v *Validator) validBirthDate(raw string) bool {
	born, err := models.ParseDate(raw)
	if err != nil {
		return false
	}
	now := v.now()
	today := models.NewDate(now.Year(), now.Month(), now.Day())
	return !born.After(today)
}
