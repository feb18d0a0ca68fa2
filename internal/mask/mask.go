// Package mask formats Brazilian CPF and phone numbers as they are typed.
//
// Every keystroke is handled by normalizing the whole field value back to its
// digits and masking those again. Masking an already masked value is not
// supported; always go through Normalize first.
package mask

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDigits is the digit limit kept for both CPF and phone fields.
const MaxDigits = 11

// ErrUnknownField is returned for a field name that has no mask.
var ErrUnknownField = errors.New("unknown field")

// Field names a masked input of the registration form.
type Field string

const (
	FieldCPF   Field = "cpf"
	FieldPhone Field = "telefone"
)

// ParseField maps a field name to a Field.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cpf":
		return FieldCPF, nil
	case "telefone", "phone", "tel":
		return FieldPhone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// tier maps a minimum digit count to the groups and the separator placed
// before each group. Digits past the last group are dropped.
type tier struct {
	minLen int
	groups []int
	before []string
}

// Tiers are checked top down; the first one whose minLen is reached wins.
var cpfTiers = []tier{
	{minLen: 10, groups: []int{3, 3, 3, 2}, before: []string{"", ".", ".", "-"}},
	{minLen: 7, groups: []int{3, 3, 3}, before: []string{"", ".", "."}},
	{minLen: 4, groups: []int{3, 3}, before: []string{"", "."}},
}

var phoneTiers = []tier{
	{minLen: 11, groups: []int{2, 5, 4}, before: []string{"(", ") ", "-"}},
	{minLen: 7, groups: []int{2, 4, 4}, before: []string{"(", ") ", "-"}},
	{minLen: 3, groups: []int{2, 5}, before: []string{"(", ") "}},
}

// Normalize keeps only the ASCII digits of raw, truncated to max digits.
// A max of zero or less keeps every digit.
func Normalize(raw string, max int) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c < '0' || c > '9' {
			continue
		}
		if max > 0 && b.Len() == max {
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}

// MaskIdentifier punctuates CPF digits: 123, 123.4, 123.456.7, 123.456.789-01.
func MaskIdentifier(digits string) string {
	return apply(cpfTiers, digits)
}

// MaskPhone punctuates phone digits: 11, (11) 9, (11) 9876-5, (11) 98765-4321.
func MaskPhone(digits string) string {
	return apply(phoneTiers, digits)
}

// FormatCPF normalizes a raw CPF field value and masks it.
func FormatCPF(raw string) string {
	return MaskIdentifier(Normalize(raw, MaxDigits))
}

// FormatPhone normalizes a raw phone field value and masks it.
func FormatPhone(raw string) string {
	return MaskPhone(Normalize(raw, MaxDigits))
}

// Format applies the mask of the given field to a raw value.
func Format(field Field, raw string) (string, error) {
	switch field {
	case FieldCPF:
		return FormatCPF(raw), nil
	case FieldPhone:
		return FormatPhone(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func apply(tiers []tier, digits string) string {
	for _, t := range tiers {
		if len(digits) < t.minLen {
			continue
		}
		var b strings.Builder
		rest := digits
		for i, size := range t.groups {
			if rest == "" {
				break
			}
			if size > len(rest) {
				size = len(rest)
			}
			b.WriteString(t.before[i])
			b.WriteString(rest[:size])
			rest = rest[size:]
		}
		return b.String()
	}
	return digits
}
