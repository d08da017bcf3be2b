package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money is a decimal currency amount. Portfolio files carry exact figures in
// JSON, YAML, and key=value form; keeping them decimal end to end avoids
// float drift in the ROI arithmetic.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal as a Money amount.
func NewMoney(d decimal.Decimal) Money { return Money{d} }

// MoneyFromString parses a currency amount. A leading "$" and thousands
// commas are accepted so figures can be pasted straight from cost dashboards.
func MoneyFromString(s string) (Money, error) {
	cleaned := strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "$")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, fmt.Errorf("%w: invalid currency amount %q", ErrInvalidInput, s)
	}
	return Money{d}, nil
}

// UnmarshalJSON accepts bare numbers and quoted strings, including the
// "$8,400.50" form figures get pasted in. An explicit null leaves the amount
// zero.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := MoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalYAML accepts any scalar form: 8400, 8400.50, "8,400.50", "$8400".
// The raw scalar text is parsed directly so unquoted YAML floats keep their
// exact written value.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: currency amount must be a scalar, got %s", ErrInvalidInput, value.Tag)
	}
	parsed, err := MoneyFromString(value.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML emits the exact decimal string.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.Decimal.String(), nil
}
