// Package money implements the fixed-point amount used for every balance
// and transaction value. Amounts are stored as whole hundredths in an
// int64 and rendered with exactly two fraction digits.
package money

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in hundredths of the currency unit.
type Amount int64

// MaxAmount is the largest value a single transaction may carry
// (999,999,999,999.99).
const MaxAmount Amount = 99999999999999

var (
	// ErrInvalid is returned when the input is not a decimal number.
	ErrInvalid = errors.New("money: invalid amount")
	// ErrPrecision is returned when the input has more than two fraction digits.
	ErrPrecision = errors.New("money: more than two decimal places")
	// ErrRange is returned when the input does not fit in an Amount.
	ErrRange = errors.New("money: amount out of range")
)

var (
	hundred  = decimal.NewFromInt(100)
	maxInt64 = decimal.NewFromInt(1<<63 - 1)
	minInt64 = decimal.NewFromInt(-1 << 63)
)

// Parse reads a decimal string such as "1500.25".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return FromDecimal(d)
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// maxCentDigits is the digit count of the largest int64.
const maxCentDigits = 19

// FromDecimal converts d, rejecting values with sub-cent precision. The
// exponent is bounded before any arithmetic, so 1e-50000000 fails at once.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return 0, nil
	}
	digits := int64(len(new(big.Int).Abs(coef).String()))
	shift := int64(d.Exponent()) + 2
	if shift < -digits {
		return 0, ErrPrecision
	}
	if shift+digits > maxCentDigits+1 {
		return 0, ErrRange
	}

	cents := d.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, ErrPrecision
	}
	if cents.GreaterThan(maxInt64) || cents.LessThan(minInt64) {
		return 0, ErrRange
	}
	return Amount(cents.IntPart()), nil
}

// Decimal returns the amount as an exact decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String renders the amount with two fraction digits.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a quoted decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON number. A JSON null
// leaves the receiver untouched.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return ErrInvalid
		}
	} else {
		raw = string(data)
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value stores the amount as its integer number of hundredths.
func (a Amount) Value() (driver.Value, error) {
	return int64(a), nil
}

// Scan reads an integer column, tolerating drivers that hand back text or
// floats for aggregate expressions.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = 0
	case int64:
		*a = Amount(v)
	case int32:
		*a = Amount(v)
	case float64:
		*a = Amount(decimal.NewFromFloat(v).Round(0).IntPart())
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	default:
		return fmt.Errorf("money: cannot scan %T", src)
	}
	return nil
}

func (a *Amount) scanString(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	*a = Amount(d.Round(0).IntPart())
	return nil
}
