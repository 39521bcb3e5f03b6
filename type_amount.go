package balancelog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Amount is a signed quantity of some asset. Positive is a credit, negative
// a debit. It is backed by a decimal so sums are exact and the full input
// precision is preserved.
type Amount struct {
	value decimal.Decimal
}

func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func (a Amount) Equal(b Amount) bool    { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool { return a.value.LessThan(b.value) }
func (a Amount) Cmp(b Amount) int       { return a.value.Cmp(b.value) }
func (a Amount) Sign() int              { return a.value.Sign() }
func (a Amount) Add(b Amount) Amount    { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount    { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Neg() Amount            { return Amount{value: a.value.Neg()} }
func (a Amount) Abs() Amount            { return Amount{value: a.value.Abs()} }
func (a Amount) IsZero() bool           { return a.value.IsZero() }
func (a Amount) IsPositive() bool       { return a.value.IsPositive() }
func (a Amount) IsNegative() bool       { return a.value.IsNegative() }
func (a Amount) String() string         { return a.value.String() }

// SignedString is like String but always carries an explicit sign,
// which reads better in narrative output.
func (a Amount) SignedString() string {
	if a.Sign() >= 0 {
		return "+" + a.value.String()
	}
	return a.value.String()
}

// MarshalJSON implements the json.Marshaler interface for Amount.
func (a Amount) MarshalJSON() ([]byte, error) { return a.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface for Amount.
func (a *Amount) UnmarshalJSON(data []byte) error { return a.value.UnmarshalJSON(data) }

// numericToken matches a cell that is plausibly a number before cleanup:
// optional sign or opening parenthesis, digits mixed with separators.
var numericToken = regexp.MustCompile(`^[-+(−]?[0-9][0-9.,'’\x{00a0} ]*\)?$`)

// europeanDecimal matches numbers written with a decimal comma, either with
// dot-grouped thousands ("1.234,56") or plain ("1234,56").
var (
	europeanGrouped = regexp.MustCompile(`^[-+]?\d{1,3}(\.\d{3})+,\d+$`)
	europeanPlain   = regexp.MustCompile(`^[-+]?\d+,\d+$`)
	commaGrouped    = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}

// ParseAmount converts one raw amount cell into an Amount. It tolerates the
// usual spreadsheet noise: a trailing unit token ("0.12 BTC"), parenthesis
// negatives ("(123.45)"), thousands separators (comma, space, apostrophe),
// the unicode minus sign, and unambiguous European decimal-comma forms
// ("1.234,56"). Anything it cannot resolve to a finite number is an error,
// never a panic; callers typically turn it into a skip diagnostic.
func ParseAmount(cell string) (Amount, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return Amount{}, fmt.Errorf("empty amount")
	}

	// "0.12 BTC": keep the leading token when it already looks numeric and
	// the trailer is a unit, not a space-grouped continuation ("1 234.5").
	if fields := strings.Fields(s); len(fields) > 1 && numericToken.MatchString(fields[0]) && isAlpha(fields[len(fields)-1]) {
		s = fields[0]
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
		neg = true
	}

	s = strings.ReplaceAll(s, "−", "-") // unicode minus
	for _, sep := range []string{"'", "’", " ", " ", " "} {
		s = strings.ReplaceAll(s, sep, "")
	}

	switch {
	case europeanGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case commaGrouped.MatchString(s):
		// "1,234" is formally ambiguous; the grouped reading is what
		// exports actually produce, so it wins over a decimal comma.
		s = strings.ReplaceAll(s, ",", "")
	case europeanPlain.MatchString(s):
		s = strings.Replace(s, ",", ".", 1)
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("not a number: %q", cell)
	}
	if neg {
		value = value.Neg()
	}
	return Amount{value: value}, nil
}
