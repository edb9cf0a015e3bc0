package money

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Centavos is a currency amount in integer centavos. Totals are summed in
// integers so a pile of R$ 0,10 pizzas never drifts the way float64 would.
// On the wire the backend speaks JSON numbers in reais ("price": 25.0), so
// the type converts at the boundary and nowhere else.
type Centavos int64

// FromReais converts a whole-real amount, e.g. FromReais(25) == R$ 25,00.
func FromReais(reais int64) Centavos {
	return Centavos(reais * 100)
}

// Parse reads a decimal string such as "25", "25.5" or "25.00" into centavos
// without going through float64. More than two fraction digits are rounded
// half away from zero.
func Parse(s string) (Centavos, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty amount")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	// Exponents and other exotic notations come from JSON encoders we do
	// not control; one-shot float conversion is exact enough for a single
	// value, it is only repeated accumulation that must stay integral.
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse amount %q", s)
		}
		c := Centavos(math.Round(f * 100))
		if neg {
			c = -c
		}
		return c, nil
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse amount %q", s)
	}

	var frac int64
	switch {
	case fracPart == "":
	case len(fracPart) == 1:
		d, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse amount %q", s)
		}
		frac = d * 10
	default:
		d, err := strconv.ParseInt(fracPart[:2], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse amount %q", s)
		}
		frac = d
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			frac++
		}
	}

	c := Centavos(whole*100 + frac)
	if neg {
		c = -c
	}
	return c, nil
}

// MarshalJSON writes the amount as a plain JSON number with two fraction
// digits, matching what the backend expects in order payloads.
func (c Centavos) MarshalJSON() ([]byte, error) {
	return []byte(c.Decimal()), nil
}

func (c *Centavos) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if string(b) == "null" {
		*c = 0
		return nil
	}
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Decimal renders the amount as "25.00" (wire format, dot separator).
func (c Centavos) Decimal() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Format renders the amount the way the pizzaria shows prices: "R$ 1.234,56",
// dot thousands separator and comma decimals.
func (c Centavos) Format() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := strconv.FormatInt(v/100, 10)
	var grouped []string
	for i := len(whole); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		grouped = append([]string{whole[start:i]}, grouped...)
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, strings.Join(grouped, "."), v%100)
}

func (c Centavos) String() string {
	return c.Format()
}
