package models

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is a fixed-point monetary amount with two decimal places, kept
// as cents so arithmetic and comparisons never touch floats. The column
// is decimal(6,2), so values range from 0.00 to 9999.99.
type Price int64

const maxPriceCents = 999999

// ParsePrice parses a decimal string such as "3.33", "5" or "12.5".
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("price is empty")
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	whole, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	var frac uint64
	if hasFrac {
		if len(fracPart) == 0 || len(fracPart) > 2 {
			return 0, fmt.Errorf("price %q must have at most two decimal places", s)
		}
		frac, err = strconv.ParseUint(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q", s)
		}
		if len(fracPart) == 1 {
			frac *= 10
		}
	}

	cents := whole*100 + frac
	if cents > maxPriceCents {
		return 0, fmt.Errorf("price %q exceeds the allowed range", s)
	}
	return Price(cents), nil
}

func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", p/100, p%100)
}

// MarshalJSON renders the amount as a plain JSON number with two
// decimal places, e.g. 3.33.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner
func (p *Price) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = 0
		return nil
	case int64:
		*p = Price(v * 100)
		return nil
	case float64:
		*p = Price(math.Round(v * 100))
		return nil
	case []byte:
		parsed, err := ParsePrice(string(v))
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case string:
		parsed, err := ParsePrice(v)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Price", value)
	}
}

// GormDataType tells the migrator which column type to use
func (Price) GormDataType() string {
	return "decimal(6,2)"
}
