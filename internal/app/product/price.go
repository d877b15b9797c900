// Package product holds the rules for product listings shared by products and streams.
package product

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"carrot/internal/pkg/errs"
)

// Price is a whole, non-negative amount. In JSON it accepts a number or a
// string with thousands separators ("1,200" or "1 200").
type Price int64

// ParsePrice normalizes a user-entered price.
func ParsePrice(raw string) (Price, *errs.CustomError) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' {
			return -1
		}
		return r
	}, raw)

	if cleaned == "" {
		return 0, errs.NewError(errs.ErrInvalidPrice)
	}

	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return 0, errs.NewError(errs.ErrInvalidPrice)
		}
	}

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, errs.NewError(errs.ErrInvalidPrice)
	}

	return Price(n), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errs.NewError(errs.ErrInvalidPrice)
		}
		parsed, customErr := ParsePrice(s)
		if customErr != nil {
			return customErr
		}
		*p = parsed
		return nil
	}

	parsed, customErr := ParsePrice(string(data))
	if customErr != nil {
		return customErr
	}
	*p = parsed
	return nil
}

func (p Price) Int64() int64 {
	return int64(p)
}
