package money

import (
	"strings"

	"github.com/mExOms/pathfinder/internal/perr"
)

// Currency is a case-normalized asset symbol of 3-12 letters.
type Currency string

// NormalizeCurrency upper-cases and trims c, validating the 3-12 letter
// symbol shape. Empty or malformed input is an input error, raised
// eagerly rather than deferred to first use.
func NormalizeCurrency(c string) (Currency, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(c))
	if len(trimmed) < 3 || len(trimmed) > 12 {
		return "", perr.Inputf("money.NormalizeCurrency", "currency %q must be 3-12 letters", c)
	}
	for _, r := range trimmed {
		if r < 'A' || r > 'Z' {
			return "", perr.Inputf("money.NormalizeCurrency", "currency %q must contain only letters", c)
		}
	}
	return Currency(trimmed), nil
}

func (c Currency) String() string { return string(c) }
