package money

import (
	"strconv"

	"github.com/mExOms/pathfinder/internal/decimalx"
)

func ratioFromPermille(permille int64, scale int32) decimalx.Decimal {
	thousand := decimalx.FromInt(1000, scale)
	return decimalx.FromInt(permille, scale).MustDiv(thousand, scale)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
