package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CalculateRange returns the highest and lowest price in the window.
func CalculateRange(prices []decimal.Decimal) (high, low decimal.Decimal, err error) {
	if len(prices) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no prices provided")
	}
	return decimal.Max(prices[0], prices[1:]...), decimal.Min(prices[0], prices[1:]...), nil
}

// CalculatePosition returns where current sits within [low, high] (0.0~1.0).
func CalculatePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
