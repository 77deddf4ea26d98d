// Package utils provides shared utility functions.
package utils

import "fmt"

// FormatPrice formats a price with two decimal places.
func FormatPrice(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// FormatPnL formats a signed dollar P&L with sign.
func FormatPnL(value float64) string {
	if value >= 0 {
		return fmt.Sprintf("+$%.2f", value)
	}
	return fmt.Sprintf("-$%.2f", -value)
}

// FormatPercent formats a ratio in [0, 1] as a percentage.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}
