package models

import "time"

// OptionRight represents the right of an option contract.
type OptionRight string

const (
	RightCall OptionRight = "CALL"
	RightPut  OptionRight = "PUT"
)

// StrategyType represents the shape of an option strategy.
type StrategyType string

const (
	StrategyButterfly StrategyType = "butterfly"
	StrategyVertical  StrategyType = "vertical"
	StrategySingle    StrategyType = "single"
)

// StrategyLeg is one option position within a strategy. Legs are owned
// exclusively by the Strategy that produced them and are never shared.
type StrategyLeg struct {
	Strike     float64
	Right      OptionRight
	Quantity   int // signed: positive long, negative short
	Expiration time.Time
}

// Strategy is a user-authored option strategy descriptor. It is replaced
// wholesale on edit; payoff computation never mutates it.
type Strategy struct {
	ID         string
	Type       StrategyType
	Side       OptionRight
	Strike     float64
	Width      float64
	DTE        int
	Expiration time.Time
	Debit      float64
	Visible    bool
}

// LegRatio returns the fixed per-leg quantity ratio for a strategy type.
func (t StrategyType) LegRatio() []int {
	switch t {
	case StrategyButterfly:
		return []int{1, -2, 1}
	case StrategyVertical:
		return []int{1, -1}
	case StrategySingle:
		return []int{1}
	default:
		return nil
	}
}
