// Package strategy translates strategy descriptors into option legs.
package strategy

import (
	"time"

	"riskgraph/internal/errors"
	"riskgraph/internal/models"
)

// Butterfly builds the three legs of a 1:-2:1 butterfly centered at
// strike with equally spaced wings.
func Butterfly(strike, width float64, side models.OptionRight, expiration time.Time) ([]models.StrategyLeg, error) {
	if width < 0 {
		return nil, errors.NewInvalidStrategyError(string(models.StrategyButterfly), "width", width, "must be non-negative")
	}
	return []models.StrategyLeg{
		{Strike: strike - width, Right: side, Quantity: 1, Expiration: expiration},
		{Strike: strike, Right: side, Quantity: -2, Expiration: expiration},
		{Strike: strike + width, Right: side, Quantity: 1, Expiration: expiration},
	}, nil
}

// Vertical builds the two legs of a 1:-1 vertical spread. The short leg
// sits above the long strike for calls and below it for puts.
func Vertical(strike, width float64, side models.OptionRight, expiration time.Time) ([]models.StrategyLeg, error) {
	if width < 0 {
		return nil, errors.NewInvalidStrategyError(string(models.StrategyVertical), "width", width, "must be non-negative")
	}
	short := strike + width
	if side == models.RightPut {
		short = strike - width
	}
	return []models.StrategyLeg{
		{Strike: strike, Right: side, Quantity: 1, Expiration: expiration},
		{Strike: short, Right: side, Quantity: -1, Expiration: expiration},
	}, nil
}

// Single builds a lone long option leg. Width does not apply and is
// treated as zero.
func Single(strike float64, side models.OptionRight, expiration time.Time) ([]models.StrategyLeg, error) {
	return []models.StrategyLeg{
		{Strike: strike, Right: side, Quantity: 1, Expiration: expiration},
	}, nil
}

// Build translates a strategy descriptor into its legs.
func Build(s models.Strategy) ([]models.StrategyLeg, error) {
	switch s.Type {
	case models.StrategyButterfly:
		return Butterfly(s.Strike, s.Width, s.Side, s.Expiration)
	case models.StrategyVertical:
		return Vertical(s.Strike, s.Width, s.Side, s.Expiration)
	case models.StrategySingle:
		return Single(s.Strike, s.Side, s.Expiration)
	default:
		return nil, errors.NewInvalidStrategyError(string(s.Type), "type", s.Type, "unknown strategy type")
	}
}

// Validate checks that legs match the fixed quantity ratio of the
// strategy type. Descriptors that fail validation block the save.
func Validate(s models.Strategy, legs []models.StrategyLeg) error {
	ratio := s.Type.LegRatio()
	if ratio == nil {
		return errors.NewInvalidStrategyError(string(s.Type), "type", s.Type, "unknown strategy type")
	}
	if len(legs) != len(ratio) {
		return errors.NewInvalidStrategyError(string(s.Type), "legs", len(legs), "wrong leg count")
	}
	for i, leg := range legs {
		if leg.Quantity != ratio[i] {
			return errors.NewInvalidStrategyError(string(s.Type), "quantity", leg.Quantity, "does not match strategy ratio")
		}
	}
	return nil
}
