package strategy

import (
	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
	"github.com/hjkrause/alm-engine/internal/portfolio"
)

// SellProRata covers a cash shortfall by scaling every asset's volume down
// by the same factor, preserving relative weights. If a full liquidation
// still cannot cover the shortfall, everything is sold and the residual
// shortfall remains in cash.
type SellProRata struct{}

// NewSellProRata creates the strategy.
func NewSellProRata() *SellProRata {
	return &SellProRata{}
}

// Apply scales volumes by clamp(1 - need/mv, 0, 1) when cash is negative.
func (s *SellProRata) Apply(
	p *portfolio.Portfolio,
	cash *float64,
	stepStart, stepEnd date.Date,
	crv curve.Curve,
	exec executor.TaskExecutor,
) error {
	if *cash >= 0 {
		return nil
	}

	need := -*cash
	totalMV, err := p.MarketValue(crv, stepStart, exec)
	if err != nil {
		return err
	}
	if totalMV <= 0 {
		return nil
	}

	scalar := 1.0 - need/totalMV
	if scalar < 0 {
		scalar = 0
	} else if scalar > 1 {
		scalar = 1
	}

	for _, a := range p.Assets() {
		a.SetVolume(a.Volume() * scalar)
	}

	// Full liquidation leaves the uncovered shortfall in cash; otherwise
	// the sale proceeds exactly cover the need.
	if scalar == 0 {
		*cash += totalMV
	} else {
		*cash = 0
	}
	return nil
}
