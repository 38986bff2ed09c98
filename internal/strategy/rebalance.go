package strategy

import (
	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
	"github.com/hjkrause/alm-engine/internal/portfolio"
)

// Rebalance is a composite strategy dispatching on the sign of cash: a
// shortfall goes to the sell strategy, otherwise the buy strategy runs.
type Rebalance struct {
	sell Strategy
	buy  Strategy
}

// NewRebalance creates the composite from a sell and a buy strategy.
func NewRebalance(sell, buy Strategy) *Rebalance {
	return &Rebalance{sell: sell, buy: buy}
}

// Apply delegates to sell when cash < 0, otherwise to buy.
func (r *Rebalance) Apply(
	p *portfolio.Portfolio,
	cash *float64,
	stepStart, stepEnd date.Date,
	crv curve.Curve,
	exec executor.TaskExecutor,
) error {
	if *cash < 0 {
		return r.sell.Apply(p, cash, stepStart, stepEnd, crv, exec)
	}
	return r.buy.Apply(p, cash, stepStart, stepEnd, crv, exec)
}
