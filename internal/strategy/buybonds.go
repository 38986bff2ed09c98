package strategy

import (
	"math"

	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
	"github.com/hjkrause/alm-engine/internal/portfolio"
)

// allocationEps is the threshold below which allocations are skipped and
// residual cash is snapped to zero.
const allocationEps = 1e-6

// BondTemplate defines one reinvestment target: a fraction of available
// cash, a fixed coupon and a tenor.
type BondTemplate struct {
	Proportion float64
	Coupon     float64
	Tenor      date.Duration
}

// BuyBonds reinvests positive cash into fixed-rate bonds according to an
// ordered list of templates. Proportions need not sum to 1; any residual
// is retained as cash.
type BuyBonds struct {
	templates []BondTemplate
	config    portfolio.BondConfig
}

// NewBuyBonds creates the strategy with the given templates.
func NewBuyBonds(templates []BondTemplate, config portfolio.BondConfig) *BuyBonds {
	return &BuyBonds{templates: templates, config: config}
}

// Apply issues one bond per template at stepStart, maturing at
// stepStart + tenor, with the template's share of cash as notional.
func (b *BuyBonds) Apply(
	p *portfolio.Portfolio,
	cash *float64,
	stepStart, stepEnd date.Date,
	crv curve.Curve,
	exec executor.TaskExecutor,
) error {
	if *cash <= 0 {
		return nil
	}

	available := *cash
	for _, tmpl := range b.templates {
		amount := available * tmpl.Proportion
		if amount < allocationEps {
			continue
		}

		flows := portfolio.FixedRateBond(
			stepStart,
			stepStart.Add(tmpl.Tenor),
			tmpl.Coupon,
			amount,
			b.config,
		)
		p.Add(portfolio.NewAsset(flows, 1.0))
		*cash -= amount
	}

	// Snap floating-point residue to zero.
	if math.Abs(*cash) < allocationEps {
		*cash = 0
	}
	return nil
}
