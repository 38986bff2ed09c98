package portfolio

import (
	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
)

// Asset is an immutable list of cash flows plus a mutable volume scalar.
// Only the volume changes after construction; strategies and the optimizer
// rescale it.
type Asset struct {
	cashFlows []CashFlow
	volume    float64
}

// NewAsset builds an asset from cash flows (copied) and a volume.
func NewAsset(cashFlows []CashFlow, volume float64) *Asset {
	cfs := make([]CashFlow, len(cashFlows))
	copy(cfs, cashFlows)
	return &Asset{cashFlows: cfs, volume: volume}
}

// MarketValue discounts all flows on or after ref and scales by volume.
func (a *Asset) MarketValue(crv curve.Curve, ref date.Date) float64 {
	total := 0.0
	for _, cf := range a.cashFlows {
		if cf.Date >= ref {
			total += cf.Amount * crv.Discount(cf.Date)
		}
	}
	return total * a.volume
}

// CashFlowSum returns the volume-scaled sum of flows in (from, to].
func (a *Asset) CashFlowSum(from, to date.Date) float64 {
	total := 0.0
	for _, cf := range a.cashFlows {
		if cf.OccursBetween(from, to) {
			total += cf.Amount
		}
	}
	return total * a.volume
}

// Volume returns the volume scalar.
func (a *Asset) Volume() float64 {
	return a.volume
}

// SetVolume reassigns the volume scalar.
func (a *Asset) SetVolume(volume float64) {
	a.volume = volume
}

// CashFlows returns the asset's flows. The slice is owned by the asset and
// must not be mutated.
func (a *Asset) CashFlows() []CashFlow {
	return a.cashFlows
}

// Clone returns an asset sharing the immutable flows with an independent
// volume.
func (a *Asset) Clone() *Asset {
	return &Asset{cashFlows: a.cashFlows, volume: a.volume}
}
