package portfolio

import (
	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
)

// Portfolio is an ordered collection of assets. Insertion order is
// preserved; per-asset pricing is independent and may run in parallel.
type Portfolio struct {
	assets []*Asset
}

// New creates a portfolio from the given assets.
func New(assets ...*Asset) *Portfolio {
	return &Portfolio{assets: assets}
}

// Add appends an asset.
func (p *Portfolio) Add(a *Asset) {
	p.assets = append(p.assets, a)
}

// Assets returns the ordered asset slice.
func (p *Portfolio) Assets() []*Asset {
	return p.assets
}

// Len returns the number of assets.
func (p *Portfolio) Len() int {
	return len(p.assets)
}

// Clone deep-copies the portfolio so projections can mutate volumes
// without sharing state across scenarios.
func (p *Portfolio) Clone() *Portfolio {
	assets := make([]*Asset, len(p.assets))
	for i, a := range p.assets {
		assets[i] = a.Clone()
	}
	return &Portfolio{assets: assets}
}

// MarketValue prices every asset as one executor task and sums the
// results. Each task writes into its own slot and the slots are summed
// sequentially after the join, so the result does not depend on task
// completion order.
func (p *Portfolio) MarketValue(crv curve.Curve, ref date.Date, exec executor.TaskExecutor) (float64, error) {
	slots := make([]float64, len(p.assets))
	tasks := make([]executor.Task, len(p.assets))
	for i, a := range p.assets {
		i, a := i, a
		tasks[i] = func() {
			slots[i] = a.MarketValue(crv, ref)
		}
	}
	if err := exec.SubmitAndWait(tasks); err != nil {
		return 0, err
	}

	total := 0.0
	for _, v := range slots {
		total += v
	}
	return total, nil
}

// CashFlowSum aggregates volume-scaled flows in (from, to] with the same
// fan-out-then-sequential-sum pattern as MarketValue.
func (p *Portfolio) CashFlowSum(from, to date.Date, exec executor.TaskExecutor) (float64, error) {
	slots := make([]float64, len(p.assets))
	tasks := make([]executor.Task, len(p.assets))
	for i, a := range p.assets {
		i, a := i, a
		tasks[i] = func() {
			slots[i] = a.CashFlowSum(from, to)
		}
	}
	if err := exec.SubmitAndWait(tasks); err != nil {
		return 0, err
	}

	total := 0.0
	for _, v := range slots {
		total += v
	}
	return total, nil
}
