package roi

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
)

// StreamROIs holds one week's reported percentage per stream. A nil value
// means no stream data was supplied.
type StreamROIs map[Stream]decimal.Decimal

// ParseStreams converts a name-keyed payload into StreamROIs, rejecting
// unknown stream names.
func ParseStreams(raw map[string]decimal.Decimal) (StreamROIs, error) {
	if raw == nil {
		return nil, nil
	}
	streams := make(StreamROIs, len(raw))
	for name, pct := range raw {
		if !IsStream(name) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown revenue stream %q", name))
		}
		streams[Stream(name)] = pct
	}
	return streams, nil
}

// Calculator blends stream returns into a plan ROI.
type Calculator struct {
	table  Table
	strict bool
}

// NewCalculator builds a calculator over a validated table. With strict set,
// investments in plans missing from the table are rejected instead of being
// priced with the fallback allocation.
func NewCalculator(table Table, strict bool) (*Calculator, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{table: table, strict: strict}, nil
}

// Allocation returns the allocation for planID. The second result is true
// when the fallback allocation was substituted.
func (c *Calculator) Allocation(planID string) (Allocation, bool, error) {
	if alloc, ok := c.table[planID]; ok {
		return alloc, false, nil
	}
	if c.strict {
		return nil, false, apperrors.WithMessage(apperrors.ErrUnknownPlan, fmt.Sprintf("no allocation for plan %q", planID))
	}
	return c.table[FallbackPlan], true, nil
}

// Plans returns the plan IDs that have an allocation.
func (c *Calculator) Plans() []string {
	plans := make([]string, 0, len(c.table))
	for id := range c.table {
		plans = append(plans, id)
	}
	return plans
}

// WeightedROI returns the plan's ROI percentage for the week. Without stream
// data it is the plan's baseline. Otherwise it is the weighted sum of the
// reported stream percentages; streams the week did not report contribute 0.
func (c *Calculator) WeightedROI(planID string, streams StreamROIs, baseline decimal.Decimal) (decimal.Decimal, error) {
	if streams == nil {
		return baseline, nil
	}
	alloc, _, err := c.Allocation(planID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for stream, weight := range alloc {
		if pct, ok := streams[stream]; ok {
			total = total.Add(weight.Mul(pct))
		}
	}
	return total, nil
}
