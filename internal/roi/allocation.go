// Package roi holds the allocation table that blends revenue-stream returns
// into a single per-plan ROI, and the calculator built on it.
package roi

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Stream names a revenue stream whose weekly return is reported by admins.
type Stream string

const (
	Trading      Stream = "trading"
	CopyTrading  Stream = "copy_trading"
	StakingYield Stream = "staking_yield"
	AdsTasks     Stream = "ads_tasks"
	AI           Stream = "ai"
)

// Streams lists every known revenue stream in display order.
var Streams = []Stream{Trading, CopyTrading, StakingYield, AdsTasks, AI}

// FallbackPlan is the allocation used for investments whose plan has no entry.
const FallbackPlan = "starter"

// weightTolerance bounds how far a plan's weights may drift from 1.
var weightTolerance = decimal.New(1, -9)

// IsStream reports whether name is a known revenue stream.
func IsStream(name string) bool {
	for _, s := range Streams {
		if string(s) == name {
			return true
		}
	}
	return false
}

// Allocation maps each stream a plan invests in to its weight in [0, 1].
type Allocation map[Stream]decimal.Decimal

// Sum returns the total weight of the allocation.
func (a Allocation) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, w := range a {
		total = total.Add(w)
	}
	return total
}

// Table maps plan IDs to their allocation.
type Table map[string]Allocation

// DefaultTable returns the built-in allocation table.
func DefaultTable() Table {
	return Table{
		"starter": {
			AdsTasks: decimal.RequireFromString("0.70"),
			Trading:  decimal.RequireFromString("0.30"),
		},
		"pro": {
			Trading:     decimal.RequireFromString("0.60"),
			CopyTrading: decimal.RequireFromString("0.25"),
			AdsTasks:    decimal.RequireFromString("0.15"),
		},
		"elite": {
			Trading:      decimal.RequireFromString("0.40"),
			CopyTrading:  decimal.RequireFromString("0.20"),
			StakingYield: decimal.RequireFromString("0.20"),
			AI:           decimal.RequireFromString("0.20"),
		},
	}
}

// Validate checks that the fallback plan exists and every plan's weights are
// within [0, 1] and sum to 1.
func (t Table) Validate() error {
	if _, ok := t[FallbackPlan]; !ok {
		return fmt.Errorf("allocation table must define the %q plan", FallbackPlan)
	}
	plans := make([]string, 0, len(t))
	for planID := range t {
		plans = append(plans, planID)
	}
	sort.Strings(plans)

	for _, planID := range plans {
		alloc := t[planID]
		if len(alloc) == 0 {
			return fmt.Errorf("plan %q has an empty allocation", planID)
		}
		for stream, w := range alloc {
			if !IsStream(string(stream)) {
				return fmt.Errorf("plan %q: unknown stream %q", planID, stream)
			}
			if w.IsNegative() || w.GreaterThan(decimal.NewFromInt(1)) {
				return fmt.Errorf("plan %q: weight %s for %s is outside [0, 1]", planID, w, stream)
			}
		}
		if alloc.Sum().Sub(decimal.NewFromInt(1)).Abs().GreaterThan(weightTolerance) {
			return fmt.Errorf("plan %q: weights sum to %s, expected 1", planID, alloc.Sum())
		}
	}
	return nil
}

// allocationFile is the YAML layout accepted by LoadTable.
type allocationFile struct {
	Plans map[string]map[string]string `yaml:"plans"`
}

// LoadTable reads an allocation table from a YAML file of the form
//
//	plans:
//	  starter:
//	    ads_tasks: "0.70"
//	    trading: "0.30"
//
// Weights may be written as strings or numbers. The result is validated.
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read allocations file: %w", err)
	}
	return ParseTable(raw)
}

// ParseTable decodes and validates a YAML allocation table.
func ParseTable(raw []byte) (Table, error) {
	var file allocationFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse allocations: %w", err)
	}

	table := make(Table, len(file.Plans))
	for planID, weights := range file.Plans {
		alloc := make(Allocation, len(weights))
		for stream, w := range weights {
			weight, err := decimal.NewFromString(strings.TrimSpace(w))
			if err != nil {
				return nil, fmt.Errorf("plan %q: invalid weight %q for %s: %w", planID, w, stream, err)
			}
			alloc[Stream(stream)] = weight
		}
		table[planID] = alloc
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
