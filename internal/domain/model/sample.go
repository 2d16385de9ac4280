// Package model contains domain models passed between layers.
package model

import (
	"fmt"

	"github.com/okian/timeblock/internal/domain/types"
)

// ScheduleSample is one evaluation request: how many blocks were scheduled
// and how many minutes they add up to.
type ScheduleSample struct {
	BlockCount   int `json:"block_count" yaml:"block_count"`
	TotalMinutes int `json:"total_minutes" yaml:"total_minutes"`
}

// Validate rejects negative fields.
func (s ScheduleSample) Validate() error {
	if s.BlockCount < 0 {
		return fmt.Errorf("%w (got %d)", ErrNegativeBlockCount, s.BlockCount)
	}
	if s.TotalMinutes < 0 {
		return fmt.Errorf("%w (got %d)", ErrNegativeMinutes, s.TotalMinutes)
	}
	return nil
}

// Breakdown carries every term of a productivity evaluation.
type Breakdown struct {
	BlockCount          int        `json:"block_count" yaml:"block_count"`
	TotalMinutes        int        `json:"total_minutes" yaml:"total_minutes"`
	AverageBlockMinutes float64    `json:"average_block_minutes" yaml:"average_block_minutes"`
	Band                types.Band `json:"band" yaml:"band"`

	// BaseScore measures minutes against the 480 minute workday.
	BaseScore float64 `json:"base_score" yaml:"base_score"`
	// PlanningBonus is 2 points per block, capped at 20.
	PlanningBonus float64 `json:"planning_bonus" yaml:"planning_bonus"`
	Efficiency    float64 `json:"efficiency" yaml:"efficiency"`
	// RawScore is (base + bonus) * efficiency before the ceiling.
	RawScore     float64 `json:"raw_score" yaml:"raw_score"`
	Productivity float64 `json:"productivity" yaml:"productivity"`
	// Capped is set when RawScore exceeded the 100 ceiling.
	Capped bool `json:"capped" yaml:"capped"`
}
