// Package scoring computes block efficiency and daily productivity from a
// schedule summary. Every function here is pure: no state, no clock, no
// allocation.
package scoring

import (
	"math"

	"github.com/okian/timeblock/internal/domain/model"
	"github.com/okian/timeblock/internal/domain/types"
)

// Scoring constants.
const (
	OptimalMinBlockMinutes = 45.0  // lower bound of the optimal band, inclusive
	OptimalMaxBlockMinutes = 90.0  // upper bound of the optimal band, inclusive
	LongBlockFloor         = 0.5   // efficiency never drops below this for long blocks
	BaselineWorkdayMinutes = 480.0 // 8 hours scores 100 before bonus and efficiency
	BonusPerBlock          = 2.0
	MaxPlanningBonus       = 20.0
	MaxProductivity        = 100.0
)

// Efficiency returns how close the average block length is to the optimal
// band, in [0, 1]. Zero blocks score zero. Negative inputs are outside the
// domain and also score zero.
func Efficiency(blockCount, totalMinutes int) float64 {
	if blockCount <= 0 || totalMinutes < 0 {
		return 0.0
	}
	return efficiencyFor(averageBlockMinutes(blockCount, totalMinutes))
}

// Productivity returns the productivity percentage in [0, 100]:
// (base + bonus) * efficiency, capped at 100. Zero blocks score zero
// regardless of minutes.
func Productivity(blockCount, totalMinutes int) float64 {
	if blockCount <= 0 || totalMinutes < 0 {
		return 0.0
	}
	eff := Efficiency(blockCount, totalMinutes)
	return math.Min(MaxProductivity, (baseScore(totalMinutes)+planningBonus(blockCount))*eff)
}

// Classify reports which band the average block length falls into.
func Classify(blockCount, totalMinutes int) types.Band {
	if blockCount <= 0 || totalMinutes < 0 {
		return types.BandNone
	}
	avg := averageBlockMinutes(blockCount, totalMinutes)
	switch {
	case avg < OptimalMinBlockMinutes:
		return types.BandShort
	case avg > OptimalMaxBlockMinutes:
		return types.BandLong
	default:
		return types.BandOptimal
	}
}

// Evaluate computes the full breakdown for a sample. Its Efficiency and
// Productivity fields always equal Efficiency and Productivity for the same
// inputs.
func Evaluate(s model.ScheduleSample) model.Breakdown {
	b := model.Breakdown{
		BlockCount:   s.BlockCount,
		TotalMinutes: s.TotalMinutes,
		Band:         Classify(s.BlockCount, s.TotalMinutes),
	}
	if b.Band == types.BandNone {
		return b
	}

	b.AverageBlockMinutes = averageBlockMinutes(s.BlockCount, s.TotalMinutes)
	b.BaseScore = baseScore(s.TotalMinutes)
	b.PlanningBonus = planningBonus(s.BlockCount)
	b.Efficiency = Efficiency(s.BlockCount, s.TotalMinutes)
	b.RawScore = (b.BaseScore + b.PlanningBonus) * b.Efficiency
	b.Productivity = math.Min(MaxProductivity, b.RawScore)
	b.Capped = b.RawScore > MaxProductivity
	return b
}

// averageBlockMinutes requires blockCount > 0.
func averageBlockMinutes(blockCount, totalMinutes int) float64 {
	return float64(totalMinutes) / float64(blockCount)
}

func efficiencyFor(avg float64) float64 {
	switch {
	case avg >= OptimalMinBlockMinutes && avg <= OptimalMaxBlockMinutes:
		return 1.0
	case avg < OptimalMinBlockMinutes:
		return avg / OptimalMinBlockMinutes
	default:
		return math.Max(LongBlockFloor, OptimalMaxBlockMinutes/avg)
	}
}

func baseScore(totalMinutes int) float64 {
	return (float64(totalMinutes) / BaselineWorkdayMinutes) * 100.0
}

func planningBonus(blockCount int) float64 {
	return math.Min(MaxPlanningBonus, float64(blockCount)*BonusPerBlock)
}
