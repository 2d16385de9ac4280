package loadtest

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/timeblock/internal/domain/model"
)

// Sample shapes. The mix leans on realistic days and keeps a few edge
// cases in every run.
const (
	caseOptimalDay = iota
	caseShortBlocks
	caseLongBlocks
	caseOverbooked
	caseNoBlocks
	caseNegative
	caseWideRange
	caseCount
)

const (
	maxBlocks  = 24
	maxMinutes = 24 * 60
)

// randInt returns a uniform int in [0, n) from crypto/rand.
func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// between returns a uniform int in [lo, hi].
func between(lo, hi int) int {
	return lo + randInt(hi-lo+1)
}

// generateSamples creates n samples with unique IDs.
func generateSamples(n int) []Sample {
	out := make([]Sample, n)
	for i := range out {
		out[i] = Sample{ID: uuid.New().String(), ScheduleSample: generateSingleSample(randInt(caseCount))}
	}
	return out
}

func generateSingleSample(kind int) model.ScheduleSample {
	var b, m int
	switch kind {
	case caseOptimalDay:
		// 45 to 90 minute blocks
		b = between(1, 10)
		m = b * between(45, 90)
	case caseShortBlocks:
		b = between(1, maxBlocks)
		m = b * between(0, 44)
	case caseLongBlocks:
		b = between(1, 4)
		m = b * between(91, 480)
	case caseOverbooked:
		// enough minutes and blocks to hit the 100 ceiling
		b = between(8, 16)
		m = b * between(60, 90)
	case caseNoBlocks:
		m = between(0, maxMinutes)
	case caseNegative:
		b = -between(1, maxBlocks)
		m = between(0, maxMinutes)
	default:
		b = between(0, maxBlocks)
		m = between(0, maxMinutes)
	}
	return model.ScheduleSample{BlockCount: b, TotalMinutes: m}
}
