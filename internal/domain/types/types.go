// Package types contains common types used across the application
package types

// Band classifies the average length of the scheduled blocks.
type Band string

// Known bands.
const (
	BandNone    Band = "none"    // no blocks scheduled
	BandShort   Band = "short"   // average below the optimal range
	BandOptimal Band = "optimal" // average within the optimal range, bounds inclusive
	BandLong    Band = "long"    // average above the optimal range
)

// String implements fmt.Stringer.
func (b Band) String() string { return string(b) }

// Valid reports whether b is one of the known bands.
func (b Band) Valid() bool {
	switch b {
	case BandNone, BandShort, BandOptimal, BandLong:
		return true
	}
	return false
}
