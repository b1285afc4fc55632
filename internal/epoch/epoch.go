// Package epoch provides a fixed-length epoch oracle.
//
// Epoch boundaries belong to the key derivation module. This implementation
// partitions UTC time into consecutive epochs of equal length counted from the
// Unix epoch, which matches the derivation scheme for any length dividing a day.
package epoch

import (
	"time"

	"github.com/fr0stylo/proxitrace/internal/app/ports"
)

// DefaultLength is the default epoch length.
const DefaultLength = 15 * time.Minute

// Fixed is an epoch oracle with a constant epoch length.
type Fixed struct {
	length time.Duration
}

var _ ports.EpochOracle = Fixed{}

// NewFixed returns an oracle for the given epoch length. Non-positive lengths fall back
// to DefaultLength.
func NewFixed(length time.Duration) Fixed {
	if length <= 0 {
		length = DefaultLength
	}
	return Fixed{length: length}
}

// EpochStart returns the start of the epoch containing t.
func (f Fixed) EpochStart(t time.Time) time.Time {
	length := f.length
	if length <= 0 {
		length = DefaultLength
	}
	return FloorUnix(t, length)
}

// FloorUnix rounds t down to a multiple of step since the Unix epoch, in UTC.
func FloorUnix(t time.Time, step time.Duration) time.Time {
	if step <= 0 {
		return t.UTC()
	}
	ns := t.UnixNano()
	rem := ns % int64(step)
	if rem < 0 {
		rem += int64(step)
	}
	return time.Unix(0, ns-rem).UTC()
}
