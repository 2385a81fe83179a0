/*
DESCRIPTION
  stats.go accumulates diagnostics for a single Deblock pass: how many
  edges were filtered at each Strength, how many macroblocks were
  skipped outright, and the mean/stddev of the change the filter made
  to the Q-side edge sample (q0) of each filtered luma and chroma line,
  computed with gonum.org/v1/gonum/stat over the accumulated float64
  delta population.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

import "gonum.org/v1/gonum/stat"

// Stats summarizes one Picture.Deblock call. It is purely observational
// — Deblock never consults it to change behavior — so callers and tests
// can assert aggregate properties of a pass without re-deriving them.
type Stats struct {
	// EdgesByStrength[s] counts luma edge sample positions (not edges)
	// whose boundary strength is s, for s in 0..4; positions with s == 0
	// are counted but not filtered.
	EdgesByStrength [5]int

	// MbsSkipped counts macroblocks skipped via LFDisableIdc == 1.
	MbsSkipped int

	deltas []float64
}

func newStats() Stats {
	return Stats{}
}

func (s *Stats) recordStrength(strength uint8) {
	s.EdgesByStrength[strength]++
}

// recordDelta folds one |output - input| sample difference into the
// running delta population used by MeanDelta/StdDevDelta.
func (s *Stats) recordDelta(before, after int) {
	s.deltas = append(s.deltas, float64(absInt(after-before)))
}

// MeanDelta returns the mean absolute per-sample change across every
// filtered sample recorded this pass, or 0 if none were filtered.
func (s *Stats) MeanDelta() float64 {
	if len(s.deltas) == 0 {
		return 0
	}
	return stat.Mean(s.deltas, nil)
}

// StdDevDelta returns the standard deviation of the per-sample change
// across every filtered sample recorded this pass, or 0 if fewer than
// two samples were filtered.
func (s *Stats) StdDevDelta() float64 {
	if len(s.deltas) < 2 {
		return 0
	}
	return stat.StdDev(s.deltas, nil)
}

// TotalFiltered returns the number of samples filtered at any nonzero
// strength this pass.
func (s *Stats) TotalFiltered() int {
	total := 0
	for strength := 1; strength <= 4; strength++ {
		total += s.EdgesByStrength[strength]
	}
	return total
}
