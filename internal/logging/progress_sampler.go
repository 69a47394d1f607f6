package logging

import (
	"math"
	"strings"
)

// ProgressSampler decides which progress updates are worth printing: the
// first update of each phase, and any update that reaches a new step of
// bucketSize percent.
type ProgressSampler struct {
	bucketSize float64
	stage      string
	reached    int
}

// NewProgressSampler returns a sampler with the given step (default 5%).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	s := &ProgressSampler{bucketSize: bucketSize}
	if s.bucketSize <= 0 {
		s.bucketSize = 5
	}
	s.Reset()
	return s
}

// ShouldLog reports whether an update at percent within stage should be
// shown. A negative percent is unknown and never opens a new step; a blank
// stage keeps the current one. A nil sampler shows everything.
func (s *ProgressSampler) ShouldLog(percent float64, stage string) bool {
	if s == nil {
		return true
	}
	changed := false
	if stage = strings.TrimSpace(stage); stage != "" && stage != s.stage {
		s.stage, s.reached = stage, -1
		changed = true
	}
	if percent < 0 {
		return changed
	}
	step := int(math.Min(percent, 100) / s.bucketSize)
	if step <= s.reached {
		return changed
	}
	s.reached = step
	return true
}

// Reset forgets the current phase and step.
func (s *ProgressSampler) Reset() {
	if s != nil {
		s.stage, s.reached = "", -1
	}
}
