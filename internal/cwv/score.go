// Package cwv classifies Core Web Vitals percentiles against the
// standard web-vitals boundaries (overridable via configuration).
package cwv

import "github.com/siteglow/trafficlens/internal/models"

const (
	Good             = "good"
	NeedsImprovement = "needs improvement"
	Poor             = "poor"
)

// Thresholds holds the good / needs-improvement boundaries per metric.
// LCP and INP are milliseconds, CLS is unitless.
type Thresholds struct {
	LCPGood             float64
	LCPNeedsImprovement float64
	INPGood             float64
	INPNeedsImprovement float64
	CLSGood             float64
	CLSNeedsImprovement float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		LCPGood:             2500,
		LCPNeedsImprovement: 4000,
		INPGood:             200,
		INPNeedsImprovement: 500,
		CLSGood:             0.1,
		CLSNeedsImprovement: 0.25,
	}
}

// Classify rates a single metric value. Boundary values count toward the
// better bucket: exactly GOOD is good, exactly NEEDS_IMPROVEMENT is
// needs improvement.
func Classify(value, good, needsImprovement float64) string {
	switch {
	case value <= good:
		return Good
	case value <= needsImprovement:
		return NeedsImprovement
	default:
		return Poor
	}
}

// Score attaches per-metric ratings and the overall score, which is the
// worst of the three (any poor makes the record poor).
func Score(rec models.MetricRecord, t Thresholds) models.ScoredRecord {
	s := models.ScoredRecord{
		MetricRecord: rec,
		LCPScore:     Classify(rec.P70LCP, t.LCPGood, t.LCPNeedsImprovement),
		CLSScore:     Classify(rec.P70CLS, t.CLSGood, t.CLSNeedsImprovement),
		INPScore:     Classify(rec.P70INP, t.INPGood, t.INPNeedsImprovement),
	}
	s.OverallScore = worst(s.LCPScore, s.CLSScore, s.INPScore)
	return s
}

var rank = map[string]int{Good: 0, NeedsImprovement: 1, Poor: 2}

func worst(scores ...string) string {
	out := Good
	for _, s := range scores {
		if rank[s] > rank[out] {
			out = s
		}
	}
	return out
}
