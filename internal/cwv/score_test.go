package cwv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siteglow/trafficlens/internal/models"
)

func TestClassifyBoundaries(t *testing.T) {
	th := DefaultThresholds()

	// Exactly at GOOD is good, exactly at NEEDS_IMPROVEMENT is needs
	// improvement, one unit above is poor.
	assert.Equal(t, Good, Classify(th.LCPGood, th.LCPGood, th.LCPNeedsImprovement))
	assert.Equal(t, NeedsImprovement, Classify(th.LCPNeedsImprovement, th.LCPGood, th.LCPNeedsImprovement))
	assert.Equal(t, Poor, Classify(th.LCPNeedsImprovement+1, th.LCPGood, th.LCPNeedsImprovement))

	assert.Equal(t, Good, Classify(200, th.INPGood, th.INPNeedsImprovement))
	assert.Equal(t, NeedsImprovement, Classify(500, th.INPGood, th.INPNeedsImprovement))
	assert.Equal(t, Poor, Classify(501, th.INPGood, th.INPNeedsImprovement))

	assert.Equal(t, Good, Classify(0.1, th.CLSGood, th.CLSNeedsImprovement))
	assert.Equal(t, NeedsImprovement, Classify(0.25, th.CLSGood, th.CLSNeedsImprovement))
	assert.Equal(t, Poor, Classify(0.26, th.CLSGood, th.CLSNeedsImprovement))
}

func TestScoreOverallIsWorst(t *testing.T) {
	th := DefaultThresholds()

	allGood := Score(models.MetricRecord{P70LCP: 1200, P70CLS: 0.05, P70INP: 150}, th)
	assert.Equal(t, Good, allGood.OverallScore)

	onePoor := Score(models.MetricRecord{P70LCP: 1200, P70CLS: 0.05, P70INP: 900}, th)
	assert.Equal(t, Good, onePoor.LCPScore)
	assert.Equal(t, Poor, onePoor.INPScore)
	assert.Equal(t, Poor, onePoor.OverallScore)

	mixed := Score(models.MetricRecord{P70LCP: 3020, P70CLS: 0.05, P70INP: 150}, th)
	assert.Equal(t, NeedsImprovement, mixed.LCPScore)
	assert.Equal(t, NeedsImprovement, mixed.OverallScore)
}

func TestScoreOverriddenThresholds(t *testing.T) {
	th := Thresholds{
		LCPGood: 1000, LCPNeedsImprovement: 2000,
		INPGood: 100, INPNeedsImprovement: 300,
		CLSGood: 0.05, CLSNeedsImprovement: 0.1,
	}
	s := Score(models.MetricRecord{P70LCP: 1500, P70CLS: 0.04, P70INP: 90}, th)
	assert.Equal(t, NeedsImprovement, s.LCPScore)
	assert.Equal(t, Good, s.CLSScore)
	assert.Equal(t, Good, s.INPScore)
	assert.Equal(t, NeedsImprovement, s.OverallScore)
}
