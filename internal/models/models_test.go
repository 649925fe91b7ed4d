package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFromRow(t *testing.T) {
	rec := RecordFromRow(map[string]any{
		"trf_type":        "paid",
		"trf_channel":     "search",
		"utm_campaign":    "summer",
		"device":          "mobile",
		"path":            "/landing",
		"pageviews":       float64(1200),
		"pct_pageviews":   0.4,
		"click_rate":      0.12,
		"engagement_rate": 0.55,
		"bounce_rate":     0.45,
		"p70_lcp":         float64(3020),
		"p70_cls":         0.05,
		"p70_inp":         float64(150),
	})
	assert.Equal(t, "paid", rec.TrfType)
	assert.Equal(t, "summer", rec.UTMCampaign)
	assert.Equal(t, int64(1200), rec.Pageviews)
	assert.Equal(t, 3020.0, rec.P70LCP)
}

func TestRecordFromRowMissingColumns(t *testing.T) {
	rec := RecordFromRow(map[string]any{"utm_campaign": "summer"})
	assert.Equal(t, "summer", rec.UTMCampaign)
	assert.Equal(t, int64(0), rec.Pageviews)
	assert.Equal(t, 0.0, rec.P70LCP)
}

func TestToDTORenamesRawColumns(t *testing.T) {
	dto := ToDTO(ScoredRecord{
		MetricRecord: MetricRecord{
			TrfType:     "paid",
			TrfChannel:  "social",
			UTMCampaign: "summer",
			Path:        "/landing",
			Pageviews:   10,
		},
		LCPScore:     "good",
		CLSScore:     "good",
		INPScore:     "good",
		OverallScore: "good",
	})
	assert.Equal(t, "paid", dto.Type)
	assert.Equal(t, "social", dto.Channel)
	assert.Equal(t, "/landing", dto.URL)
	assert.Equal(t, "good", dto.OverallCWVScore)
}

func TestDTOOmitsUnusedDimensions(t *testing.T) {
	b, err := json.Marshal(TrafficMetrics{Campaign: "summer", Pageviews: 10})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "campaign")
	assert.NotContains(t, m, "type")
	assert.NotContains(t, m, "device")
	assert.NotContains(t, m, "url")
}
