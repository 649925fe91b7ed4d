package cache

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteglow/trafficlens/internal/models"
	"github.com/siteglow/trafficlens/internal/timewin"
)

func TestKeyDeterministic(t *testing.T) {
	w, err := timewin.Resolve(2024, 23)
	require.NoError(t, err)

	a := Key("site-1", "campaign", w, map[string]string{"utm_campaign": "summer"})
	b := Key("site-1", "campaign", w, map[string]string{"utm_campaign": "summer"})
	assert.Equal(t, a, b)
	assert.Equal(t, "paid-traffic/site-1/campaign/2024/w23/utm_campaign=summer.json.gz", a)
}

func TestKeyDistinctPerParameter(t *testing.T) {
	w23, err := timewin.Resolve(2024, 23)
	require.NoError(t, err)
	w24, err := timewin.Resolve(2024, 24)
	require.NoError(t, err)

	base := Key("site-1", "campaign", w23, nil)
	for _, other := range []string{
		Key("site-2", "campaign", w23, nil),
		Key("site-1", "campaign-url", w23, nil),
		Key("site-1", "campaign", w24, nil),
		Key("site-1", "campaign", w23, map[string]string{"utm_campaign": "summer"}),
	} {
		assert.NotEqual(t, base, other)
	}
}

func TestKeyFilterOrderIrrelevant(t *testing.T) {
	w, err := timewin.Resolve(2024, 23)
	require.NoError(t, err)

	a := Key("s", "campaign-url", w, map[string]string{"utm_campaign": "x", "device": "mobile"})
	b := Key("s", "campaign-url", w, map[string]string{"device": "mobile", "utm_campaign": "x"})
	assert.Equal(t, a, b)
}

func TestCodecRoundTrip(t *testing.T) {
	in := []models.TrafficMetrics{
		{Campaign: "summer", Pageviews: 1200, P70LCP: 3020, OverallCWVScore: "needs improvement"},
		{Campaign: "winter", Pageviews: 300, P70LCP: 5000, OverallCWVScore: "poor"},
	}
	b, err := Encode(in)
	require.NoError(t, err)

	var out []models.TrafficMetrics
	require.NoError(t, Decode(b, &out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCodecEmptySlice(t *testing.T) {
	b, err := Encode([]models.TrafficMetrics{})
	require.NoError(t, err)

	var out []models.TrafficMetrics
	require.NoError(t, Decode(b, &out))
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var out []models.TrafficMetrics
	assert.Error(t, Decode([]byte("not gzip"), &out))
}
