package models

// MetricRecord is a raw aggregation row as the query engine returns it,
// column names included (trf_type, p70_lcp, ...).
type MetricRecord struct {
	TrfType        string
	TrfChannel     string
	UTMCampaign    string
	Device         string
	Path           string
	Pageviews      int64
	PctPageviews   float64
	ClickRate      float64
	EngagementRate float64
	BounceRate     float64
	P70LCP         float64
	P70CLS         float64
	P70INP         float64
}

// ScoredRecord is a MetricRecord with CWV classifications attached.
type ScoredRecord struct {
	MetricRecord
	LCPScore     string
	CLSScore     string
	INPScore     string
	OverallScore string
}

// TrafficMetrics is the public response shape. Dimension fields are
// omitted when the endpoint does not group by them.
type TrafficMetrics struct {
	Type            string  `json:"type,omitempty"`
	Channel         string  `json:"channel,omitempty"`
	Campaign        string  `json:"campaign,omitempty"`
	Device          string  `json:"device,omitempty"`
	URL             string  `json:"url,omitempty"`
	Pageviews       int64   `json:"pageviews"`
	PctPageviews    float64 `json:"pct_pageviews"`
	ClickRate       float64 `json:"click_rate"`
	EngagementRate  float64 `json:"engagement_rate"`
	BounceRate      float64 `json:"bounce_rate"`
	P70LCP          float64 `json:"p70_lcp"`
	P70CLS          float64 `json:"p70_cls"`
	P70INP          float64 `json:"p70_inp"`
	LCPScore        string  `json:"lcp_score"`
	CLSScore        string  `json:"cls_score"`
	INPScore        string  `json:"inp_score"`
	OverallCWVScore string  `json:"overall_cwv_score"`
}

// RecordFromRow projects a flat engine row into a MetricRecord. Engine
// rows arrive JSON-decoded, so numbers are float64.
func RecordFromRow(row map[string]any) MetricRecord {
	return MetricRecord{
		TrfType:        str(row["trf_type"]),
		TrfChannel:     str(row["trf_channel"]),
		UTMCampaign:    str(row["utm_campaign"]),
		Device:         str(row["device"]),
		Path:           str(row["path"]),
		Pageviews:      int64(f64(row["pageviews"])),
		PctPageviews:   f64(row["pct_pageviews"]),
		ClickRate:      f64(row["click_rate"]),
		EngagementRate: f64(row["engagement_rate"]),
		BounceRate:     f64(row["bounce_rate"]),
		P70LCP:         f64(row["p70_lcp"]),
		P70CLS:         f64(row["p70_cls"]),
		P70INP:         f64(row["p70_inp"]),
	}
}

// ToDTO renames raw columns to their public names (trf_type -> type,
// path -> url) in one place instead of inline at every call site.
func ToDTO(r ScoredRecord) TrafficMetrics {
	return TrafficMetrics{
		Type:            r.TrfType,
		Channel:         r.TrfChannel,
		Campaign:        r.UTMCampaign,
		Device:          r.Device,
		URL:             r.Path,
		Pageviews:       r.Pageviews,
		PctPageviews:    r.PctPageviews,
		ClickRate:       r.ClickRate,
		EngagementRate:  r.EngagementRate,
		BounceRate:      r.BounceRate,
		P70LCP:          r.P70LCP,
		P70CLS:          r.P70CLS,
		P70INP:          r.P70INP,
		LCPScore:        r.LCPScore,
		CLSScore:        r.CLSScore,
		INPScore:        r.INPScore,
		OverallCWVScore: r.OverallScore,
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func f64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
