package models

// MetricSpec declares the shape of one supported metric. Ingestion rejects
// observations for metrics that are not registered here, so malformed data
// never reaches the analysis layer.
type MetricSpec struct {
	Name          string
	Sport         string
	Integer       bool // counted stat, fractional values rejected
	AllowNegative bool // yardage stats can go backwards
}

var metricRegistry = map[string]MetricSpec{
	"points":        {Name: "points", Sport: "NBA", Integer: true},
	"rebounds":      {Name: "rebounds", Sport: "NBA", Integer: true},
	"assists":       {Name: "assists", Sport: "NBA", Integer: true},
	"threes":        {Name: "threes", Sport: "NBA", Integer: true},
	"passing_yards": {Name: "passing_yards", Sport: "NFL", Integer: true, AllowNegative: true},
	"rushing_yards": {Name: "rushing_yards", Sport: "NFL", Integer: true, AllowNegative: true},
	"receptions":    {Name: "receptions", Sport: "NFL", Integer: true},
	"strikeouts":    {Name: "strikeouts", Sport: "MLB", Integer: true},
	"hits":          {Name: "hits", Sport: "MLB", Integer: true},
	"runs":          {Name: "runs", Sport: "MLB", Integer: true},
}

// LookupMetric returns the spec for a metric name.
func LookupMetric(name string) (MetricSpec, bool) {
	spec, ok := metricRegistry[name]
	return spec, ok
}
