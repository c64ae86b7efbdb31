package domain

// Metric identifies one per-day measurement tracked for an account's content
// or profile.
type Metric string

const (
	MetricImpressions    Metric = "impressions"
	MetricUniqueReach    Metric = "unique_reach"
	MetricReactions      Metric = "reactions"
	MetricComments       Metric = "comments"
	MetricReposts        Metric = "reposts"
	MetricSaves          Metric = "saves"
	MetricSends          Metric = "sends"
	MetricEngagements    Metric = "engagements"
	MetricEngagementRate Metric = "engagement_rate"

	// Profile-level metrics are served by a separate pipeline with the same
	// output shape; this package only classifies them.
	MetricFollowers    Metric = "followers"
	MetricProfileViews Metric = "profile_views"
)

// postMetricColumns maps each post-level metric to the post_daily_metrics
// column holding its daily gained value. The column is resolved exactly once,
// at the query boundary; nothing downstream re-derives field names.
var postMetricColumns = map[Metric]string{
	MetricImpressions:    "impressions_gained",
	MetricUniqueReach:    "unique_reach_gained",
	MetricReactions:      "reactions_gained",
	MetricComments:       "comments_gained",
	MetricReposts:        "reposts_gained",
	MetricSaves:          "saves_gained",
	MetricSends:          "sends_gained",
	MetricEngagements:    "engagements_gained",
	MetricEngagementRate: "engagement_rate",
}

var profileMetrics = map[Metric]bool{
	MetricFollowers:    true,
	MetricProfileViews: true,
}

// ParseMetric validates a raw metric name from the request boundary.
func ParseMetric(s string) (Metric, bool) {
	m := Metric(s)
	if _, ok := postMetricColumns[m]; ok {
		return m, true
	}
	if profileMetrics[m] {
		return m, true
	}
	return "", false
}

// Column returns the raw-row column backing a post-level metric.
func (m Metric) Column() (string, bool) {
	col, ok := postMetricColumns[m]
	return col, ok
}

// IsProfile reports whether the metric belongs to the profile subsystem
// rather than to per-post daily rows.
func (m Metric) IsProfile() bool {
	return profileMetrics[m]
}

// IsRate reports whether the metric is a ratio rather than an additive count.
// A rate summed across posts and days is not meaningful, so Summarize reports
// its average as the total. Known product quirk; do not extend to new metrics.
func (m Metric) IsRate() bool {
	return m == MetricEngagementRate
}

// OverviewMetrics is the default fan-out set for "all" mode dashboards.
var OverviewMetrics = []Metric{
	MetricImpressions,
	MetricReactions,
	MetricComments,
	MetricReposts,
	MetricEngagements,
}

// PrimaryOverviewMetric is the series consumers chart when they expect a
// single default series out of an overview result.
const PrimaryOverviewMetric = MetricImpressions

// ContentType restricts aggregation to content items of one category.
// ContentTypeAll means no restriction.
type ContentType string

const (
	ContentTypeAll      ContentType = "all"
	ContentTypeVideo    ContentType = "video"
	ContentTypeImage    ContentType = "image"
	ContentTypeArticle  ContentType = "article"
	ContentTypeDocument ContentType = "document"
	ContentTypePoll     ContentType = "poll"
)

// ParseContentType maps the raw request value; empty means "all".
func ParseContentType(s string) ContentType {
	if s == "" {
		return ContentTypeAll
	}
	return ContentType(s)
}
