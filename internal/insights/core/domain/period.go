package domain

import "time"

// DateLayout is the wire format for calendar dates. Lexicographic order on
// these strings matches chronological order, which the bucketing code relies
// on when sorting series keys.
const DateLayout = "2006-01-02"

// Period is the requested current window, relative to a reference day or
// custom with explicit bounds.
type Period string

const (
	Period7Days  Period = "7d"
	Period30Days Period = "30d"
	Period90Days Period = "90d"
	Period1Year  Period = "1y"
	PeriodCustom Period = "custom"
)

// Granularity is the temporal resolution a series is presented at. Raw data
// is always daily; weekly and monthly are view transforms.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity validates a raw granularity value; empty defaults to daily.
func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case GranularityDaily, GranularityWeekly, GranularityMonthly:
		return Granularity(s), true
	case "":
		return GranularityDaily, true
	}
	return "", false
}

// DateInterval is an inclusive [Start, End] pair of calendar dates, both UTC
// midnights with no time-of-day component.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive day count of the interval.
func (i DateInterval) Days() int {
	return int(i.End.Sub(i.Start).Hours()/24) + 1
}

// Contains reports whether d falls inside the interval.
func (i DateInterval) Contains(d time.Time) bool {
	return !d.Before(i.Start) && !d.After(i.End)
}

// Midnight truncates t to its UTC calendar date.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolveDateRange turns a period token into the current window ending at the
// reference day, plus the equal-length window that ends one day before the
// current window starts. Custom periods use the given dates verbatim; the
// caller validates their presence and ordering beforehand. An unrecognized
// token falls back to 30 days rather than failing.
//
// The comparison window is pure duration arithmetic: its length in
// nanoseconds equals the current window's, with no calendar-aware
// adjustment beyond what date arithmetic already gives.
func ResolveDateRange(p Period, customStart, customEnd, now time.Time) (current, comparison DateInterval) {
	end := Midnight(now)

	switch p {
	case PeriodCustom:
		current = DateInterval{Start: Midnight(customStart), End: Midnight(customEnd)}
	case Period7Days:
		current = DateInterval{Start: end.AddDate(0, 0, -7), End: end}
	case Period90Days:
		current = DateInterval{Start: end.AddDate(0, 0, -90), End: end}
	case Period1Year:
		current = DateInterval{Start: end.AddDate(-1, 0, 0), End: end}
	case Period30Days:
		current = DateInterval{Start: end.AddDate(0, 0, -30), End: end}
	default:
		// Lenient fallback for unknown tokens.
		current = DateInterval{Start: end.AddDate(0, 0, -30), End: end}
	}

	length := current.End.Sub(current.Start)
	compEnd := current.Start.AddDate(0, 0, -1)
	comparison = DateInterval{Start: compEnd.Add(-length), End: compEnd}
	return current, comparison
}
