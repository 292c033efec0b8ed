package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Report metrics exposed to the admin dashboard.
const (
	MetricOverview = "overview"
	MetricPages    = "pages"
	MetricEvents   = "events"
)

// DayOverview is one row of the overview report.
type DayOverview struct {
	Date      string `json:"date"`
	Visitors  int64  `json:"visitors"`
	PageViews int64  `json:"page_views"`
}

// PageCount is one row of the pages report.
type PageCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// EventCount is one row of the events report.
type EventCount struct {
	Event string `json:"event"`
	Count int64  `json:"count"`
}

// ParseReportDate accepts ISO dates ("2026-08-01") plus the relative
// forms the dashboard sends: "today" and "NdaysAgo".
func ParseReportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if s == "today" {
		return time.Now().Truncate(24 * time.Hour), nil
	}
	if strings.HasSuffix(s, "daysAgo") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "daysAgo"))
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid relative date %q", s)
		}
		return time.Now().AddDate(0, 0, -n).Truncate(24 * time.Hour), nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// GetOverview returns per-day unique visitors and page views between
// start and end inclusive. Days without traffic appear with zero counts.
func (a *AnalyticsModule) GetOverview(start, end time.Time) []DayOverview {
	if a == nil || a.db == nil {
		return []DayOverview{}
	}

	var results []struct {
		Date      string
		Visitors  int64
		PageViews int64
	}

	a.db.Model(&PageEvent{}).
		Select("DATE(created_at) as date, COUNT(DISTINCT visitor_id) as visitors, COUNT(*) as page_views").
		Where("event = ? AND created_at >= ? AND created_at < ?", "visit", start, end.AddDate(0, 0, 1)).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&results)

	byDate := make(map[string]DayOverview, len(results))
	for _, r := range results {
		byDate[r.Date] = DayOverview{Date: r.Date, Visitors: r.Visitors, PageViews: r.PageViews}
	}

	var days []DayOverview
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if row, ok := byDate[key]; ok {
			days = append(days, row)
		} else {
			days = append(days, DayOverview{Date: key})
		}
	}
	return days
}

// GetTopPages returns the most viewed paths in the window.
func (a *AnalyticsModule) GetTopPages(start, end time.Time, limit int) []PageCount {
	if a == nil || a.db == nil {
		return []PageCount{}
	}

	var results []PageCount
	a.db.Model(&PageEvent{}).
		Select("path, COUNT(*) as views").
		Where("event = ? AND created_at >= ? AND created_at < ?", "visit", start, end.AddDate(0, 0, 1)).
		Group("path").
		Order("views DESC").
		Limit(limit).
		Scan(&results)

	return results
}

// GetEvents returns counts per event name (excluding plain visits) in
// the window.
func (a *AnalyticsModule) GetEvents(start, end time.Time) []EventCount {
	if a == nil || a.db == nil {
		return []EventCount{}
	}

	var results []EventCount
	a.db.Model(&PageEvent{}).
		Select("event, COUNT(*) as count").
		Where("event != ? AND created_at >= ? AND created_at < ?", "visit", start, end.AddDate(0, 0, 1)).
		Group("event").
		Order("count DESC").
		Scan(&results)

	return results
}
