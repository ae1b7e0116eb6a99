// dashboard/aggregate.go

// Package dashboard derives chart-ready aggregates from the in-memory
// request collection. Nothing here talks to the network; the server does
// no aggregation for the console.
package dashboard

import (
	"time"

	"github.com/imdes/console/model"
)

// Stats are the headline counters at the top of the dashboard.
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// StatusCounts tallies requests per status.
func StatusCounts(requests []model.DataRequest) Stats {
	stats := Stats{Total: len(requests)}
	for _, r := range requests {
		switch r.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusApproved:
			stats.Approved++
		case model.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

// MinistryCount is one bar of the per-ministry chart.
type MinistryCount struct {
	MinistryID int    `json:"ministry_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// MinistryCounts groups requests by requesting ministry. The grouping keys
// come from the fetched ministry catalog, never from an assumed id set;
// requests from ministries missing in the catalog are not charted.
func MinistryCounts(requests []model.DataRequest, ministries []model.Ministry) []MinistryCount {
	byID := make(map[int]int, len(requests))
	for _, r := range requests {
		byID[r.RequestingMinistryID]++
	}

	counts := make([]MinistryCount, 0, len(ministries))
	for _, m := range ministries {
		counts = append(counts, MinistryCount{
			MinistryID: m.ID,
			Name:       m.Name,
			Count:      byID[m.ID],
		})
	}
	return counts
}

// TrendPoint is one bucket of the monthly trend chart.
type TrendPoint struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

const trendBuckets = 5

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthlyTrend buckets requests by (month(created_at) - month(now) + 12)
// mod 12 and keeps buckets 0 through 4. The comparison is month-only:
// the year is ignored, so same-calendar-month requests from different
// years share a bucket, and anything landing in buckets 5..11 is dropped.
// Known limitation of the chart contract; changing it breaks the
// consumers that render these buckets.
func MonthlyTrend(requests []model.DataRequest, now time.Time) []TrendPoint {
	currentMonth := int(now.Month()) - 1

	points := make([]TrendPoint, trendBuckets)
	for i := range points {
		points[i].Month = monthNames[(currentMonth+i)%12]
	}

	for _, r := range requests {
		if r.CreatedAt.IsZero() {
			continue
		}
		bucket := (int(r.CreatedAt.Month()) - 1 - currentMonth + 12) % 12
		if bucket < trendBuckets {
			points[bucket].Count++
		}
	}
	return points
}

// Charts bundles every derived view the dashboard renders.
type Charts struct {
	Stats      Stats           `json:"stats"`
	Ministries []MinistryCount `json:"ministries"`
	Trend      []TrendPoint    `json:"trend"`
}

// BuildCharts computes all aggregates from one snapshot.
func BuildCharts(requests []model.DataRequest, ministries []model.Ministry, now time.Time) Charts {
	return Charts{
		Stats:      StatusCounts(requests),
		Ministries: MinistryCounts(requests, ministries),
		Trend:      MonthlyTrend(requests, now),
	}
}
