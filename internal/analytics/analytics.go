// ABOUTME: Dashboard aggregates derived from catalog content.
// ABOUTME: Compute is pure; the same items always yield the same summary.
package analytics

import (
	"math"
	"sort"

	"github.com/2389-research/contentai/internal/catalog"
	"github.com/2389-research/contentai/internal/models"
)

// TopPerformerLimit caps AnalyticsData.TopPerformers.
const TopPerformerLimit = 5

// Compute aggregates totals, per-platform and per-category breakdowns,
// a monthly series, and the top performers.
func Compute(items []models.ContentItem) models.AnalyticsData {
	data := models.AnalyticsData{
		TotalContent:  len(items),
		Platforms:     []models.PlatformBreakdown{},
		Categories:    []models.CategoryBreakdown{},
		Monthly:       []models.MonthlyPoint{},
		TopPerformers: []models.ContentItem{},
	}
	if len(items) == 0 {
		return data
	}

	platforms := map[string]*models.PlatformBreakdown{}
	platformScored := map[string]int{}
	categories := map[string]*models.CategoryBreakdown{}
	categoryScored := map[string]int{}
	months := map[string]*models.MonthlyPoint{}

	var scoreSum, scored, rateCount int
	var rateSum float64

	for _, item := range items {
		e := item.Engagement
		data.TotalLikes += e.Likes
		data.TotalComments += e.Comments
		data.TotalShares += e.Shares
		data.TotalViews += item.ViewCount()

		if item.PerformanceScore != nil {
			scoreSum += *item.PerformanceScore
			scored++
		}
		if e.EngagementRate != nil {
			rateSum += *e.EngagementRate
			rateCount++
		}

		p, ok := platforms[item.Platform]
		if !ok {
			p = &models.PlatformBreakdown{Platform: item.Platform}
			platforms[item.Platform] = p
		}
		p.Count++
		p.Likes += e.Likes
		p.Comments += e.Comments
		p.Shares += e.Shares
		p.Views += item.ViewCount()
		if item.PerformanceScore != nil {
			p.AverageScore += float64(*item.PerformanceScore)
			platformScored[item.Platform]++
		}

		if item.Category != "" {
			c, ok := categories[item.Category]
			if !ok {
				c = &models.CategoryBreakdown{Category: item.Category}
				categories[item.Category] = c
			}
			c.Count++
			if item.PerformanceScore != nil {
				c.AverageScore += float64(*item.PerformanceScore)
				categoryScored[item.Category]++
			}
		}

		month := item.PublishedTime().Format("2006-01")
		m, ok := months[month]
		if !ok {
			m = &models.MonthlyPoint{Month: month}
			months[month] = m
		}
		m.Items++
		m.Likes += e.Likes
		m.Comments += e.Comments
		m.Shares += e.Shares
		m.Views += item.ViewCount()
	}

	if scored > 0 {
		data.AveragePerformance = round1(float64(scoreSum) / float64(scored))
	}
	if rateCount > 0 {
		data.AverageEngagementRate = round1(rateSum / float64(rateCount))
	}

	for name, p := range platforms {
		if n := platformScored[name]; n > 0 {
			p.AverageScore = round1(p.AverageScore / float64(n))
		}
		data.Platforms = append(data.Platforms, *p)
	}
	sort.Slice(data.Platforms, func(i, j int) bool {
		if data.Platforms[i].Count != data.Platforms[j].Count {
			return data.Platforms[i].Count > data.Platforms[j].Count
		}
		return data.Platforms[i].Platform < data.Platforms[j].Platform
	})

	for name, c := range categories {
		if n := categoryScored[name]; n > 0 {
			c.AverageScore = round1(c.AverageScore / float64(n))
		}
		data.Categories = append(data.Categories, *c)
	}
	sort.Slice(data.Categories, func(i, j int) bool {
		if data.Categories[i].Count != data.Categories[j].Count {
			return data.Categories[i].Count > data.Categories[j].Count
		}
		return data.Categories[i].Category < data.Categories[j].Category
	})

	for _, m := range months {
		data.Monthly = append(data.Monthly, *m)
	}
	sort.Slice(data.Monthly, func(i, j int) bool { return data.Monthly[i].Month < data.Monthly[j].Month })

	top := catalog.Apply(items, catalog.Query{Sort: &catalog.SortSpec{Field: catalog.SortPerformanceScore, Direction: catalog.Desc}})
	if len(top) > TopPerformerLimit {
		top = top[:TopPerformerLimit]
	}
	data.TopPerformers = top
	return data
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
