// ABOUTME: Core data models for catalog content, generated drafts, analytics, and sync records.
// ABOUTME: Provides constructor functions and type definitions shared across contentai packages.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Author is the creator of a catalog item.
type Author struct {
	Name      string `json:"name" yaml:"name"`
	Avatar    string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Followers *int   `json:"followers,omitempty" yaml:"followers,omitempty"`
}

// Engagement holds the interaction counters of a catalog item.
type Engagement struct {
	Likes          int      `json:"likes" yaml:"likes"`
	Comments       int      `json:"comments" yaml:"comments"`
	Shares         int      `json:"shares" yaml:"shares"`
	Views          *int     `json:"views,omitempty" yaml:"views,omitempty"`
	EngagementRate *float64 `json:"engagementRate,omitempty" yaml:"engagementRate,omitempty"`
}

// ContentItem is a trending content record from the catalog.
type ContentItem struct {
	ID               string     `json:"id" yaml:"id"`
	Title            string     `json:"title" yaml:"title"`
	Description      string     `json:"description" yaml:"description"`
	Platform         string     `json:"platform" yaml:"platform"`
	Category         string     `json:"category,omitempty" yaml:"category,omitempty"`
	Tags             []string   `json:"tags" yaml:"tags"`
	PerformanceScore *int       `json:"performanceScore,omitempty" yaml:"performanceScore,omitempty"`
	Engagement       Engagement `json:"engagement" yaml:"engagement"`
	ImageURL         string     `json:"imageUrl" yaml:"imageUrl"`
	Link             string     `json:"link" yaml:"link"`
	PublishedAt      string     `json:"publishedAt" yaml:"publishedAt"`
	Author           Author     `json:"author" yaml:"author"`
}

// Clone returns a deep copy so callers can never alias catalog fixtures.
func (c ContentItem) Clone() ContentItem {
	out := c
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	if c.PerformanceScore != nil {
		v := *c.PerformanceScore
		out.PerformanceScore = &v
	}
	if c.Engagement.Views != nil {
		v := *c.Engagement.Views
		out.Engagement.Views = &v
	}
	if c.Engagement.EngagementRate != nil {
		v := *c.Engagement.EngagementRate
		out.Engagement.EngagementRate = &v
	}
	if c.Author.Followers != nil {
		v := *c.Author.Followers
		out.Author.Followers = &v
	}
	return out
}

// Score returns the performance score, or 0 when absent.
func (c ContentItem) Score() int {
	if c.PerformanceScore == nil {
		return 0
	}
	return *c.PerformanceScore
}

// Rate returns the engagement rate, or 0 when absent.
func (c ContentItem) Rate() float64 {
	if c.Engagement.EngagementRate == nil {
		return 0
	}
	return *c.Engagement.EngagementRate
}

// ViewCount returns the view count, or 0 when absent.
func (c ContentItem) ViewCount() int {
	if c.Engagement.Views == nil {
		return 0
	}
	return *c.Engagement.Views
}

// PublishedTime parses PublishedAt. Unparseable or empty dates map to the Unix epoch.
func (c ContentItem) PublishedTime() time.Time {
	if c.PublishedAt == "" {
		return time.Unix(0, 0).UTC()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, c.PublishedAt); err == nil {
			return t.UTC()
		}
	}
	return time.Unix(0, 0).UTC()
}

// Generated content kinds.
const (
	KindText  = "text"
	KindImage = "image"
)

// GeneratedContent is a draft produced by the mock generator.
type GeneratedContent struct {
	ID                  string    `json:"id"`
	Kind                string    `json:"kind"`
	Platform            string    `json:"platform"`
	Content             string    `json:"content"`
	Hashtags            []string  `json:"hashtags,omitempty"`
	CTA                 string    `json:"cta,omitempty"`
	ProductionNotes     string    `json:"productionNotes,omitempty"`
	PerformanceEstimate int       `json:"performanceEstimate"`
	Prompt              string    `json:"prompt"`
	Tone                string    `json:"tone,omitempty"`
	ImageURL            string    `json:"imageUrl,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Sync directions and statuses.
const (
	SyncPush = "push"
	SyncPull = "pull"

	SyncSuccess = "success"
	SyncFailed  = "failed"
)

// SyncRecord is one entry of the GitHub sync history.
type SyncRecord struct {
	ID        uuid.UUID `json:"id"`
	Direction string    `json:"direction"`
	Repo      string    `json:"repo"`
	Branch    string    `json:"branch"`
	Path      string    `json:"path"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CommitSHA string    `json:"commitSha,omitempty"`
	Items     int       `json:"items"`
	At        time.Time `json:"at"`
}

// NewSyncRecord creates a sync record with generated UUID and timestamp.
func NewSyncRecord(direction, repo, branch, path string) *SyncRecord {
	return &SyncRecord{
		ID:        uuid.New(),
		Direction: direction,
		Repo:      repo,
		Branch:    branch,
		Path:      path,
		At:        time.Now().UTC(),
	}
}

// Fail marks the record as failed with the given error.
func (r *SyncRecord) Fail(err error) {
	r.Status = SyncFailed
	if err != nil {
		r.Error = err.Error()
	}
}

// PlatformBreakdown aggregates catalog items on one platform.
type PlatformBreakdown struct {
	Platform     string  `json:"platform"`
	Count        int     `json:"count"`
	Likes        int     `json:"likes"`
	Comments     int     `json:"comments"`
	Shares       int     `json:"shares"`
	Views        int     `json:"views"`
	AverageScore float64 `json:"averageScore"`
}

// CategoryBreakdown aggregates catalog items in one category.
type CategoryBreakdown struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"averageScore"`
}

// MonthlyPoint is one bucket of the engagement time series.
type MonthlyPoint struct {
	Month    string `json:"month"`
	Items    int    `json:"items"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Shares   int    `json:"shares"`
	Views    int    `json:"views"`
}

// AnalyticsData is the dashboard summary derived from the catalog.
type AnalyticsData struct {
	TotalContent          int                 `json:"totalContent"`
	TotalLikes            int                 `json:"totalLikes"`
	TotalComments         int                 `json:"totalComments"`
	TotalShares           int                 `json:"totalShares"`
	TotalViews            int                 `json:"totalViews"`
	AveragePerformance    float64             `json:"averagePerformance"`
	AverageEngagementRate float64             `json:"averageEngagementRate"`
	Platforms             []PlatformBreakdown `json:"platforms"`
	Categories            []CategoryBreakdown `json:"categories"`
	Monthly               []MonthlyPoint      `json:"monthly"`
	TopPerformers         []ContentItem       `json:"topPerformers"`
}

// PlatformTitle converts a platform slug like "youtube_shorts" to "Youtube Shorts".
func PlatformTitle(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }
