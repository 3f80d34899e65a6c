// ABOUTME: Filter, search, and sort pipeline over catalog content items.
// ABOUTME: Pure functions that always return a fresh slice and never touch their input.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/2389-research/contentai/internal/models"
)

// SortField names a sortable content attribute.
type SortField string

// Sortable fields.
const (
	SortPerformanceScore SortField = "performanceScore"
	SortEngagementRate   SortField = "engagementRate"
	SortPublishedAt      SortField = "publishedAt"
	SortLikes            SortField = "likes"
	SortComments         SortField = "comments"
	SortShares           SortField = "shares"
)

// SortFields lists every valid sort field in display order.
var SortFields = []SortField{
	SortPerformanceScore,
	SortEngagementRate,
	SortPublishedAt,
	SortLikes,
	SortComments,
	SortShares,
}

// SortDirection is ascending or descending.
type SortDirection string

// Sort directions.
const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// SortSpec selects a field and direction.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

func (s SortSpec) String() string {
	return string(s.Field) + ":" + string(s.Direction)
}

// ScoreRange is an inclusive [Min, Max] performance score window.
type ScoreRange struct {
	Min int
	Max int
}

// Query describes one pass through the pipeline. The zero value matches everything.
type Query struct {
	Text       string
	Platforms  []string
	Categories []string
	Score      *ScoreRange
	Sort       *SortSpec
}

// IsZero reports whether the query applies no filtering or ordering.
func (q Query) IsZero() bool {
	return q.Text == "" && len(q.Platforms) == 0 && len(q.Categories) == 0 &&
		q.Score == nil && q.Sort == nil
}

// Validate checks the score range bounds.
func (q Query) Validate() error {
	if q.Score == nil {
		return nil
	}
	return models.Validate(
		func() string { return models.CheckRange("min_score", q.Score.Min, 0, 100) },
		func() string { return models.CheckRange("max_score", q.Score.Max, 0, 100) },
		func() string {
			if q.Score.Min > q.Score.Max {
				return fmt.Sprintf("min_score %d is greater than max_score %d", q.Score.Min, q.Score.Max)
			}
			return ""
		},
	)
}

// ParseSortSpec parses "field" or "field:direction". The direction defaults to desc.
func ParseSortSpec(s string) (*SortSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	field, dir, _ := strings.Cut(s, ":")
	spec := &SortSpec{Direction: Desc}

	var errs []string
	found := false
	for _, f := range SortFields {
		if strings.EqualFold(field, string(f)) {
			spec.Field = f
			found = true
			break
		}
	}
	if !found {
		names := make([]string, len(SortFields))
		for i, f := range SortFields {
			names[i] = string(f)
		}
		errs = append(errs, fmt.Sprintf("sort field %q is not one of %s", field, strings.Join(names, ", ")))
	}
	switch strings.ToLower(dir) {
	case "", "desc":
	case "asc":
		spec.Direction = Asc
	default:
		errs = append(errs, fmt.Sprintf("sort direction %q must be asc or desc", dir))
	}
	if len(errs) > 0 {
		return nil, &models.ValidationError{Errors: errs}
	}
	return spec, nil
}

// Apply filters, searches, and sorts items according to q.
// The text is matched exactly as given, surrounding whitespace included.
func Apply(items []models.ContentItem, q Query) []models.ContentItem {
	needle := strings.ToLower(q.Text)
	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if !inList(item.Platform, q.Platforms) || !inList(item.Category, q.Categories) {
			continue
		}
		if q.Score != nil && item.PerformanceScore != nil {
			score := *item.PerformanceScore
			if score < q.Score.Min || score > q.Score.Max {
				continue
			}
		}
		if needle != "" && !Matches(item, needle) {
			continue
		}
		out = append(out, item.Clone())
	}
	if q.Sort != nil {
		SortItems(out, *q.Sort)
	}
	return out
}

// Matches reports whether any searchable field contains the lowercased needle.
func Matches(item models.ContentItem, needle string) bool {
	needle = strings.ToLower(needle)
	for _, field := range SearchableFields(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// SearchableFields returns the text fields considered by text search.
func SearchableFields(item models.ContentItem) []string {
	fields := make([]string, 0, len(item.Tags)+5)
	fields = append(fields, item.Title, item.Description, item.Platform, item.Category, item.Author.Name)
	return append(fields, item.Tags...)
}

// SortItems orders items in place. Ties keep their relative order.
func SortItems(items []models.ContentItem, spec SortSpec) {
	key := sortKey(spec.Field)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if spec.Direction == Asc {
			return a < b
		}
		return a > b
	})
}

func sortKey(field SortField) func(models.ContentItem) float64 {
	switch field {
	case SortEngagementRate:
		return func(c models.ContentItem) float64 { return c.Rate() }
	case SortPublishedAt:
		return func(c models.ContentItem) float64 { return float64(c.PublishedTime().Unix()) }
	case SortLikes:
		return func(c models.ContentItem) float64 { return float64(c.Engagement.Likes) }
	case SortComments:
		return func(c models.ContentItem) float64 { return float64(c.Engagement.Comments) }
	case SortShares:
		return func(c models.ContentItem) float64 { return float64(c.Engagement.Shares) }
	default:
		return func(c models.ContentItem) float64 { return float64(c.Score()) }
	}
}

func inList(value string, list []string) bool {
	if len(list) == 0 {
		return true
	}
	for _, v := range list {
		if strings.EqualFold(value, v) {
			return true
		}
	}
	return false
}

// Params is the loose form of a Query collected from flags, query strings, and tool arguments.
type Params struct {
	Text       string
	Platforms  []string
	Categories []string
	MinScore   *int
	MaxScore   *int
	Sort       string
}

// Query converts p into a validated Query. A single score bound opens the other end of the range.
func (p Params) Query() (Query, error) {
	q := Query{
		Text:       p.Text,
		Platforms:  compact(p.Platforms),
		Categories: compact(p.Categories),
	}
	if p.MinScore != nil || p.MaxScore != nil {
		r := &ScoreRange{Min: 0, Max: 100}
		if p.MinScore != nil {
			r.Min = *p.MinScore
		}
		if p.MaxScore != nil {
			r.Max = *p.MaxScore
		}
		q.Score = r
	}
	if err := q.Validate(); err != nil {
		return Query{}, err
	}
	spec, err := ParseSortSpec(p.Sort)
	if err != nil {
		return Query{}, err
	}
	q.Sort = spec
	return q, nil
}

// Search runs the pipeline over the whole catalog.
func (c *Catalog) Search(p Params) ([]models.ContentItem, error) {
	q, err := p.Query()
	if err != nil {
		return nil, err
	}
	if q.IsZero() {
		return c.All(), nil
	}
	return Apply(c.items, q), nil
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
