// ABOUTME: Mock content and image generation that simulates model latency.
// ABOUTME: Drafts come from per-platform templates; nothing leaves the machine.
package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/contentai/internal/models"
)

// DefaultLatency approximates the delay of a real generation call.
const DefaultLatency = 1500 * time.Millisecond

// Platforms the generator has templates for.
var Platforms = []string{"instagram", "tiktok", "youtube", "twitter", "linkedin"}

// Tones the generator understands.
var Tones = []string{"professional", "casual", "humorous", "inspirational", "educational"}

// ImageStyles the image generator understands.
var ImageStyles = []string{"photorealistic", "illustration", "minimal", "3d", "vintage"}

// Request describes a text generation.
type Request struct {
	Prompt          string `json:"prompt"`
	Platform        string `json:"platform"`
	Tone            string `json:"tone"`
	IncludeHashtags bool   `json:"includeHashtags"`
	IncludeCTA      bool   `json:"includeCta"`
}

// ImageRequest describes an image generation.
type ImageRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

// Generator produces mock drafts.
type Generator struct {
	latency time.Duration
	rng     *rand.Rand
	now     func() time.Time
	suffix  func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLatency overrides the simulated delay. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(g *Generator) { g.latency = d }
}

// WithRand sets the random source used for estimates and template choice.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithClock sets the time source used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a generator with DefaultLatency and a random seed.
func New(opts ...Option) *Generator {
	g := &Generator{
		latency: DefaultLatency,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     time.Now,
		suffix:  func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:9] },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ValidateRequest checks the prompt and the optional platform and tone.
func ValidateRequest(req Request) error {
	checks := []func() string{
		func() string { return models.RequireNonEmpty("prompt", req.Prompt) },
	}
	if req.Platform != "" {
		checks = append(checks, func() string { return models.CheckInList("platform", req.Platform, Platforms) })
	}
	if req.Tone != "" {
		checks = append(checks, func() string { return models.CheckInList("tone", req.Tone, Tones) })
	}
	return models.Validate(checks...)
}

// GenerateContent produces a text draft after the simulated latency.
func (g *Generator) GenerateContent(ctx context.Context, req Request) (models.GeneratedContent, error) {
	if err := ValidateRequest(req); err != nil {
		return models.GeneratedContent{}, err
	}
	if err := g.wait(ctx); err != nil {
		return models.GeneratedContent{}, err
	}

	platform := strings.ToLower(req.Platform)
	if platform == "" {
		platform = "instagram"
	}
	tone := strings.ToLower(req.Tone)
	if tone == "" {
		tone = "casual"
	}
	tmpl := templateFor(platform)
	topic := strings.TrimSpace(req.Prompt)

	out := models.GeneratedContent{
		ID:                  g.id(),
		Kind:                models.KindText,
		Platform:            platform,
		Content:             fmt.Sprintf(tmpl.bodies[g.rng.IntN(len(tmpl.bodies))], openers[tone], topic),
		ProductionNotes:     tmpl.notes,
		PerformanceEstimate: g.estimate(),
		Prompt:              topic,
		Tone:                tone,
		CreatedAt:           g.now().UTC(),
	}
	if req.IncludeHashtags {
		out.Hashtags = hashtags(topic, tmpl.hashtags)
	}
	if req.IncludeCTA {
		out.CTA = tmpl.ctas[g.rng.IntN(len(tmpl.ctas))]
	}
	return out, nil
}

// GenerateImage produces an image draft after the simulated latency.
func (g *Generator) GenerateImage(ctx context.Context, req ImageRequest) (models.GeneratedContent, error) {
	checks := []func() string{
		func() string { return models.RequireNonEmpty("prompt", req.Prompt) },
	}
	if req.Style != "" {
		checks = append(checks, func() string { return models.CheckInList("style", req.Style, ImageStyles) })
	}
	if err := models.Validate(checks...); err != nil {
		return models.GeneratedContent{}, err
	}
	if err := g.wait(ctx); err != nil {
		return models.GeneratedContent{}, err
	}

	style := strings.ToLower(req.Style)
	if style == "" {
		style = "photorealistic"
	}
	topic := strings.TrimSpace(req.Prompt)
	return models.GeneratedContent{
		ID:                  g.id(),
		Kind:                models.KindImage,
		Content:             fmt.Sprintf("%s rendering of %s", models.PlatformTitle(style), topic),
		ImageURL:            imageURLs[g.rng.IntN(len(imageURLs))],
		ProductionNotes:     "Generated at 1024x1024. Crop to 4:5 for feeds and 9:16 for stories.",
		PerformanceEstimate: g.estimate(),
		Prompt:              topic,
		Tone:                style,
		CreatedAt:           g.now().UTC(),
	}, nil
}

func (g *Generator) wait(ctx context.Context) error {
	if g.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// id is the creation time in unix millis plus a random suffix.
func (g *Generator) id() string {
	return strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + g.suffix()
}

// estimate returns a performance estimate in [70, 99].
func (g *Generator) estimate() int {
	return 70 + g.rng.IntN(30)
}

func hashtags(topic string, base []string) []string {
	out := make([]string, 0, len(base)+3)
	seen := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(topic)) {
		word = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, word)
		if len(word) < 4 || seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, "#"+word)
		if len(out) == 3 {
			break
		}
	}
	for _, tag := range base {
		if !seen[strings.TrimPrefix(tag, "#")] {
			out = append(out, tag)
		}
	}
	return out
}
