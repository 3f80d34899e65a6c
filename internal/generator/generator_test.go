// ABOUTME: Tests for mock content and image generation.
// ABOUTME: Covers validation, ID shape, estimate bounds, options, and cancellation.
package generator

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/2389-research/contentai/internal/models"
)

func newTestGenerator() *Generator {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return New(
		WithLatency(0),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(func() time.Time { return fixed }),
	)
}

func TestGenerateContentEmptyPrompt(t *testing.T) {
	g := newTestGenerator()
	_, err := g.GenerateContent(context.Background(), Request{Prompt: "   "})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGenerateContentRejectsUnknownPlatformAndTone(t *testing.T) {
	g := newTestGenerator()
	_, err := g.GenerateContent(context.Background(), Request{Prompt: "x", Platform: "myspace", Tone: "angry"})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", verr.Errors)
	}
}

func TestGenerateContentShape(t *testing.T) {
	g := newTestGenerator()
	out, err := g.GenerateContent(context.Background(), Request{
		Prompt: "sustainable fashion tips", Platform: "TikTok", Tone: "educational",
		IncludeHashtags: true, IncludeCTA: true,
	})
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}

	if !regexp.MustCompile(`^1709294400000-[0-9a-f]{9}$`).MatchString(out.ID) {
		t.Errorf("unexpected id %q", out.ID)
	}
	if out.Platform != "tiktok" || out.Kind != models.KindText || out.Tone != "educational" {
		t.Errorf("unexpected draft %+v", out)
	}
	if !strings.Contains(out.Content, "sustainable fashion tips") {
		t.Errorf("content should mention the prompt: %q", out.Content)
	}
	if !strings.HasPrefix(out.Content, openers["educational"]) {
		t.Errorf("content should open with the tone: %q", out.Content)
	}
	if out.CTA == "" || len(out.Hashtags) == 0 || out.ProductionNotes == "" {
		t.Errorf("expected hashtags, cta, and notes: %+v", out)
	}
	if out.Hashtags[0] != "#sustainable" {
		t.Errorf("expected topic hashtag first, got %v", out.Hashtags)
	}
}

func TestGenerateContentOptionalExtras(t *testing.T) {
	g := newTestGenerator()
	out, err := g.GenerateContent(context.Background(), Request{Prompt: "coffee"})
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if out.CTA != "" || out.Hashtags != nil {
		t.Errorf("expected no extras, got %+v", out)
	}
	if out.Platform != "instagram" || out.Tone != "casual" {
		t.Errorf("expected defaults, got %s/%s", out.Platform, out.Tone)
	}
}

func TestPerformanceEstimateRange(t *testing.T) {
	g := New(WithLatency(0))
	for i := 0; i < 500; i++ {
		out, err := g.GenerateContent(context.Background(), Request{Prompt: "p"})
		if err != nil {
			t.Fatalf("GenerateContent error: %v", err)
		}
		if out.PerformanceEstimate < 70 || out.PerformanceEstimate > 99 {
			t.Fatalf("estimate %d out of range", out.PerformanceEstimate)
		}
	}
}

func TestIDsAreUnique(t *testing.T) {
	g := newTestGenerator()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		out, err := g.GenerateContent(context.Background(), Request{Prompt: "p"})
		if err != nil {
			t.Fatalf("GenerateContent error: %v", err)
		}
		if seen[out.ID] {
			t.Fatalf("duplicate id %s", out.ID)
		}
		seen[out.ID] = true
	}
}

func TestGenerateImage(t *testing.T) {
	g := newTestGenerator()
	out, err := g.GenerateImage(context.Background(), ImageRequest{Prompt: "a neon city", Style: "minimal"})
	if err != nil {
		t.Fatalf("GenerateImage error: %v", err)
	}
	if out.Kind != models.KindImage || out.ImageURL == "" || out.Tone != "minimal" {
		t.Errorf("unexpected image draft %+v", out)
	}

	if _, err := g.GenerateImage(context.Background(), ImageRequest{Prompt: ""}); err == nil {
		t.Error("expected error for empty prompt")
	}
	if _, err := g.GenerateImage(context.Background(), ImageRequest{Prompt: "x", Style: "cubist"}); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestGenerationHonorsCancellation(t *testing.T) {
	g := New(WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := g.GenerateContent(ctx, Request{Prompt: "p"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("cancellation did not interrupt the simulated latency")
	}
}

func TestSimulatedLatency(t *testing.T) {
	g := New(WithLatency(20 * time.Millisecond))
	start := time.Now()
	if _, err := g.GenerateContent(context.Background(), Request{Prompt: "p"}); err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("expected generation to wait for the simulated latency")
	}
}
