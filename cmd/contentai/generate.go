// ABOUTME: CLI commands for generating text drafts and image concepts.
// ABOUTME: Every successful generation is recorded in the local history.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/generator"
	"github.com/2389-research/contentai/internal/logging"
	"github.com/2389-research/contentai/internal/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate content drafts",
}

var generateTextCmd = &cobra.Command{
	Use:   "text",
	Short: "Generate a social media post draft",
	Args:  cobra.NoArgs,
	RunE:  runGenerateText,
}

var generateImageCmd = &cobra.Command{
	Use:   "image",
	Short: "Generate an image concept",
	Args:  cobra.NoArgs,
	RunE:  runGenerateImage,
}

// Flags
var (
	genPrompt   string
	genPlatform string
	genTone     string
	genHashtags bool
	genCTA      bool
	genStyle    string
	genJSON     bool
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.AddCommand(generateTextCmd)
	generateCmd.AddCommand(generateImageCmd)

	generateCmd.PersistentFlags().StringVarP(&genPrompt, "prompt", "p", "", "What the content should be about")
	generateCmd.PersistentFlags().BoolVar(&genJSON, "json", false, "Print JSON")

	generateTextCmd.Flags().StringVar(&genPlatform, "platform", "instagram", "Target platform: "+strings.Join(generator.Platforms, ", "))
	generateTextCmd.Flags().StringVar(&genTone, "tone", "casual", "Voice: "+strings.Join(generator.Tones, ", "))
	generateTextCmd.Flags().BoolVar(&genHashtags, "hashtags", true, "Include hashtags")
	generateTextCmd.Flags().BoolVar(&genCTA, "cta", true, "Include a call to action")

	generateImageCmd.Flags().StringVar(&genStyle, "style", "photorealistic", "Style: "+strings.Join(generator.ImageStyles, ", "))
}

func runGenerateText(cmd *cobra.Command, args []string) error {
	return runGeneration(cmd, func(ctx context.Context, g *generator.Generator) (models.GeneratedContent, error) {
		return g.GenerateContent(ctx, generator.Request{
			Prompt:          genPrompt,
			Platform:        genPlatform,
			Tone:            genTone,
			IncludeHashtags: genHashtags,
			IncludeCTA:      genCTA,
		})
	})
}

func runGenerateImage(cmd *cobra.Command, args []string) error {
	return runGeneration(cmd, func(ctx context.Context, g *generator.Generator) (models.GeneratedContent, error) {
		return g.GenerateImage(ctx, generator.ImageRequest{Prompt: genPrompt, Style: genStyle})
	})
}

func runGeneration(cmd *cobra.Command, gen func(context.Context, *generator.Generator) (models.GeneratedContent, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !genJSON {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("Generating..."))
	}

	draft, err := gen(ctx, generator.New())
	if err != nil {
		return err
	}
	if err := globalHistory.Add(draft); err != nil {
		logging.Log(ctx).Layer("cli").Op("generate").Content(draft.ID).Err(err).Warn("failed to record generation history")
	}

	out := cmd.OutOrStdout()
	if genJSON {
		return printJSON(out, draft)
	}
	printDraft(out, draft)
	success(out, "Draft %s added to history", draft.ID)
	return nil
}

func printDraft(w io.Writer, d models.GeneratedContent) {
	title := fmt.Sprintf("%s draft · %s", models.PlatformTitle(d.Platform), d.Tone)
	if d.Kind == models.KindImage {
		title = fmt.Sprintf("Image concept · %s", d.Tone)
	}
	fmt.Fprintln(w, headingStyle.Render(title))
	fmt.Fprintln(w)
	fmt.Fprintln(w, d.Content)
	if len(d.Hashtags) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, noticeStyle.Render(strings.Join(d.Hashtags, " ")))
	}
	if d.CTA != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "CTA: %s\n", d.CTA)
	}
	if d.ImageURL != "" {
		fmt.Fprintf(w, "Image: %s\n", d.ImageURL)
	}
	fmt.Fprintln(w)
	if d.ProductionNotes != "" {
		muted(w, "Notes: %s", d.ProductionNotes)
	}
	muted(w, "Estimated performance: %d/100", d.PerformanceEstimate)
}
