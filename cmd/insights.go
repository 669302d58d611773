package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pable/go-nfl-metrics/internal/config"
	"github.com/pable/go-nfl-metrics/internal/model"
)

const insightsSystemPrompt = `You are an NFL analytics assistant. You are given season aggregates
computed from nflverse play-by-play data and a question from the user.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Leaderboards only include players above minimum sample sizes; a missing
  player is not evidence of poor play.

Metrics glossary:
- EPA: expected points added on a play. Mean EPA/play near 0 is league average;
  +0.1 is good for an offense, +0.2 is elite.
- Team EPA covers regular-season passes and runs without penalties.
- QB EPA/play includes dropbacks and designed runs.
- Y/A: passing yards per attempt. YPC: rushing yards per carry.
- Catch%: receptions divided by targets.
- TD:INT: passing touchdowns per interception (equals touchdowns when no INTs).`

var (
	insightsSeason int
	insightsTeam   string
	insightsRender bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights <question>",
	Short: "AI-powered grounded analysis of a season (requires ANTHROPIC_API_KEY)",
	Example: `  nflmetrics insights "Which offenses lean hardest on the pass?"
  nflmetrics insights --team DET "How efficient was the run game?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInsights,
}

func init() {
	f := insightsCmd.Flags()
	f.IntVar(&insightsSeason, "season", 0, "season to analyze (default: latest stored)")
	f.StringVar(&insightsTeam, "team", "", "include one team's passing and rushing breakdown")
	f.BoolVar(&insightsRender, "render", false, "buffer the answer and render it as terminal markdown")
	f.String("model", config.DefaultModel, "Anthropic model to use")
	f.String("api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	for _, name := range []string{"model", "api-key"} {
		if err := viper.BindPFlag(name, f.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func runInsights(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	svc, db, err := openService()
	if err != nil {
		return err
	}
	defer db.Close()

	doc, err := svc.Export(insightsSeason)
	if err != nil {
		return fmt.Errorf("export season: %w", err)
	}
	var team *model.TeamOffense
	if insightsTeam != "" {
		team, err = svc.TeamOffense(doc.Season, insightsTeam)
		if err != nil {
			return err
		}
	}

	contextJSON, err := buildInsightsContext(doc, team)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	fmt.Fprintln(os.Stdout, "\n─── Insights ────────────────────────────────────────")
	sink := &answerSink{w: os.Stdout, render: insightsRender}
	err = callAnthropic(cmd.Context(), cfg.APIKey, cfg.Model, contextJSON, question, sink)
	if err != nil {
		fmt.Fprintln(os.Stdout)
		return err
	}
	if err := sink.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")
	return nil
}

// buildInsightsContext flattens the export into the document sent to the
// model. Thresholds are included so the model can explain missing players.
func buildInsightsContext(doc *model.SeasonExport, team *model.TeamOffense) (string, error) {
	th := cfg.Thresholds()
	data := map[string]any{
		"season":       doc.Season,
		"league":       doc.LeagueStats,
		"generated_at": doc.LastUpdated,
		"thresholds": map[string]int{
			"min_qb_plays":   th.QBPlays,
			"min_rb_rushes":  th.RBRushes,
			"min_wr_targets": th.WRTargets,
			"min_te_targets": th.TETargets,
		},
	}
	if doc.TeamStats != nil {
		data["teams"] = doc.TeamStats
	}
	if doc.PlayerStats != nil {
		data["players"] = doc.PlayerStats
	}
	if team != nil {
		data["team_offense"] = team
	}
	b, err := json.Marshal(data)
	return string(b), err
}

// callAnthropic streams the model's answer into w as text deltas arrive.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string, w io.Writer) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: insightsSystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(
				fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question))),
		},
	})
	defer stream.Close()

	for stream.Next() {
		evt := stream.Current()
		if evt.Type != "content_block_delta" {
			continue
		}
		delta := evt.AsContentBlockDelta().Delta
		if delta.Type != "text_delta" {
			continue
		}
		if _, err := io.WriteString(w, delta.AsTextDelta().Text); err != nil {
			return err
		}
	}
	if err := stream.Err(); err != nil {
		if msg := err.Error(); strings.Contains(msg, "401") || strings.Contains(msg, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}

// answerSink passes streamed text straight to w, or with render set holds it
// until Flush prints it once through glamour.
type answerSink struct {
	w      io.Writer
	render bool
	buf    strings.Builder
}

func (a *answerSink) Write(p []byte) (int, error) {
	if a.render {
		return a.buf.Write(p)
	}
	return a.w.Write(p)
}

func (a *answerSink) Flush() error {
	if !a.render || a.buf.Len() == 0 {
		return nil
	}
	out, err := renderMarkdown(a.buf.String())
	if err != nil {
		return err
	}
	a.buf.Reset()
	_, err = io.WriteString(a.w, out)
	return err
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
