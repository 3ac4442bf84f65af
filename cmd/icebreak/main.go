package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"icebreak/internal/app"
	"icebreak/internal/config"
	"icebreak/internal/llm"
	"icebreak/internal/logging"
	"icebreak/internal/model"
	"icebreak/internal/service"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const cliClientID = "cli"

//nolint:gochecknoglobals // Cobra boilerplate
var (
	logLevel  string
	fullMode  bool
	interests []string
	profile   string
	style     string
)

func main() {
	root := &cobra.Command{
		Use:           "icebreak",
		Short:         "Generate and score dating-app openers from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	scoreCmd := &cobra.Command{
		Use:   "score <message>",
		Short: "Score an opener (client-only or full)",
		Args:  cobra.ExactArgs(1),
		RunE:  runScore,
	}
	scoreCmd.Flags().BoolVar(&fullMode, "full", false, "add LLM semantic scoring")
	scoreCmd.Flags().StringSliceVar(&interests, "interest", nil, "target interest tag (repeatable)")
	scoreCmd.Flags().StringVar(&profile, "profile", "", "target profile text")

	generateCmd := &cobra.Command{
		Use:   "generate --interest <tag>...",
		Short: "Generate three openers for the given interests",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringSliceVar(&interests, "interest", nil, "interest tag (repeatable, 1-5)")
	generateCmd.Flags().StringVar(&profile, "profile", "", "target profile text")
	generateCmd.Flags().StringVar(&style, "style", string(model.StyleSincere), "humorous, sincere or curious")

	extractCmd := &cobra.Command{
		Use:   "extract <profile text>",
		Short: "Extract interest tags from profile text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExtract,
	}

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Check LLM connectivity and credentials",
		Args:  cobra.NoArgs,
		RunE:  runPing,
	}

	root.AddCommand(scoreCmd, generateCmd, extractCmd, pingCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logLevel, "console")
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, logger)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	mode := model.ModeClientOnly
	if fullMode {
		mode = model.ModeFull
	}

	result, err := a.Confidence.Score(ctx, cliClientID, &model.ConfidenceScoreRequest{
		Message:         args[0],
		TargetInterests: interests,
		TargetProfile:   profile,
		Mode:            mode,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.Icebreaker.Generate(ctx, cliClientID, &model.GenerateRequest{
		Interests:   interests,
		ProfileInfo: profile,
		Style:       model.ConversationStyle(style),
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return verr
		}
		return errors.New(service.FriendlyGenerationMessage(err))
	}
	return printJSON(resp)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.Interests.Extract(ctx, &model.ExtractInterestsRequest{
		ProfileText: strings.Join(args, " "),
	})
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func runPing(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := llm.Ping(ctx, a.Completer)
	if err != nil {
		return err
	}
	fmt.Println(resp.Text)
	fmt.Printf("tokens: prompt=%d completion=%d\n", resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return nil
}
