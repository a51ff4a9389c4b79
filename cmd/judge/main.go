package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/DjordjeVuckovic/vibe-eval/internal/dataset"
	"github.com/DjordjeVuckovic/vibe-eval/internal/evalspec"
	"github.com/DjordjeVuckovic/vibe-eval/internal/judge"
	"github.com/DjordjeVuckovic/vibe-eval/internal/recordio"
	"github.com/DjordjeVuckovic/vibe-eval/pkg/config/env"
)

func main() {
	cfg := parseFlags()
	env.LoadDotEnv(".env")

	rs, err := buildRunSpec(cfg)
	if err != nil {
		slog.Error("Invalid run configuration", "error", err)
		os.Exit(1)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("POE_API_KEY")
	}
	client, err := judge.NewOpenAIClient(judge.OpenAIConfig{
		APIKey:  apiKey,
		BaseURL: rs.BaseURL,
		Model:   rs.JudgeModel,
	})
	if err != nil {
		slog.Error("Failed to create judge client", "error", err)
		os.Exit(1)
	}

	examples, err := dataset.Load(rs.Dataset)
	if err != nil {
		slog.Error("Failed to load dataset", "path", rs.Dataset, "error", err)
		os.Exit(1)
	}

	gens, err := dataset.LoadGenerations(rs.GenerationsIn)
	if err != nil {
		slog.Error("Failed to load generations", "path", rs.GenerationsIn, "error", err)
		os.Exit(1)
	}

	existingIDs := map[string]struct{}{}
	if rs.Append {
		existingIDs, err = recordio.LoadExistingIDs(rs.GenerationsOut)
		if err != nil {
			slog.Error("Failed to scan existing output", "path", rs.GenerationsOut, "error", err)
			os.Exit(1)
		}
		if len(existingIDs) > 0 {
			slog.Info("Resuming", "already_judged", len(existingIDs))
		}
	}

	var appenderOpts []recordio.AppenderOption
	if rs.Append {
		appenderOpts = append(appenderOpts, recordio.WithAppend())
	}
	if rs.StreamWrite != nil && !*rs.StreamWrite {
		appenderOpts = append(appenderOpts, recordio.WithBuffered())
	}
	sink, err := recordio.OpenAppender[dataset.JudgedRecord](rs.GenerationsOut, appenderOpts...)
	if err != nil {
		slog.Error("Failed to open output", "path", rs.GenerationsOut, "error", err)
		os.Exit(1)
	}

	engineCfg := judge.Config{
		Resume:      rs.Append,
		ExistingIDs: existingIDs,
		MaxAttempts: rs.MaxAttempts,
		Concurrency: rs.Concurrency,
		CallTimeout: rs.CallTimeout.Std(),
	}
	if cfg.Progress {
		total := len(examples)
		every := max(cfg.ProgressEvery, 1)
		engineCfg.OnProgress = func(p judge.Progress) {
			done := p.Total()
			if done == 1 || done == total || done%every == 0 {
				slog.Info("Judging progress",
					"done", done, "total", total,
					"judged", p.Judged, "skipped", p.Skipped, "failed", p.Failed)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := judge.NewEngine(client, sink, engineCfg)
	rep, runErr := engine.Run(ctx, examples, gens)

	if err := sink.Close(); err != nil {
		slog.Error("Failed to close output", "path", rs.GenerationsOut, "error", err)
		os.Exit(1)
	}

	for _, f := range rep.Failures {
		slog.Warn("Example not judged", "example_id", f.ExampleID, "kind", string(f.Kind), "error", f.Err)
	}
	slog.Info("Judging finished",
		"judged", rep.Judged,
		"skipped", rep.Skipped,
		"missing_generation", rep.CountKind(judge.FailureMissingGeneration),
		"judge_errors", rep.CountKind(judge.FailureJudge),
		"parse_errors", rep.CountKind(judge.FailureParse),
	)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			slog.Error("Judging interrupted", "error", runErr)
		} else {
			slog.Error("Judging aborted", "error", runErr)
		}
		os.Exit(1)
	}
}

// buildRunSpec starts from the YAML run spec when one is given and lets
// explicitly passed flags win over it.
func buildRunSpec(cfg cliConfig) (*evalspec.RunSpec, error) {
	rs := &evalspec.RunSpec{}
	if cfg.SpecPath != "" {
		loaded, err := evalspec.LoadFromFile(cfg.SpecPath)
		if err != nil {
			return nil, err
		}
		rs = loaded
	}

	if cfg.Dataset != "" {
		rs.Dataset = cfg.Dataset
	}
	if cfg.GenerationsIn != "" {
		rs.GenerationsIn = cfg.GenerationsIn
	}
	if cfg.GenerationsOut != "" {
		rs.GenerationsOut = cfg.GenerationsOut
	}
	if rs.JudgeModel == "" || cfg.visited["judge-model"] {
		rs.JudgeModel = cfg.JudgeModel
	}
	if cfg.BaseURL != "" {
		rs.BaseURL = cfg.BaseURL
	}
	if cfg.MaxAttempts > 0 {
		rs.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.Concurrency > 0 {
		rs.Concurrency = cfg.Concurrency
	}
	if cfg.CallTimeout > 0 {
		rs.CallTimeout = evalspec.Duration(cfg.CallTimeout)
	}
	if rs.MaxAttempts <= 0 {
		rs.MaxAttempts = 3
	}
	if rs.Concurrency <= 0 {
		rs.Concurrency = 1
	}
	if rs.CallTimeout <= 0 {
		rs.CallTimeout = evalspec.Duration(2 * time.Minute)
	}
	if cfg.Append || cfg.visited["append"] {
		rs.Append = cfg.Append
	}
	if rs.StreamWrite == nil || cfg.visited["stream-write"] {
		stream := cfg.StreamWrite
		rs.StreamWrite = &stream
	}

	if rs.Dataset == "" {
		return nil, errors.New("--dataset is required")
	}
	if rs.GenerationsIn == "" {
		return nil, errors.New("--generations-in is required")
	}
	if rs.GenerationsOut == "" {
		return nil, errors.New("--generations-out is required")
	}
	return rs, nil
}
