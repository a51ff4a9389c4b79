package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/vibe-eval/internal/aggregate"
	"github.com/DjordjeVuckovic/vibe-eval/internal/dataset"
	"github.com/DjordjeVuckovic/vibe-eval/internal/recordio"
	"github.com/DjordjeVuckovic/vibe-eval/internal/report"
)

type cliConfig struct {
	GenerationsPath string
	DataPath        string
	Output          string
	OutputSummary   string
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.DataPath, "data", "data/vibe-eval.v1.jsonl", "Path to dataset JSONL")
	flag.StringVar(&cfg.Output, "o", "", "Output path for detailed results JSONL")
	flag.StringVar(&cfg.Output, "output", "", "Output path for detailed results JSONL")
	flag.StringVar(&cfg.OutputSummary, "output-summary", "", "Output path for summary JSON (default: output with _summary suffix)")

	flag.Parse()

	cfg.GenerationsPath = flag.Arg(0)
	return cfg
}

func main() {
	cfg := parseFlags()

	if cfg.GenerationsPath == "" {
		slog.Error("Judged generations file argument is required")
		os.Exit(1)
	}
	if cfg.Output == "" {
		slog.Error("Output path is required (-o)")
		os.Exit(1)
	}
	if cfg.OutputSummary == "" {
		cfg.OutputSummary = summaryPath(cfg.Output)
	}

	examples, err := dataset.Load(cfg.DataPath)
	if err != nil {
		slog.Error("Failed to load dataset", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}

	records, err := recordio.ReadAll[aggregate.ScoredRecord](cfg.GenerationsPath)
	if err != nil {
		slog.Error("Failed to load judged records", "path", cfg.GenerationsPath, "error", err)
		os.Exit(1)
	}

	res := aggregate.Aggregate(examples, records)

	if err := recordio.WriteAll(cfg.Output, res.Details); err != nil {
		slog.Error("Failed to write detailed results", "path", cfg.Output, "error", err)
		os.Exit(1)
	}

	summary := report.BuildSummary(filepath.Base(cfg.GenerationsPath), res)
	if err := report.WriteSummary(cfg.OutputSummary, summary); err != nil {
		slog.Error("Failed to write summary", "path", cfg.OutputSummary, "error", err)
		os.Exit(1)
	}

	report.WriteTable(os.Stdout, []report.Entry{
		{Name: filepath.Base(cfg.GenerationsPath), Result: res},
	})

	if res.Missing > 0 || res.Malformed > 0 || res.UnknownIDs > 0 {
		slog.Warn("Examples excluded from statistics",
			"missing", res.Missing,
			"malformed", res.Malformed,
			"unknown_ids", res.UnknownIDs)
	}
	slog.Info("Aggregation finished",
		"matched", res.Overall.Count,
		"details", cfg.Output,
		"summary", cfg.OutputSummary)
}

func summaryPath(output string) string {
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	if ext == "" {
		ext = ".json"
	}
	return base + "_summary" + ext
}
