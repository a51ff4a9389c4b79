package main

import (
	"flag"
	"time"
)

type cliConfig struct {
	SpecPath       string
	Dataset        string
	GenerationsIn  string
	GenerationsOut string
	JudgeModel     string
	BaseURL        string
	APIKey         string
	Append         bool
	StreamWrite    bool
	Progress       bool
	ProgressEvery  int
	Concurrency    int
	MaxAttempts    int
	CallTimeout    time.Duration

	visited map[string]bool
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to run spec YAML; flags override its values")
	flag.StringVar(&cfg.Dataset, "dataset", "", "Path to dataset JSONL")
	flag.StringVar(&cfg.GenerationsIn, "generations-in", "", "Path to generations JSONL to judge")
	flag.StringVar(&cfg.GenerationsOut, "generations-out", "", "Output path for judged JSONL")
	flag.StringVar(&cfg.JudgeModel, "judge-model", "GPT-5", "Judge model name")
	flag.StringVar(&cfg.BaseURL, "base-url", "", "OpenAI-compatible base URL (defaults to Poe)")
	flag.StringVar(&cfg.APIKey, "api-key", "", "Judge API key (defaults to POE_API_KEY env)")
	flag.BoolVar(&cfg.Append, "append", false, "Append to output and resume, skipping already judged ids")
	flag.BoolVar(&cfg.StreamWrite, "stream-write", true, "Flush each judged record to disk immediately")
	flag.BoolVar(&cfg.Progress, "progress", false, "Emit progress updates while judging")
	flag.IntVar(&cfg.ProgressEvery, "progress-every", 10, "Progress update interval in examples")
	flag.IntVar(&cfg.Concurrency, "concurrency", 0, "Concurrent judge calls (default 1)")
	flag.IntVar(&cfg.MaxAttempts, "max-attempts", 0, "Retry ceiling per judge call (default 3)")
	flag.DurationVar(&cfg.CallTimeout, "call-timeout", 0, "Timeout per judge call (default 2m)")

	flag.Parse()

	cfg.visited = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		cfg.visited[f.Name] = true
	})
	return cfg
}
