package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/vibe-eval/internal/router"
	"github.com/DjordjeVuckovic/vibe-eval/internal/server"
	"github.com/DjordjeVuckovic/vibe-eval/pkg/config/env"
	pkgserver "github.com/DjordjeVuckovic/vibe-eval/pkg/server"
)

func main() {
	var summaryPath, detailsPath string
	flag.StringVar(&summaryPath, "summary", "out/results_summary.json", "Path to summary JSON artifact")
	flag.StringVar(&detailsPath, "details", "out/results.jsonl", "Path to detailed results JSONL artifact")
	flag.Parse()

	env.LoadDotEnv(".env")

	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	hc := pkgserver.NewFileHealthChecker(summaryPath)
	s := server.New(cfg, hc)

	router.NewResultsRouter(s.Echo, summaryPath, detailsPath).Bind()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
