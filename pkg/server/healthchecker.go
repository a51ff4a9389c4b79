package server

import (
	"context"
	"os"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// FileHealthChecker reports healthy once every watched artifact exists.
type FileHealthChecker struct {
	paths []string
}

func NewFileHealthChecker(paths ...string) *FileHealthChecker {
	return &FileHealthChecker{paths: paths}
}

func (hc *FileHealthChecker) Healthy(_ context.Context) bool {
	for _, p := range hc.paths {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}
