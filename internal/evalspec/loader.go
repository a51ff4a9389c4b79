package evalspec

import (
	"fmt"
	"os"
	"time"

	"github.com/DjordjeVuckovic/vibe-eval/internal/apperr"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run spec: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*RunSpec, error) {
	var s RunSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperr.NewValidationWrap("parse run spec YAML", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *RunSpec) error {
	if s.Dataset == "" {
		return apperr.NewValidation("run spec has no dataset")
	}
	if s.GenerationsIn == "" {
		return apperr.NewValidation("run spec has no generations_in")
	}
	if s.GenerationsOut == "" {
		return apperr.NewValidation("run spec has no generations_out")
	}
	if s.MaxAttempts < 0 {
		return apperr.NewValidation(fmt.Sprintf("max_attempts must not be negative, got %d", s.MaxAttempts))
	}
	if s.Concurrency < 0 {
		return apperr.NewValidation(fmt.Sprintf("concurrency must not be negative, got %d", s.Concurrency))
	}
	if s.MaxAttempts == 0 {
		s.MaxAttempts = 3
	}
	if s.Concurrency == 0 {
		s.Concurrency = 1
	}
	if s.CallTimeout <= 0 {
		s.CallTimeout = Duration(2 * time.Minute)
	}
	return nil
}
