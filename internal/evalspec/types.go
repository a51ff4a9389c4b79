package evalspec

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes YAML duration strings like "90s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// RunSpec describes one judging run. CLI flags override non-zero values.
type RunSpec struct {
	Dataset        string   `yaml:"dataset"`
	GenerationsIn  string   `yaml:"generations_in"`
	GenerationsOut string   `yaml:"generations_out"`
	JudgeModel     string   `yaml:"judge_model"`
	BaseURL        string   `yaml:"base_url,omitempty"`
	MaxAttempts    int      `yaml:"max_attempts"`
	Concurrency    int      `yaml:"concurrency"`
	CallTimeout    Duration `yaml:"call_timeout"`
	Append         bool     `yaml:"append"`
	StreamWrite    *bool    `yaml:"stream_write,omitempty"`
}
