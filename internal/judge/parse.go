package judge

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseVerdict extracts a binary verdict from raw judge output. The judge
// is prompted for strict JSON but models wrap it in prose often enough
// that a first-brace/last-brace extraction is attempted as a fallback.
// When no correctness signal is present the verdict is ErrNoVerdict, never
// a defaulted score.
func ParseVerdict(raw string) (Verdict, error) {
	payload, ok := decodeVerdictJSON(raw)
	if !ok {
		return Verdict{}, ErrNoVerdict
	}

	score, ok := coerceScore(payload.Score)
	if !ok {
		return Verdict{}, ErrNoVerdict
	}

	return Verdict{
		Score:       score,
		Explanation: strings.TrimSpace(payload.Explanation),
	}, nil
}

type verdictPayload struct {
	Score       any    `json:"score"`
	Explanation string `json:"explanation"`
}

func decodeVerdictJSON(raw string) (verdictPayload, bool) {
	var payload verdictPayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return payload, true
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return verdictPayload{}, false
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return verdictPayload{}, false
	}
	return payload, true
}

func coerceScore(v any) (int, bool) {
	switch s := v.(type) {
	case float64:
		return binarize(s), true
	case bool:
		if s {
			return 1, true
		}
		return 0, true
	case string:
		trimmed := strings.TrimSpace(s)
		switch strings.ToLower(trimmed) {
		case "true":
			return 1, true
		case "false":
			return 0, true
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return binarize(f), true
	default:
		return 0, false
	}
}

func binarize(f float64) int {
	if f >= 0.5 {
		return 1
	}
	return 0
}
