// Package judge drives resumable LLM judging of benchmark generations.
package judge

import "context"

// Request carries everything a judge backend needs to grade one example.
type Request struct {
	Prompt     string
	Reference  string
	Generation string
	Category   string
}

// Verdict is a binary correctness judgment. Score is 0 or 1.
type Verdict struct {
	Score       int
	Explanation string
}

// Client is the single capability a judge backend exposes. The engine
// never branches on backend identity; one implementation per backend.
type Client interface {
	Judge(ctx context.Context, req Request) (Verdict, error)
}
