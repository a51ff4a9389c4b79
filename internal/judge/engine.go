package judge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/vibe-eval/internal/backoff"
	"github.com/DjordjeVuckovic/vibe-eval/internal/dataset"
	"golang.org/x/sync/errgroup"
)

// Sink receives judged records. Every verdict is appended immediately so
// an interrupted run leaves the output consistent: all ids in the file
// are validly judged.
type Sink interface {
	Append(rec dataset.JudgedRecord) error
}

type FailureKind string

const (
	FailureMissingGeneration FailureKind = "missing_generation"
	FailureJudge             FailureKind = "judge_error"
	FailureParse             FailureKind = "judge_parse_error"
)

// Failure records a non-fatal per-example error. Failures never abort the
// run; they are surfaced in the final report.
type Failure struct {
	ExampleID string
	Kind      FailureKind
	Err       error
}

// Progress counts are monotonically increasing across a run.
type Progress struct {
	Judged  int
	Skipped int
	Failed  int
}

func (p Progress) Total() int {
	return p.Judged + p.Skipped + p.Failed
}

type Config struct {
	// Resume skips examples whose ids are already present in ExistingIDs.
	Resume bool
	// ExistingIDs seeds resumability. It is passed in explicitly so the
	// engine can run against an in-memory sink; it is computed once at
	// start and never re-read during the run.
	ExistingIDs map[string]struct{}
	// MaxAttempts bounds retries of transient judge failures.
	MaxAttempts int
	// Concurrency bounds in-flight judge calls. 1 preserves dataset order.
	Concurrency int
	// CallTimeout applies per judge call, independent of run duration.
	CallTimeout time.Duration
	Backoff     backoff.Policy
	// OnProgress, when set, observes counts after every attempted example.
	OnProgress func(Progress)
}

type Engine struct {
	client Client
	sink   Sink
	cfg    Config
}

func NewEngine(client Client, sink Sink, cfg Config) *Engine {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Backoff == (backoff.Policy{}) {
		cfg.Backoff = backoff.DefaultPolicy()
	}
	return &Engine{client: client, sink: sink, cfg: cfg}
}

// RunReport summarizes one engine run.
type RunReport struct {
	Judged   int
	Skipped  int
	Failures []Failure
}

func (r *RunReport) CountKind(kind FailureKind) int {
	n := 0
	for _, f := range r.Failures {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

type task struct {
	example    dataset.Example
	generation string
}

type outcome struct {
	record  *dataset.JudgedRecord
	failure *Failure
}

// Run judges every dataset example that has a generation and is not
// already present in the existing-ids set, exactly once. Per-example
// failures are collected, not fatal; authentication failures and sink
// write errors abort the run.
func (e *Engine) Run(ctx context.Context, examples []dataset.Example, gens []dataset.Generation) (*RunReport, error) {
	genByID := dataset.IndexGenerations(gens)

	rep := &RunReport{}
	var prog Progress

	// The work list is computed up front: the in-run claim set guarantees
	// at most one dispatch per example_id regardless of concurrency.
	claimed := make(map[string]struct{}, len(examples))
	var tasks []task
	for _, ex := range examples {
		if _, dup := claimed[ex.ExampleID]; dup {
			continue
		}
		claimed[ex.ExampleID] = struct{}{}

		if e.cfg.Resume {
			if _, done := e.cfg.ExistingIDs[ex.ExampleID]; done {
				rep.Skipped++
				prog.Skipped++
				e.notify(prog)
				continue
			}
		}

		gen, ok := genByID[ex.ExampleID]
		if !ok {
			rep.Failures = append(rep.Failures, Failure{
				ExampleID: ex.ExampleID,
				Kind:      FailureMissingGeneration,
				Err:       fmt.Errorf("no generation for example %s", ex.ExampleID),
			})
			prog.Failed++
			e.notify(prog)
			continue
		}

		tasks = append(tasks, task{example: ex, generation: gen.Generation})
	}

	g, gctx := errgroup.WithContext(ctx)
	outcomes := make(chan outcome)

	// Workers fan out judge calls; all appends funnel through the single
	// writer below so records never interleave mid-line.
	g.Go(func() error {
		workers, wctx := errgroup.WithContext(gctx)
		workers.SetLimit(e.cfg.Concurrency)
		defer close(outcomes)

		for _, t := range tasks {
			t := t
			if err := wctx.Err(); err != nil {
				break
			}
			workers.Go(func() error {
				out, err := e.judgeOne(wctx, t)
				if err != nil {
					return err
				}
				select {
				case outcomes <- out:
					return nil
				case <-wctx.Done():
					return wctx.Err()
				}
			})
		}
		return workers.Wait()
	})

	g.Go(func() error {
		for out := range outcomes {
			if out.failure != nil {
				rep.Failures = append(rep.Failures, *out.failure)
				prog.Failed++
			} else {
				if err := e.sink.Append(*out.record); err != nil {
					return fmt.Errorf("append judged record: %w", err)
				}
				rep.Judged++
				prog.Judged++
			}
			e.notify(prog)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return rep, err
	}
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	return rep, nil
}

func (e *Engine) judgeOne(ctx context.Context, t task) (outcome, error) {
	if err := ctx.Err(); err != nil {
		return outcome{}, err
	}
	ex := t.example

	verdict, err := e.judgeWithRetries(ctx, Request{
		Prompt:     ex.Prompt,
		Reference:  ex.Reference,
		Generation: t.generation,
		Category:   string(ex.Category),
	})
	if err != nil {
		if errors.Is(err, ErrAuth) || errors.Is(err, context.Canceled) {
			return outcome{}, err
		}
		kind := FailureJudge
		if errors.Is(err, ErrNoVerdict) {
			kind = FailureParse
		}
		return outcome{failure: &Failure{ExampleID: ex.ExampleID, Kind: kind, Err: err}}, nil
	}

	return outcome{record: &dataset.JudgedRecord{
		ExampleID:   ex.ExampleID,
		Category:    ex.Category,
		Prompt:      ex.Prompt,
		Reference:   ex.Reference,
		Generation:  t.generation,
		Score:       verdict.Score,
		Explanation: verdict.Explanation,
	}}, nil
}

func (e *Engine) judgeWithRetries(ctx context.Context, req Request) (Verdict, error) {
	var lastErr error

	for attempt := 1; attempt <= e.cfg.MaxAttempts; attempt++ {
		callCtx := ctx
		cancel := func() {}
		if e.cfg.CallTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, e.cfg.CallTimeout)
		}
		verdict, err := e.client.Judge(callCtx, req)
		cancel()

		if err == nil {
			return verdict, nil
		}
		lastErr = err

		// Parse failures, auth failures and permanent API errors gain
		// nothing from another identical call.
		if !IsTransient(err) && !errors.Is(err, context.DeadlineExceeded) {
			return Verdict{}, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Verdict{}, ctxErr
		}
		if attempt < e.cfg.MaxAttempts {
			if err := backoff.Sleep(ctx, e.cfg.Backoff, attempt); err != nil {
				return Verdict{}, err
			}
		}
	}
	return Verdict{}, fmt.Errorf("judge failed after %d attempts: %w", e.cfg.MaxAttempts, lastErr)
}

func (e *Engine) notify(p Progress) {
	if e.cfg.OnProgress != nil {
		e.cfg.OnProgress(p)
	}
}
