package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	dispatcherx "github.com/tanpawarit/career-handoff/agent/agents/dispatcher"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	statex "github.com/tanpawarit/career-handoff/agent/state"
	metricsx "github.com/tanpawarit/career-handoff/pkg/metrics"
)

var separator = strings.Repeat("=", 60)

type Dispatcher interface {
	Dispatch(ctx context.Context, query string, session statex.SessionContext) (contractx.DispatchResult, error)
}

type Option func(*Runner)

// WithOutput redirects the advice report. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

func WithMetrics(m *metricsx.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

func WithRunIDs(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newRunID = fn
		}
	}
}

// Runner resolves queries strictly one after another. Each query gets its
// own SessionContext and its own deadline.
type Runner struct {
	dispatcher Dispatcher
	profile    statex.Profile
	timeout    time.Duration

	out      io.Writer
	metrics  *metricsx.Metrics
	newRunID func() string
	now      func() time.Time
}

func New(d Dispatcher, cfg Config, opts ...Option) (*Runner, error) {
	if d == nil {
		return nil, errors.New("dispatcher is required")
	}
	if cfg.QueryTimeout <= 0 {
		return nil, fmt.Errorf("%w: query timeout must be positive", contractx.ErrConfiguration)
	}

	r := &Runner{
		dispatcher: d,
		profile:    cfg.Profile,
		timeout:    cfg.QueryTimeout,
		out:        os.Stdout,
		newRunID:   uuid.NewString,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Run processes every query and never stops early: a failed query is
// reported and logged, then the next one starts.
func (r *Runner) Run(ctx context.Context, queries []string) []Outcome {
	outcomes := make([]Outcome, 0, len(queries))
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("remaining", len(queries)-len(outcomes)).Msg("batch cancelled")
			break
		}
		outcomes = append(outcomes, r.RunQuery(ctx, q))
	}
	return outcomes
}

func (r *Runner) RunQuery(ctx context.Context, query string) Outcome {
	start := r.now()
	intent, _ := dispatcherx.Classify(query)
	out := Outcome{
		RunID:  r.newRunID(),
		Query:  query,
		Intent: intent,
	}

	logger := log.With().
		Str("run_id", out.RunID).
		Str("query", query).
		Str("intent", string(intent)).
		Logger()

	fmt.Fprintln(r.out, "\n"+separator)
	fmt.Fprintf(r.out, "Processing query: %s\n", query)

	out.Result, out.Err = r.dispatch(ctx, query)
	out.Label = Classify(out.Err)
	elapsed := r.now().Sub(start)

	specialist := out.Result.SpecialistName
	if specialist == "" {
		specialist = intent.AgentName()
	}
	r.metrics.ObserveDispatch(specialist, out.Label, elapsed)

	if out.Err != nil {
		logger.Error().
			Err(out.Err).
			Str("specialist", specialist).
			Str("outcome", out.Label).
			Dur("elapsed", elapsed).
			Msg("query failed")
		fmt.Fprintf(r.out, "[ERROR] Failed to process query: %v\n", out.Err)
		return out
	}

	logger.Info().
		Str("specialist", specialist).
		Dur("elapsed", elapsed).
		Msg("query completed")
	fmt.Fprintf(r.out, "Agent involved: %s\n", out.Result.SpecialistName)
	fmt.Fprintf(r.out, "Advice: %s\n", out.Result.ResponseText)
	return out
}

func (r *Runner) dispatch(ctx context.Context, query string) (contractx.DispatchResult, error) {
	sc, err := statex.FromProfile(r.profile)
	if err != nil {
		return contractx.DispatchResult{}, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	qctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.dispatcher.Dispatch(qctx, query, sc)
	if err != nil {
		if errors.Is(qctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: query exceeded %s: %w", context.DeadlineExceeded, r.timeout, err)
		}
		return contractx.DispatchResult{}, err
	}
	return res, nil
}
