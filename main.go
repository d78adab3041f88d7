package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"
	dispatcherx "github.com/tanpawarit/career-handoff/agent/agents/dispatcher"
	specialistx "github.com/tanpawarit/career-handoff/agent/agents/specialist"
	catalogx "github.com/tanpawarit/career-handoff/agent/catalog"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	llmx "github.com/tanpawarit/career-handoff/agent/llm"
	"github.com/tanpawarit/career-handoff/agent/runner"
	toolx "github.com/tanpawarit/career-handoff/agent/tool"
	configx "github.com/tanpawarit/career-handoff/pkg/config"
	_ "github.com/tanpawarit/career-handoff/pkg/logger/autoload"
	metricsx "github.com/tanpawarit/career-handoff/pkg/metrics"
	openrouterx "github.com/tanpawarit/career-handoff/pkg/openrouter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	llmCfg, err := llmx.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid provider configuration")
	}
	runCfg, err := runner.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid runner configuration")
	}

	catalog, closeCatalog := loadCatalog(ctx)
	defer closeCatalog()

	if llmCfg.Preflight {
		preflight(ctx, llmCfg)
	}

	metrics := metricsx.New()
	toolbox := toolx.NewToolbox(catalog, toolx.WithCallObserver(metrics.ObserveToolCall))

	registry, err := specialistx.NewRegistry(ctx, llmCfg, toolbox)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build agents")
	}
	dispatcher, err := dispatcherx.New(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build dispatcher")
	}
	r, err := runner.New(dispatcher, runCfg, runner.WithMetrics(metrics))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build runner")
	}

	outcomes := r.Run(ctx, runner.DefaultQueries)

	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
	}
	log.Info().
		Int("queries", len(outcomes)).
		Int("failed", failed).
		Msg("batch finished")

	if runCfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(runCfg.MetricsFile); err != nil {
			log.Warn().Err(err).Str("path", runCfg.MetricsFile).Msg("failed to write metrics")
		}
	}
}

// loadCatalog reads the catalog from Postgres when CATALOG_DSN is set and
// falls back to the built-in tables otherwise.
func loadCatalog(ctx context.Context) (*catalogx.Store, func()) {
	pgCfg, err := configx.New[catalogx.PostgresConfig]("CATALOG")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid catalog configuration")
	}
	if !pgCfg.Enabled() {
		return catalogx.Default(), func() {}
	}

	db, err := catalogx.OpenPostgres(*pgCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog database")
	}

	loadCtx, cancel := context.WithTimeout(ctx, pgCfg.Timeout)
	defer cancel()

	store, err := catalogx.LoadPostgres(loadCtx, db)
	if err != nil {
		_ = db.Close()
		log.Fatal().Err(err).Msg("failed to load catalog")
	}
	log.Info().
		Int("roles", len(store.Roles())).
		Int("jobs", len(store.Jobs())).
		Msg("catalog loaded from postgres")

	return store, func() { _ = db.Close() }
}

// preflight is advisory: a failure is logged and the batch still runs, each
// query then reporting its own provider error.
func preflight(ctx context.Context, cfg llmx.Config) {
	modelCfg := cfg.OpenRouterFor(contractx.IntentNone)

	pctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := openrouterx.Preflight(pctx, openrouterx.NewClient(modelCfg), modelCfg.Model); err != nil {
		log.Warn().Err(err).Str("model", modelCfg.Model).Msg("model preflight failed")
		return
	}
	log.Info().Str("model", modelCfg.Model).Msg("model preflight ok")
}
