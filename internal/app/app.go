package app

import (
	"context"
	"time"

	"icebreak/internal/cache"
	"icebreak/internal/config"
	"icebreak/internal/generation"
	"icebreak/internal/llm"
	"icebreak/internal/metrics"
	"icebreak/internal/scoring"
	"icebreak/internal/service"
	"icebreak/internal/transport/rest"
	"icebreak/internal/transport/ws"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App wires the scorers, generation controller and services from one config.
// History and Library are nil when Redis is not configured.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	Registry   *prometheus.Registry
	Completer  llm.ChatCompleter
	Redis      *redis.Client
	Confidence *service.ConfidenceService
	Icebreaker *service.IcebreakerService
	Interests  *service.InterestService
	History    *service.HistoryService
	Library    *service.LibraryService
	WSHub      *ws.Hub
}

// New builds the application. A configured Redis must answer PING.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)
	completer := llm.New(cfg.AI)

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   m,
		Registry:  reg,
		Completer: completer,
		WSHub:     ws.NewHub(logger),
	}

	local := scoring.NewLocalScorer()
	semantic := scoring.NewSemanticScorer(completer, cfg.AI.Models.Score, m)
	a.Confidence = service.NewConfidenceService(local, semantic, logger, m)

	controller := generation.NewController(completer, cfg.AI.Models.Generation,
		generation.PolicyFromConfig(cfg.AI.Generation), logger, m)
	a.Icebreaker = service.NewIcebreakerService(controller, logger)
	a.Interests = service.NewInterestService(completer, cfg.AI.Models.Extract, logger, m)

	if cfg.HistoryEnabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, errors.Wrapf(err, "failed to ping Redis at %s", cfg.RedisAddr())
		}
		a.Redis = rdb

		historyCache := cache.NewHistoryCache(rdb, cfg.History.TTL, cfg.History.MaxItems)
		a.Confidence.SetHistory(historyCache)
		a.Icebreaker.SetHistory(historyCache)
		a.History = service.NewHistoryService(historyCache)
		a.Library = service.NewLibraryService(cache.NewLibraryCache(rdb, cfg.History.TTL))
	}

	return a, nil
}

// Container exposes the app to the REST router
func (a *App) Container() *rest.Container {
	return &rest.Container{
		Config:            a.Config,
		Logger:            a.Logger,
		Metrics:           a.Metrics,
		Gatherer:          a.Registry,
		Completer:         a.Completer,
		ConfidenceService: a.Confidence,
		IcebreakerService: a.Icebreaker,
		InterestService:   a.Interests,
		HistoryService:    a.History,
		LibraryService:    a.Library,
		WSHub:             a.WSHub,
	}
}

// Close releases the Redis connection
func (a *App) Close() error {
	if a.Redis == nil {
		return nil
	}
	return a.Redis.Close()
}
