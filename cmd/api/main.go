package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"follow-analyzer/internal/adapters/markup"
	"follow-analyzer/internal/domain"
	"follow-analyzer/internal/infra/cache"
	"follow-analyzer/internal/infra/config"
	httpinfra "follow-analyzer/internal/infra/http"
	applog "follow-analyzer/internal/infra/log"
	"follow-analyzer/internal/infra/metrics"
	"follow-analyzer/internal/usecase/extract"
	"follow-analyzer/internal/usecase/report"
)

const redisKeyPrefix = "follow-analyzer:analysis:"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), cfg.MetricsAddr)

	sessions := newSessionCache(ctx, cfg, logger)

	clock := domain.SystemClock{}
	parser := markup.NewGoquery(cfg.Export.ContainerClass, cfg.Export.ProfileDomain)
	extractor := extract.NewService(parser, extract.NewDateParser(cfg.Location()), clock)
	reports := report.NewService(extractor, sessions, cfg.Session.TTL, clock, logger.With().Str("component", "report").Logger())

	server := httpinfra.NewServer(logger.With().Str("component", "http").Logger())
	httpinfra.NewAnalysisHandler(reports, cfg.MaxUploadBytes, clock, logger.With().Str("component", "analysis_api").Logger()).Mount(server.Router)

	go func() {
		logger.Info().Int("port", cfg.Port).Msg("api: старт")
		if err := server.Start(":" + strconv.Itoa(cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("api: сервер остановлен")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("api: остановка")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("api: graceful shutdown failed")
	}
}

// newSessionCache выбирает Redis, если задан REDIS_ADDR, иначе кэш в памяти процесса.
func newSessionCache(ctx context.Context, cfg config.AppConfig, logger zerolog.Logger) domain.Cache {
	if cfg.RedisAddr == "" {
		logger.Info().Int("size", cfg.Session.CacheSize).Dur("ttl", cfg.Session.TTL).Msg("api: сессии хранятся в памяти")
		return cache.NewMemory(cfg.Session.CacheSize, cfg.Session.TTL, nil)
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	redisCache := cache.NewRedis(client, redisKeyPrefix)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("api: нет подключения к Redis")
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("api: сессии хранятся в Redis")
	return redisCache
}
