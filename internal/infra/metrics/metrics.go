package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"follow-analyzer/internal/domain"
)

var (
	ExtractEntries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "extract_entries_total",
		Help: "Извлечённые записи выгрузки",
	}, []string{"list"})
	ExtractSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "extract_entries_skipped_total",
		Help: "Пропущенные контейнеры без ссылки, имени или даты",
	}, []string{"list"})
	ExtractDatesEstimated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "extract_dates_estimated_total",
		Help: "Записи, для которых дата подставлена временем извлечения",
	}, []string{"list"})

	AnalysisBuildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_build_seconds",
		Help:    "Время построения анализа пары выгрузок",
		Buckets: prometheus.DefBuckets,
	})
	AnalysisRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analysis_requests_total",
		Help: "Общее количество запросов на анализ",
	})

	SessionCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "session_cache_total",
		Help: "Операции с кэшем сессий анализа",
	}, []string{"op", "result"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		ExtractEntries,
		ExtractSkipped,
		ExtractDatesEstimated,
		AnalysisBuildSeconds,
		AnalysisRequestsTotal,
		SessionCacheTotal,
	)
}

// StartServer запускает HTTP сервер с эндпоинтом /metrics.
func StartServer(ctx context.Context, logger zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	shutdownCtx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-ctx.Done():
		case <-shutdownCtx.Done():
		}
		shutdownTimeout, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer timeoutCancel()
		if err := srv.Shutdown(shutdownTimeout); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: graceful shutdown failed")
		}
	}()

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics: server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: server stopped")
		}
		cancel()
	}()
}

// ObserveExtraction учитывает результат извлечения одного списка.
func ObserveExtraction(list string, extracted, skipped, estimated int) {
	if list == "" {
		list = "unknown"
	}
	ExtractEntries.WithLabelValues(list).Add(float64(extracted))
	ExtractSkipped.WithLabelValues(list).Add(float64(skipped))
	ExtractDatesEstimated.WithLabelValues(list).Add(float64(estimated))
}

// ObserveAnalysis записывает длительность построения анализа.
func ObserveAnalysis(start time.Time) {
	AnalysisBuildSeconds.Observe(time.Since(start).Seconds())
}

// IncAnalysisRequests увеличивает общий счётчик запросов на анализ.
func IncAnalysisRequests() {
	AnalysisRequestsTotal.Inc()
}

// ObserveCache учитывает операцию с кэшем сессий по её ошибке.
func ObserveCache(op string, err error) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrCacheMiss):
		result = "miss"
	case err != nil:
		result = "error"
	}
	SessionCacheTotal.WithLabelValues(op, result).Inc()
}
