package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corrlab/internal/cache"
	"corrlab/internal/commentary"
	"corrlab/internal/config"
	"corrlab/internal/handler"
	"corrlab/internal/metrics"
	"corrlab/internal/provider"
	"corrlab/internal/service"
	"corrlab/internal/source"
	"corrlab/pkg/logging"
	"corrlab/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "corrlab/docs"
)

var version = "dev"

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	setupLoggingFunc = logging.Setup
	initTracerFunc   = tracing.InitTracer
	connectRedisFunc = cache.Connect
	newRegistryFunc  = func() (prometheus.Registerer, prometheus.Gatherer) {
		return prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	}
	newEquityProviderFunc = func(tracer trace.Tracer) source.HistoryProvider {
		return provider.NewYahooProvider(tracer)
	}
	newCryptoProviderFunc = func(tracer trace.Tracer, apiKey string) source.HistoryProvider {
		return provider.NewCoinGeckoProvider(tracer, apiKey)
	}
	newLLMClientFunc       = commentary.NewOpenAIClient
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           corrlab API
// @version         1.0
// @description     Correlates two daily data sources over a date range and comments on the result.

// @host      localhost:8080
// @BasePath  /
func main() {
	if err := loadEnvFunc(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := loadConfigFunc()
	setupLoggingFunc(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	reg, gatherer := newRegistryFunc()
	recorder := metrics.New(reg)

	// Live feeds for the market sources; nil providers mean synthetic only.
	var equity, crypto source.HistoryProvider
	if cfg.LiveDataEnabled {
		equity = newEquityProviderFunc(tracer)
		crypto = newCryptoProviderFunc(tracer, cfg.CoinGeckoAPIKey)
	} else {
		log.Info().Msg("live data disabled, market sources use synthetic series")
	}
	resolver := source.NewResolver(tracer, equity, crypto, cfg.LiveFetchTimeout(), recorder)
	analysisService := service.NewAnalysisService(tracer, resolver, recorder)

	var llm commentary.LLMClient
	if cfg.OpenAIAPIKey != "" {
		llm = newLLMClientFunc(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	}
	commentaryService := commentary.NewService(tracer, llm, cfg.OpenAIModel, cfg.CommentaryTimeout(), recorder)

	h := handler.New(tracer, analysisService, commentaryService)

	if cfg.RedisEnabled {
		redisClient, err := connectRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, commentary rate limiting disabled")
		} else {
			defer redisClient.Close()
			h.SetCommentaryLimiter(cache.NewWindowLimiter(redisClient, "commentary", cfg.CommentaryRateLimitPerMin, time.Minute))
		}
	}

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := startHTTPServerFunc(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
