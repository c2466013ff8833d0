package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dncoder14/crimewatch-ai/internal/cache"
	"github.com/dncoder14/crimewatch-ai/internal/console/handler"
	"github.com/dncoder14/crimewatch-ai/internal/console/server"
	"github.com/dncoder14/crimewatch-ai/internal/console/service"
	"github.com/dncoder14/crimewatch-ai/internal/crimedata"
	"github.com/dncoder14/crimewatch-ai/internal/engine"
	"github.com/dncoder14/crimewatch-ai/internal/infra"
)

func main() {
	// 1. Конфиг и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Контекст для управления жизненным циклом фоновых горутин
	// При SIGTERM cancel() остановит слушателей
	appCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 2. Метрики
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := engine.NewMetrics(reg)

	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	// 3. Провайдер прогнозов: модель -> надежность -> (L2 кэш)
	predictor := crimedata.NewPredictor(
		crimedata.WithDelay(cfg.CrimeData.PredictionDelay),
		crimedata.WithPredictionTimeout(cfg.CrimeData.PredictionTimeout),
	)
	var predictions engine.PredictionProvider = engine.NewReliabilityWrapper(predictor, cfg.Reliability, metrics, logger)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		predictionCache := cache.NewPredictionCache(predictions, rdb, cfg.Redis.CacheTTL, metrics, logger)
		// Redis не критичен: без него прогнозы идут напрямую
		if err := predictionCache.Warmup(appCtx); err != nil {
			logger.Warn("prediction cache warm-up failed", zap.Error(err))
		}
		go predictionCache.ListenInvalidations(appCtx)
		predictions = predictionCache
	} else {
		logger.Info("redis address is empty, prediction cache disabled")
	}

	// 4. Сервис и HTTP API
	dashboard := service.NewDashboardService(crimedata.NewGenerator(), predictions, cfg.CrimeData, metrics, logger)
	api := server.NewConsoleServer(logger, metrics,
		handler.NewIncidentHandler(dashboard),
		handler.NewDashboardHandler(dashboard),
		handler.NewPredictionHandler(dashboard),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 5. gRPC health
	grpcSrv, health := server.NewHealthServer()
	go func() {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
		if err != nil {
			logger.Fatal("failed to listen gRPC", zap.Error(err))
		}
		logger.Info("gRPC health server started", zap.String("addr", lis.Addr().String()))
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("failed to serve gRPC", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("crimewatch API started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()
	health.SetServingStatus(server.ServiceName, healthpb.HealthCheckResponse_SERVING)

	// 6. Graceful Shutdown
	<-appCtx.Done()
	logger.Info("crimewatch API stopping...")
	health.Shutdown()

	// Даем 5 секунд на завершение запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	metricsSrv.Shutdown(shutdownCtx)
	grpcSrv.GracefulStop()
	logger.Info("crimewatch API exited properly")
}
