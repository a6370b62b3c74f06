package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/evalview/internal/config"
	dbRedis "github.com/kailas-cloud/evalview/internal/db/redis"
	domrec "github.com/kailas-cloud/evalview/internal/domain/record"
	logpkg "github.com/kailas-cloud/evalview/internal/logger"
	"github.com/kailas-cloud/evalview/internal/metrics"
	"github.com/kailas-cloud/evalview/internal/pdfasset"
	recordrepo "github.com/kailas-cloud/evalview/internal/repository/record"
	"github.com/kailas-cloud/evalview/internal/storage/asset"
	"github.com/kailas-cloud/evalview/internal/surface/htmlsurface"
	chiTransport "github.com/kailas-cloud/evalview/internal/transport/chi"
	healthuc "github.com/kailas-cloud/evalview/internal/usecase/health"
	"github.com/kailas-cloud/evalview/internal/usecase/session"
	"github.com/kailas-cloud/evalview/internal/version"
)

type recordSource interface {
	Load(ctx context.Context) ([]domrec.Record, error)
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting evalview report server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("report", cfg.Report.HTMLPath),
		zap.String("records_source", cfg.Report.RecordsSource),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	// Record source; the Redis store doubles as the health pinger.
	var source recordSource
	var pinger healthuc.DBPinger
	switch cfg.Report.RecordsSource {
	case config.SourceRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create record store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Record store not ready", zap.Error(err))
		}
		logger.Info("Connected to record store", zap.Strings("addrs", cfg.Redis.Addrs))
		source = recordrepo.NewRedisSource(store, cfg.Redis.KeyPrefix, logger)
		pinger = store
	default:
		source = recordrepo.NewFileSource(cfg.Report.RecordsPath, logger)
	}

	records, err := source.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load records", zap.Error(err))
	}
	thresholds, err := recordrepo.LoadThresholds(cfg.Report.ThresholdsPath)
	if err != nil {
		logger.Fatal("Failed to load thresholds", zap.Error(err))
	}

	assets := buildAssets(ctx, cfg.Assets, logger)

	surface, err := htmlsurface.Load(cfg.Report.HTMLPath, logger.Named("surface"))
	if err != nil {
		logger.Fatal("Failed to load report", zap.Error(err))
	}
	surface.WithMaxNonMatches(cfg.Report.MaxNonMatchesDisplayed).WithAssetURL(asset.URL)

	sess := session.New(surface, pdfasset.NewDecoder(assets), pdfasset.Painter{}, logger.Named("session")).
		WithMetrics(metrics.SelectionsTotal, metrics.ActiveView)
	sess.Viewers().
		WithLayout(cfg.Viewer.MaxWidth, cfg.Viewer.ScaleCap).
		WithMaxDecodes(int64(cfg.Viewer.MaxConcurrentDecodes)).
		WithMetrics(metrics.ViewerTransitionsTotal, metrics.StaleRendersTotal, metrics.PageRenderDuration)

	healthSvc := healthuc.New(sess, pinger)
	server := chiTransport.NewServer(sess, assets, healthSvc, version.String(), logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sess.Run(gctx)
	})
	g.Go(func() error {
		if err := sess.Initialize(gctx, records, thresholds); err != nil {
			return fmt.Errorf("initialize session: %w", err)
		}
		logger.Info("Report initialized", zap.Int("records", len(records)), zap.Int("thresholds", len(thresholds)))
		return nil
	})
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped gracefully")
}

// buildAssets routes s3:// paths to S3 when enabled and everything else to the report directory.
func buildAssets(ctx context.Context, cfg config.AssetsConfig, logger *zap.Logger) *asset.Router {
	local := asset.NewDir(cfg.Root)
	if !cfg.S3.Enabled {
		return asset.NewRouter(local, nil)
	}

	s3, err := asset.NewS3(ctx, asset.S3Config{
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		logger.Fatal("Failed to create S3 asset fetcher", zap.Error(err))
	}
	logger.Info("S3 assets enabled", zap.String("region", cfg.S3.Region))
	return asset.NewRouter(local, s3)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.CodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ctx, reqLogger := logpkg.WithRequest(r.Context(), logger, requestID)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
