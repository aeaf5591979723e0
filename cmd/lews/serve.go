package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ZanzyTHEbar/lews/internal/api"
	"github.com/ZanzyTHEbar/lews/internal/cache"
	"github.com/ZanzyTHEbar/lews/internal/monitoring"
	"github.com/ZanzyTHEbar/lews/internal/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port > 0 {
				a.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "override server.port")
	return cmd
}

// server is a configured http.Server and the resources to release after it stops
type server struct {
	http    *http.Server
	limiter *ratelimit.RateLimiter
	cache   *cache.Cache
	redis   *ratelimit.RedisClient
}

func (s *server) close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
	if s.cache != nil {
		s.cache.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
}

func (a *app) buildServer(ctx context.Context) (*server, error) {
	cfg := a.cfg
	gin.SetMode(cfg.Server.Mode)

	store, err := a.loadStore()
	if err != nil {
		return nil, err
	}
	engine, err := a.newEngine(store)
	if err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()
	srv := &server{}

	if cfg.RateLimit.Enabled {
		redisClient, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.logger.Warn("Redis unavailable, rate limiting in memory", "addr", cfg.Redis.Addr, "error", err)
		}
		srv.redis = redisClient
		srv.limiter = ratelimit.NewRateLimiter(redisClient, cfg.Limiter(), metrics)
	}
	if cfg.Cache.Enabled {
		srv.cache = cache.NewCache(cfg.Cache.TTL)
	}

	router := api.NewRouter(api.Deps{
		Engine:      engine,
		Store:       store,
		Metrics:     metrics,
		Logger:      a.logger,
		Limiter:     srv.limiter,
		Cache:       srv.cache,
		Security:    cfg.Security(),
		Compression: cfg.Compressor(),
		Version:     Version,
	})

	srv.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	a.logger.SystemLogger("startup", fmt.Sprintf("%d trajectories across %d species, baseline of %d points",
		store.Count(), len(store.Species()), store.Baseline().Len()))
	return srv, nil
}

func (a *app) serve(ctx context.Context) error {
	srv, err := a.buildServer(ctx)
	if err != nil {
		return err
	}
	defer srv.close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Starting server", "addr", srv.http.Addr, "mode", a.cfg.Server.Mode)
		if err := srv.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("Server exited")
	return nil
}
