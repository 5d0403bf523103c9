// Command movierentals-server serves the movie rentals operations over TCP.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"movierentals/config"
	"movierentals/handler"
	"movierentals/logging"
	"movierentals/metrics"
	"movierentals/middleware"
	"movierentals/registry"
	"movierentals/server"
	"movierentals/service"
	"movierentals/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "movierentals-server:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file named by -config, if any, and applies
// the flags that were set on top of it.
func loadConfig(args []string) (config.Config, error) {
	var (
		configPath  string
		addr        string
		db          string
		workers     int
		queue       int
		logLevel    string
		metricsAddr string
		etcd        string
	)
	fs := gnuflag.NewFlagSet("movierentals-server", gnuflag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "YAML config file")
	fs.StringVar(&addr, "addr", "", "listen address")
	fs.StringVar(&db, "db", "", "SQLite database path")
	fs.IntVar(&workers, "workers", 0, "connections served at once")
	fs.IntVar(&queue, "queue", 0, "accepted connections waiting for a worker")
	fs.StringVar(&logLevel, "log-level", "", "log level")
	fs.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.StringVar(&etcd, "etcd", "", "comma separated etcd endpoints to register with")
	if err := fs.Parse(true, args); err != nil {
		return config.Config{}, errors.Trace(err)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, errors.Trace(err)
		}
	}
	fs.Visit(func(f *gnuflag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Address = addr
		case "db":
			cfg.Database.Path = db
		case "workers":
			cfg.Server.Workers = workers
		case "queue":
			cfg.Server.QueueSize = queue
		case "log-level":
			cfg.Log.Level = logLevel
		case "metrics-addr":
			cfg.Metrics.Enabled = true
			cfg.Metrics.Address = metricsAddr
		case "etcd":
			cfg.Etcd.Enabled = true
			cfg.Etcd.Endpoints = strings.Split(etcd, ",")
		}
	})
	return cfg, errors.Trace(cfg.Validate())
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return errors.Trace(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		return errors.Trace(err)
	}
	defer st.Close()

	handlers := handler.New(
		service.NewMovieService(st.Movies),
		service.NewClientService(st.Clients),
		service.NewRentalService(st.Rentals, st.Movies, st.Clients),
		logger)

	mws := []middleware.Middleware{middleware.RecoverMiddleware(logger), middleware.LoggingMiddleware(logger)}
	opts := []server.Option{
		server.WithLogger(logger),
		server.WithWorkers(cfg.Server.Workers),
		server.WithQueueSize(cfg.Server.QueueSize),
		server.WithConnTimeout(cfg.Server.ConnTimeout),
		server.WithUnknownOperationReply(cfg.Server.UnknownOperationReply),
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector := metrics.NewCollector()
		if err := collector.Register(reg); err != nil {
			return errors.Trace(err)
		}
		mws = append(mws, middleware.MetricsMiddleware(collector))
		opts = append(opts, server.WithMetrics(collector))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
	}
	if cfg.Server.RateLimit > 0 {
		mws = append(mws, middleware.RateLimitMiddleware(cfg.Server.RateLimit, cfg.Server.RateBurst))
	}
	if cfg.Server.HandlerTimeout > 0 {
		mws = append(mws, middleware.TimeoutMiddleware(cfg.Server.HandlerTimeout))
	}
	opts = append(opts, server.WithMiddleware(mws...))

	if cfg.Etcd.Enabled {
		reg, err := registry.NewEtcdRegistry(cfg.Etcd.Endpoints, cfg.Etcd.DialTimeout, logger)
		if err != nil {
			return errors.Trace(err)
		}
		defer reg.Close()
		opts = append(opts, server.WithRegistry(reg, cfg.Server.AdvertiseAddr()))
	}

	lis, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return errors.Annotatef(err, "listening on %s", cfg.Server.Address)
	}
	svr := server.NewServer(handlers, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svr.Serve(lis)
	})
	if metricsServer != nil {
		g.Go(func() error {
			logger.Info("serving metrics", zap.String("addr", metricsServer.Addr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Annotate(err, "serving metrics")
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			metricsServer.Shutdown(shutdownCtx)
		}
		return svr.Shutdown(cfg.Server.ShutdownTimeout)
	})
	return g.Wait()
}
