// Command movierentals-client is the interactive console for a movie
// rentals server.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"go.uber.org/zap"

	"movierentals/client"
	"movierentals/config"
	"movierentals/loadbalance"
	"movierentals/logging"
	"movierentals/registry"
	"movierentals/server"
	"movierentals/transport"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "movierentals-client:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configPath string
		addr       string
		workers    int
		logLevel   string
		etcd       string
		balancer   string
	)
	fs := gnuflag.NewFlagSet("movierentals-client", gnuflag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "YAML config file")
	fs.StringVar(&addr, "addr", "", "server address")
	fs.IntVar(&workers, "workers", 0, "concurrent calls")
	fs.StringVar(&logLevel, "log-level", "", "log level")
	fs.StringVar(&etcd, "etcd", "", "comma separated etcd endpoints; discovers servers instead of dialing --addr")
	fs.StringVar(&balancer, "balancer", "", "RoundRobin, WeightedRandom or ConsistentHash")
	if err := fs.Parse(true, args); err != nil {
		return errors.Trace(err)
	}

	cfg := config.Default()
	cfg.Log.Level = "warn"
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return errors.Trace(err)
		}
	}
	fs.Visit(func(f *gnuflag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Client.Address = addr
		case "workers":
			cfg.Client.Workers = workers
		case "log-level":
			cfg.Log.Level = logLevel
		case "etcd":
			cfg.Etcd.Enabled = true
			cfg.Etcd.Endpoints = strings.Split(etcd, ",")
		case "balancer":
			cfg.Client.Balancer = balancer
		}
	})
	if err := cfg.Validate(); err != nil {
		return errors.Trace(err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return errors.Trace(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var resolver transport.AddrResolver = transport.StaticAddr(cfg.Client.Address)
	if cfg.Etcd.Enabled {
		reg, err := registry.NewEtcdRegistry(cfg.Etcd.Endpoints, cfg.Etcd.DialTimeout, logger)
		if err != nil {
			return errors.Trace(err)
		}
		defer reg.Close()
		lb, err := loadbalance.New(cfg.Client.Balancer)
		if err != nil {
			return errors.Trace(err)
		}
		r := transport.NewResolver(reg, server.ServiceName, lb, logger)
		if err := r.Start(ctx); err != nil {
			return errors.Trace(err)
		}
		resolver = r
		logger.Info("discovering servers", zap.Strings("etcd", cfg.Etcd.Endpoints), zap.String("balancer", lb.Name()))
	}

	c := client.New(transport.NewClientTransport(resolver, logger),
		client.WithWorkers(cfg.Client.Workers),
		client.WithCallTimeout(cfg.Client.CallTimeout),
		client.WithLogger(logger))
	defer c.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return errors.Annotate(err, "starting console")
	}
	defer rl.Close()

	return newConsole(rl, c, rl.Stdout(), rl.Stderr()).Run()
}
