// Package config loads movie rentals settings from a YAML file layered over
// built-in defaults.
package config

import (
	"os"
	"runtime"
	"time"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Log      Log      `yaml:"log"`
	Metrics  Metrics  `yaml:"metrics"`
	Etcd     Etcd     `yaml:"etcd"`
	Client   Client   `yaml:"client"`
}

type Server struct {
	Address string `yaml:"address"`
	// AdvertiseAddress is stored in the registry; defaults to Address.
	AdvertiseAddress      string        `yaml:"advertise_address"`
	Workers               int           `yaml:"workers"`
	QueueSize             int           `yaml:"queue_size"`
	ConnTimeout           time.Duration `yaml:"conn_timeout"`
	HandlerTimeout        time.Duration `yaml:"handler_timeout"` // 0 disables
	RateLimit             float64       `yaml:"rate_limit"`      // requests per second, 0 disables
	RateBurst             int           `yaml:"rate_burst"`
	UnknownOperationReply bool          `yaml:"unknown_operation_reply"`
	ShutdownTimeout       time.Duration `yaml:"shutdown_timeout"`
}

type Database struct {
	Path string `yaml:"path"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type Etcd struct {
	Enabled     bool          `yaml:"enabled"`
	Endpoints   []string      `yaml:"endpoints"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

type Client struct {
	Address     string        `yaml:"address"`
	Workers     int           `yaml:"workers"`
	CallTimeout time.Duration `yaml:"call_timeout"`
	Balancer    string        `yaml:"balancer"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Server: Server{
			Address:         "localhost:1234",
			Workers:         runtime.NumCPU(),
			QueueSize:       64,
			ConnTimeout:     30 * time.Second,
			RateBurst:       1,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: Database{Path: "movierentals.db"},
		Log:      Log{Level: "info"},
		Metrics:  Metrics{Address: "localhost:9090"},
		Etcd: Etcd{
			Endpoints:   []string{"localhost:2379"},
			DialTimeout: 5 * time.Second,
		},
		Client: Client{
			Address:     "localhost:1234",
			Workers:     runtime.NumCPU(),
			CallTimeout: 30 * time.Second,
			Balancer:    "RoundRobin",
		},
	}
}

// Load reads the YAML file at path over Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Annotate(err, "opening config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Annotatef(err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Annotatef(err, "config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Server.Address == "":
		return errors.NotValidf("empty server address")
	case c.Server.Workers < 1:
		return errors.NotValidf("server workers %d", c.Server.Workers)
	case c.Server.QueueSize < 0:
		return errors.NotValidf("server queue size %d", c.Server.QueueSize)
	case c.Server.RateLimit < 0:
		return errors.NotValidf("rate limit %v", c.Server.RateLimit)
	case c.Server.RateLimit > 0 && c.Server.RateBurst < 1:
		return errors.NotValidf("rate burst %d", c.Server.RateBurst)
	case c.Database.Path == "":
		return errors.NotValidf("empty database path")
	case c.Metrics.Enabled && c.Metrics.Address == "":
		return errors.NotValidf("empty metrics address")
	case c.Etcd.Enabled && len(c.Etcd.Endpoints) == 0:
		return errors.NotValidf("etcd enabled without endpoints")
	case c.Client.Workers < 1:
		return errors.NotValidf("client workers %d", c.Client.Workers)
	}
	return nil
}

// AdvertiseAddr is the address other processes should dial.
func (s Server) AdvertiseAddr() string {
	if s.AdvertiseAddress != "" {
		return s.AdvertiseAddress
	}
	return s.Address
}
