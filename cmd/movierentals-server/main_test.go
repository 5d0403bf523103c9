package main

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "server.yaml")
	c.Assert(os.WriteFile(path, []byte("server:\n  address: 0.0.0.0:4000\n  workers: 2\ndatabase:\n  path: file.db\n"), 0o600), qt.IsNil)

	cfg, err := loadConfig([]string{"--config", path, "--workers", "6", "--etcd=a:2379,b:2379"})
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Server.Address, qt.Equals, "0.0.0.0:4000")
	c.Assert(cfg.Server.Workers, qt.Equals, 6)
	c.Assert(cfg.Database.Path, qt.Equals, "file.db")
	c.Assert(cfg.Etcd.Enabled, qt.IsTrue)
	c.Assert(cfg.Etcd.Endpoints, qt.DeepEquals, []string{"a:2379", "b:2379"})
	c.Assert(cfg.Metrics.Enabled, qt.IsFalse)
}

func TestLoadConfigDefaults(t *testing.T) {
	c := qt.New(t)
	cfg, err := loadConfig([]string{"--metrics-addr=:9100"})
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Server.Address, qt.Equals, "localhost:1234")
	c.Assert(cfg.Metrics.Enabled, qt.IsTrue)
	c.Assert(cfg.Metrics.Address, qt.Equals, ":9100")
}

func TestLoadConfigInvalid(t *testing.T) {
	c := qt.New(t)
	_, err := loadConfig([]string{"--workers=-1"})
	c.Assert(err, qt.ErrorMatches, `.*server workers -1.*`)
}
