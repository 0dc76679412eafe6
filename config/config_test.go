package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, ":50051", cfg.GRPCAddr)
	require.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	require.Equal(t, "lob.trades", cfg.TradeTopic)
	require.Equal(t, time.Minute, cfg.SnapshotInterval)
	require.Equal(t, uint64(1<<18), cfg.RingSize)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("grpc_addr: \":6000\"\nwal_dir: /tmp/wal\nepoch_interval: 5s\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":6000", cfg.GRPCAddr)
	require.Equal(t, "/tmp/wal", cfg.WALDir)
	require.Equal(t, 5*time.Second, cfg.EpochInterval)
	// Untouched keys keep their defaults.
	require.Equal(t, ":9099", cfg.MetricsAddr)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
