// Package config loads engine configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	GRPCAddr    string `mapstructure:"grpc_addr"`
	MetricsAddr string `mapstructure:"metrics_addr"`

	WALDir         string `mapstructure:"wal_dir"`
	WALSegmentSize int64  `mapstructure:"wal_segment_size"`
	OutboxDir      string `mapstructure:"outbox_dir"`
	SnapshotDir    string `mapstructure:"snapshot_dir"`

	Brokers    []string `mapstructure:"brokers"`
	TradeTopic string   `mapstructure:"trade_topic"`
	DepthTopic string   `mapstructure:"depth_topic"`

	EpochInterval     time.Duration `mapstructure:"epoch_interval"`
	SnapshotInterval  time.Duration `mapstructure:"snapshot_interval"`
	BroadcastInterval time.Duration `mapstructure:"broadcast_interval"`
	DepthInterval     time.Duration `mapstructure:"depth_interval"`

	RingSize uint64 `mapstructure:"ring_size"`
}

// Load reads config from the given file (optional) with LOB_* env
// overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("grpc_addr", ":50051")
	v.SetDefault("metrics_addr", ":9099")
	v.SetDefault("wal_dir", "./data/wal")
	v.SetDefault("wal_segment_size", 2<<20)
	v.SetDefault("outbox_dir", "./data/outbox")
	v.SetDefault("snapshot_dir", "./data/snapshots")
	v.SetDefault("brokers", []string{"localhost:9092"})
	v.SetDefault("trade_topic", "lob.trades")
	v.SetDefault("depth_topic", "lob.depth")
	v.SetDefault("epoch_interval", 2*time.Second)
	v.SetDefault("snapshot_interval", time.Minute)
	v.SetDefault("broadcast_interval", 250*time.Millisecond)
	v.SetDefault("depth_interval", time.Second)
	v.SetDefault("ring_size", 1<<18)

	v.SetEnvPrefix("LOB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
