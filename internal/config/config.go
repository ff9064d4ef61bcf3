package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when reading the environment,
// so grpc-addr is read from KB_GRPC_ADDR.
const EnvPrefix = "KB"

// Keys.
const (
	KeyGRPCAddr        = "grpc-addr"
	KeySpannerDatabase = "spanner-database"
	KeyLogLevel        = "log-level"
	KeyLogJSON         = "log-json"
	KeyRulesFile       = "rules-file"
)

const (
	DefaultGRPCAddr        = ":50051"
	DefaultSpannerDatabase = "projects/test-project/instances/emulator-instance/databases/test-db"
	DefaultLogLevel        = "info"
)

// Config is the runtime configuration of the server and the CLI.
type Config struct {
	GRPCAddr        string
	SpannerDatabase string
	LogLevel        string
	LogJSON         bool
	// RulesFile optionally replaces the built-in remap rules.
	RulesFile string
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyGRPCAddr, DefaultGRPCAddr)
	v.SetDefault(KeySpannerDatabase, DefaultSpannerDatabase)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyRulesFile, "")
	return v
}

// Load reads path, if set, into v and returns the resolved configuration.
// Environment variables take precedence over the file.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		GRPCAddr:        v.GetString(KeyGRPCAddr),
		SpannerDatabase: v.GetString(KeySpannerDatabase),
		LogLevel:        v.GetString(KeyLogLevel),
		LogJSON:         v.GetBool(KeyLogJSON),
		RulesFile:       v.GetString(KeyRulesFile),
	}
	if cfg.GRPCAddr == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyGRPCAddr)
	}
	return cfg, nil
}
