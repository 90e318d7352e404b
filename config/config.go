package config

import (
	"os"

	"github.com/joripage/nbbo-book/pkg/feed"
	postgres_wrapper "github.com/joripage/nbbo-book/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/nbbo-book/pkg/infra/redis"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type FixConfig struct {
	ConfigFilepath string `yaml:"config_filepath"`
}

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	FeedDB      *postgres_wrapper.PostgresConfig `yaml:"feed_db"`
	Redis       *redis_wrapper.RedisConfig       `yaml:"redis"`
	Publisher   *feed.PublisherConfig            `yaml:"publisher"`
	Fix         *FixConfig                       `yaml:"fix"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
