package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	postgres_wrapper "github.com/joripage/ghost-trader/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/ghost-trader/pkg/infra/redis"
)

type SphereConfig struct {
	BaseURL   string `yaml:"base_url"`
	StreamURL string `yaml:"stream_url"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type DropCopyConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ConfigFilepath string `yaml:"config_filepath"`
}

type AppConfig struct {
	ServiceName string `yaml:"service_name"`
	LogLevel    string `yaml:"log_level"`
	Development bool   `yaml:"development"`

	Sphere *SphereConfig `yaml:"sphere"`

	// Journal sinks; every one of them is optional.
	JournalDB *postgres_wrapper.PostgresConfig `yaml:"journal_db"`
	Redis     *redis_wrapper.RedisConfig       `yaml:"redis"`
	Kafka     *KafkaConfig                     `yaml:"kafka"`

	DropCopy *DropCopyConfig `yaml:"drop_copy"`
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
