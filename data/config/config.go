package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/crux82/ganbert/data"

	"github.com/spf13/viper"
)

// Config stores all configuration of the data preparation step.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Features FeaturesConfig `mapstructure:"features"`
}

// DataConfig selects the dataset root and the task whose processor reads it.
type DataConfig struct {
	Dir  string `mapstructure:"dir"`
	Task string `mapstructure:"task"`
}

// FeaturesConfig controls tokenization and batching.
type FeaturesConfig struct {
	Tokenizer      string `mapstructure:"tokenizer"`
	VocabPath      string `mapstructure:"vocabPath"`
	MaxSeqLength   int    `mapstructure:"maxSeqLength"`
	BatchSize      int    `mapstructure:"batchSize"`
	LowerCase      bool   `mapstructure:"lowerCase"`
	TokenLabelMask bool   `mapstructure:"tokenLabelMask"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("..")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("data.dir", internal.DefaultDataDir)
	v.SetDefault("data.task", internal.DefaultTask)
	v.SetDefault("features.tokenizer", internal.DefaultTokenizer)
	v.SetDefault("features.vocabPath", "")
	v.SetDefault("features.maxSeqLength", internal.DefaultMaxSeqLength)
	v.SetDefault("features.batchSize", internal.DefaultBatchSize)
	v.SetDefault("features.lowerCase", true)
	v.SetDefault("features.tokenLabelMask", false)

	// e.g. features.maxSeqLength becomes GANBERT_FEATURES_MAXSEQLENGTH
	v.SetEnvPrefix(internal.DefaultAppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return &AppConfig, nil
}

// Validate rejects settings that would make every feature vector malformed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Task) == "" {
		return fmt.Errorf("data.task cannot be empty")
	}
	// [CLS] and [SEP] need room
	if c.Features.MaxSeqLength < 2 {
		return fmt.Errorf("features.maxSeqLength must be at least 2, got %d", c.Features.MaxSeqLength)
	}
	if c.Features.BatchSize <= 0 {
		return fmt.Errorf("features.batchSize must be positive, got %d", c.Features.BatchSize)
	}
	return nil
}
