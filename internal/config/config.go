package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type CloudWatch struct {
	LogGroup  string `mapstructure:"log_group"`
	LogStream string `mapstructure:"log_stream"`
}

type AWS struct {
	Endpoint string `mapstructure:"endpoint"`
}

type Config struct {
	// Targets is a comma-separated list of target names, e.g. "stdout,cloudwatch"
	Targets    string     `mapstructure:"targets"`
	CloudWatch CloudWatch `mapstructure:"cloudwatch"`
	AWS        AWS        `mapstructure:"aws"`
}

// Load reads configuration from the environment, and additionally from a yaml
// file when one is given (CLI mode). Environment variables win over defaults.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetDefault("targets", "stdout")
	v.SetDefault("cloudwatch.log_group", "")
	v.SetDefault("cloudwatch.log_stream", "")
	v.SetDefault("aws.endpoint", "")

	_ = v.BindEnv("targets", "TARGETS")
	_ = v.BindEnv("cloudwatch.log_group", "CLOUDWATCH_LOG_GROUP")
	_ = v.BindEnv("cloudwatch.log_stream", "CLOUDWATCH_LOG_STREAM")
	_ = v.BindEnv("aws.endpoint", "AWS_ENDPOINT")

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
