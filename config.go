package memobench

import (
	"fmt"
	"log"
	"os"

	"go.yaml.in/yaml/v2"
)

const (
	defaultCacheSize = 1000
	defaultTrials    = 200
	defaultNEnd      = 950
	defaultNStep     = 50
	defaultArraySize = 100_000
	defaultQueries   = 50_000
	defaultMaxValue  = 1000
)

// Config the benchmark configuration.
type Config struct {
	SilentStartUp  bool   `yaml:"silentStartUp"`
	CacheSize      int    `yaml:"cacheSize"`
	Trials         int    `yaml:"trials"`
	NStart         int    `yaml:"nStart"`
	NEnd           int    `yaml:"nEnd"`
	NStep          int    `yaml:"nStep"`
	ArraySize      int    `yaml:"arraySize"`
	Queries        int    `yaml:"queries"`
	MaxValue       int    `yaml:"maxValue"`
	Seed           uint64 `yaml:"seed"`
	LogFilePath    string `yaml:"logFilePath"`
	ChartPath      string `yaml:"chartPath"`
	ArrowPath      string `yaml:"arrowPath"`
	MetricsAddress string `yaml:"metricsAddress"`
}

// CreateConfig creates the default configuration.
func CreateConfig() *Config {
	return &Config{
		CacheSize: defaultCacheSize,
		Trials:    defaultTrials,
		NEnd:      defaultNEnd,
		NStep:     defaultNStep,
		ArraySize: defaultArraySize,
		Queries:   defaultQueries,
		MaxValue:  defaultMaxValue,
	}
}

// LoadConfig reads a YAML file on top of the defaults. An empty path returns
// the defaults.
func LoadConfig(path string) (*Config, error) {
	config := CreateConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return config, nil
}

// Validate checks the configuration for values the runs cannot work with.
func (c *Config) Validate() error {
	if c.CacheSize < 1 {
		return fmt.Errorf("cache size must be at least 1, got %d", c.CacheSize)
	}
	if c.Trials < 1 {
		return fmt.Errorf("trials must be at least 1, got %d", c.Trials)
	}
	if c.NStep < 1 {
		return fmt.Errorf("n step must be at least 1, got %d", c.NStep)
	}
	if c.NEnd < c.NStart {
		return fmt.Errorf("n end %d is before n start %d", c.NEnd, c.NStart)
	}
	if c.ArraySize < 1 {
		return fmt.Errorf("array size must be at least 1, got %d", c.ArraySize)
	}
	if c.Queries < 0 {
		return fmt.Errorf("queries must not be negative, got %d", c.Queries)
	}
	if c.MaxValue < 1 {
		return fmt.Errorf("max value must be at least 1, got %d", c.MaxValue)
	}
	return nil
}

func printConfiguration(config *Config, logger *log.Logger) {
	logger.Printf("cache size: %d", config.CacheSize)
	logger.Printf("trials per n: %d", config.Trials)
	logger.Printf("n range: %d..%d step %d", config.NStart, config.NEnd, config.NStep)
	logger.Printf("array size: %d", config.ArraySize)
	logger.Printf("queries: %d", config.Queries)
	logger.Printf("max value: %d", config.MaxValue)
	logger.Printf("seed: %d", config.Seed)
	logger.Printf("Log file path: %s", config.LogFilePath)
	if len(config.ChartPath) != 0 {
		logger.Printf("chart path: %s", config.ChartPath)
	}
	if len(config.ArrowPath) != 0 {
		logger.Printf("arrow path: %s", config.ArrowPath)
	}
	if len(config.MetricsAddress) != 0 {
		logger.Printf("metrics address: %s", config.MetricsAddress)
	}
}
