package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"primegaps/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths    PathConfig
	Fetch    FetchConfig
	Analysis AnalysisConfig
	RMT      RMTConfig
	Server   ServerConfig
}

// PathConfig holds file system paths for run artifacts
type PathConfig struct {
	DataDir    string // raw/ and processed/ live underneath
	FiguresDir string
	SummaryDir string
}

// RawDir returns the directory for raw stage outputs
func (p PathConfig) RawDir() string {
	return p.DataDir + "/raw"
}

// ProcessedDir returns the directory for processed stage outputs
func (p PathConfig) ProcessedDir() string {
	return p.DataDir + "/processed"
}

// FetchConfig holds sequence-archive fetch settings
type FetchConfig struct {
	BaseURL  string
	Timeout  time.Duration
	MaxTerms int
}

// AnalysisConfig holds numeric analysis settings
type AnalysisConfig struct {
	SieveLimit int // upper bound for prime generation
	MaxModulus int // progressions are swept for q in 3..MaxModulus
}

// RMTConfig holds random-matrix simulation settings
type RMTConfig struct {
	MatrixSizes []int
	Trials      int
	Seed        int64
}

// ServerConfig holds results-viewer settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Paths:    loadPathConfig(),
		Fetch:    loadFetchConfig(),
		Analysis: loadAnalysisConfig(),
		RMT:      loadRMTConfig(),
		Server:   loadServerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadPathConfig() PathConfig {
	return PathConfig{
		DataDir:    getEnvOrDefault("DATA_DIR", "data"),
		FiguresDir: getEnvOrDefault("FIGURES_DIR", "figures"),
		SummaryDir: getEnvOrDefault("SUMMARY_DIR", "."),
	}
}

func loadFetchConfig() FetchConfig {
	return FetchConfig{
		BaseURL:  getEnvOrDefault("OEIS_BASE_URL", "https://oeis.org"),
		Timeout:  time.Duration(getEnvIntOrDefault("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		MaxTerms: getEnvIntOrDefault("FETCH_MAX_TERMS", 200),
	}
}

func loadAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		SieveLimit: getEnvIntOrDefault("SIEVE_LIMIT", 1_000_000),
		MaxModulus: getEnvIntOrDefault("MAX_MODULUS", 30),
	}
}

func loadRMTConfig() RMTConfig {
	return RMTConfig{
		MatrixSizes: getEnvIntListOrDefault("RMT_MATRIX_SIZES", []int{10, 20, 50, 100, 200}),
		Trials:      getEnvIntOrDefault("RMT_TRIALS", 20),
		Seed:        int64(getEnvIntOrDefault("RMT_SEED", 42)),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnvOrDefault("SERVER_PORT", "8080"),
	}
}

func validateConfig(config *Config) error {
	if config.Fetch.MaxTerms <= 0 {
		return errors.ConfigInvalid("FETCH_MAX_TERMS must be positive")
	}
	if config.Analysis.SieveLimit < 2 {
		return errors.ConfigInvalid("SIEVE_LIMIT must be at least 2")
	}
	if config.Analysis.MaxModulus < 3 {
		return errors.ConfigInvalid("MAX_MODULUS must be at least 3")
	}
	if len(config.RMT.MatrixSizes) == 0 {
		return errors.ConfigInvalid("RMT_MATRIX_SIZES must not be empty")
	}
	for _, size := range config.RMT.MatrixSizes {
		if size < 2 {
			return errors.ConfigInvalid("RMT matrix sizes must be at least 2")
		}
	}
	if config.RMT.Trials <= 0 {
		return errors.ConfigInvalid("RMT_TRIALS must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvIntListOrDefault(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	parsed := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		parsed = append(parsed, n)
	}
	if len(parsed) == 0 {
		return defaultValue
	}
	return parsed
}
