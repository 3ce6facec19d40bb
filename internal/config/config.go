package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultHTTPAddr               = "127.0.0.1:8787"
	DefaultSampleDays             = 60
	DefaultSampleOperationsPerDay = 50
	DefaultFetchTimeout           = 30 * time.Second
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath string
	LogDir   string

	// ExampleDataURL is the workbook fetched by the "example" load source.
	ExampleDataURL string
	FetchTimeout   time.Duration

	HTTPAddr           string
	CORSAllowedOrigins []string

	SampleDays             int
	SampleOperationsPerDay int

	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return FromEnv(exeDir), nil
}

// FromEnv builds the configuration from the process environment only. exeDir is the
// fallback data path.
func FromEnv(exeDir string) *AppConfig {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	return &AppConfig{
		DataPath:               dataPath,
		LogDir:                 logDir,
		ExampleDataURL:         getEnv("EXAMPLE_DATA_URL", ""),
		FetchTimeout:           time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", int(DefaultFetchTimeout/time.Second))) * time.Second,
		HTTPAddr:               getEnv("HTTP_ADDR", DefaultHTTPAddr),
		CORSAllowedOrigins:     getEnvList("CORS_ALLOWED_ORIGINS"),
		SampleDays:             getEnvInt("SAMPLE_DAYS", DefaultSampleDays),
		SampleOperationsPerDay: getEnvInt("SAMPLE_OPERATIONS_PER_DAY", DefaultSampleOperationsPerDay),
		EnableMermaidCharts:    getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
