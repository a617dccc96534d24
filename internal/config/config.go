package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	DataDir      string
	StudentsFile string
	BalanceFile  string
	CoursesFile  string
	LogLevel     string
	LogFormat    string
	// LogFile receives structured logs so they never interleave with the
	// interactive menu. Empty means log to stderr.
	LogFile string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	dataDir := getEnv("DATA_DIR", "data")

	return &Config{
		DataDir:      dataDir,
		StudentsFile: filepath.Join(dataDir, getEnv("STUDENTS_FILE", "students.json")),
		BalanceFile:  filepath.Join(dataDir, getEnv("BALANCE_FILE", "balance.json")),
		CoursesFile:  filepath.Join(dataDir, getEnv("COURSES_FILE", "courses.json")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		LogFile:      getEnv("LOG_FILE", filepath.Join(dataDir, "registrar.log")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
