// Package config reads runtime settings from the environment, after an
// optional .env file has been loaded.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting.
type Config struct {
	LogLevel       string
	Port           string
	AnswersFile    string
	AllowedFile    string
	WordLength     int
	Workers        int
	DBPath         string
	JWTSecret      string
	JWTExpiresDays int
	ReportFile     string
}

// Load reads .env files (if any) and then the environment.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)
	return Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnv("PORT", "5175"),
		AnswersFile:    os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:    os.Getenv("WORDS_ALLOWED_FILE"),
		WordLength:     getInt("WORD_LENGTH", 5),
		Workers:        getInt("WORKERS", 0),
		DBPath:         getEnv("DB_PATH", "./data/rankings.db"),
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: getInt("JWT_EXPIRES_DAYS", 14),
		ReportFile:     getEnv("REPORT_FILE", "best_first_guess_words.csv"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getInt parses k as an int, falling back to def when unset or malformed.
func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
