package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Settings are process-level options read from the environment
type Settings struct {
	Addr string
	// LogLevel is empty unless set; each command picks its own default
	LogLevel      string
	Env           string
	TaxYear       string
	TaxYearConfig string
}

// LoadSettings reads UKPAYE_* variables, loading the given .env files first when they exist.
// Variables already set in the environment win over .env values.
func LoadSettings(envFiles ...string) Settings {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
	return Settings{
		Addr:          getEnv("UKPAYE_ADDR", ":8080"),
		LogLevel:      getEnv("UKPAYE_LOG_LEVEL", ""),
		Env:           getEnv("UKPAYE_ENV", "production"),
		TaxYear:       getEnv("UKPAYE_TAX_YEAR", DefaultTaxYear),
		TaxYearConfig: getEnv("UKPAYE_TAX_YEAR_CONFIG", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
