package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultPort         = 8000
	defaultDataDir      = "output"
	defaultSalesPath    = "Data/jewellery_multi_store_dataset/multi_store_denorm_sales.csv"
	defaultSalesTable   = "sales"
	defaultGeminiModel  = "gemini-2.5-flash-lite"
	defaultAllowOrigins = "http://localhost:8080,http://localhost:5173,http://localhost:3000,http://127.0.0.1:8080"
)

// Config holds application configuration. It is built once in main and passed
// to whoever needs it; nothing reads the environment after startup.
type Config struct {
	Port          int
	DataDir       string
	SalesDataPath string
	ModelPath     string
	DatabaseURL   string
	SalesTable    string
	GeminiAPIKey  string
	GeminiModel   string
	AllowOrigins  []string
}

// TurnoverPath is the precomputed inventory turnover table.
func (c Config) TurnoverPath() string {
	return filepath.Join(c.DataDir, "inventory_turnover_predictions.csv")
}

// EvaluationPath is the offline actual-vs-predicted table.
func (c Config) EvaluationPath() string {
	return filepath.Join(c.DataDir, "ensemble_predictions.csv")
}

// MetricsPath is the ensemble metrics document.
func (c Config) MetricsPath() string {
	return filepath.Join(c.DataDir, "ensemble_metrics.json")
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads the configuration from the process environment. Call
// godotenv.Load first if a .env file should be honoured.
func Load() (Config, error) {
	cfg := Config{
		Port:          defaultPort,
		DataDir:       getEnv("DATA_DIR", defaultDataDir),
		SalesDataPath: getEnv("SALES_DATA_PATH", defaultSalesPath),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SalesTable:    getEnv("SALES_TABLE", defaultSalesTable),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", defaultGeminiModel),
		AllowOrigins:  splitList(getEnv("CORS_ALLOW_ORIGINS", defaultAllowOrigins)),
	}
	cfg.ModelPath = getEnv("MODEL_PATH", filepath.Join(cfg.DataDir, "ensemble_model.json"))

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", raw)
		}
		cfg.Port = port
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
