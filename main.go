package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"jewelai/analytics"
	"jewelai/config"
	"jewelai/database"
	"jewelai/dataset"
	"jewelai/handlers"
	"jewelai/inference"
	"jewelai/insights"
	"jewelai/middleware"
	"jewelai/reports"
	"jewelai/routes"
)

const startupTimeout = 2 * time.Minute

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	if err := run(); err != nil {
		log.Fatalf("❌ [STARTUP] %v", err)
	}
}

// run wires the API and blocks in Listen. It returns instead of exiting so the
// deferred pool close and context cancel always run.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Raw sales come from Postgres when configured, otherwise from CSV.
	sales := dataset.CSVSalesLoader(cfg.SalesDataPath)
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close(pool)
		sales = database.SalesLoader(pool, cfg.SalesTable)
	}

	store, err := dataset.Load(ctx, sales, dataset.Paths{
		Turnover:   cfg.TurnoverPath(),
		Evaluation: cfg.EvaluationPath(),
		Metrics:    cfg.MetricsPath(),
		Model:      cfg.ModelPath,
	})
	if err != nil {
		return err
	}

	analyticsSvc := analytics.NewService(store)
	predictor := inference.NewService(store.Artifact())

	var gen insights.Generator
	if cfg.GeminiAPIKey != "" {
		gen = insights.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		log.Println("⚠️ [STARTUP] GEMINI_API_KEY is not set; market insights disabled")
	}

	h := handlers.New(
		analyticsSvc,
		predictor,
		insights.NewService(analyticsSvc, gen),
		reports.NewExporter(analyticsSvc),
	)

	app := fiber.New(fiber.Config{
		AppName:      "JewelAI API " + handlers.Version,
		ErrorHandler: middleware.ErrorHandler,
	})
	middleware.Setup(app, cfg.AllowOrigins)
	routes.SetupRoutes(app, h)

	return serve(app, cfg.Addr())
}

// serve blocks until the listener fails or the app shuts down.
func serve(app *fiber.App, addr string) error {
	log.Printf("🚀 [STARTUP] Listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Printf("❌ [SERVER] %v", err)
		return err
	}
	return nil
}
