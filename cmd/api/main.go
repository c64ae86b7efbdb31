package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-insights-service/internal/config"
	insightsHttp "content-insights-service/internal/insights/adapters/http/fiber"
	insightsRepoPg "content-insights-service/internal/insights/adapters/postgres"
	insightsUsecase "content-insights-service/internal/insights/core/usecase"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "content-insights-service/docs"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// DB connection
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to open postgres: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping postgres: %v", err)
	}

	// Adapter-level DB wrapper
	insightsDB := insightsRepoPg.NewSQLDB(db)

	// Repositories
	rowRepository := insightsRepoPg.NewMetricRowRepository(insightsDB)
	postCatalog := insightsRepoPg.NewPostCatalogRepository(insightsDB)
	profileRepository := insightsRepoPg.NewProfileMetricsRepository(insightsDB)

	// Usecases
	reportUC := insightsUsecase.NewGetMetricReportUseCase(
		rowRepository, postCatalog, profileRepository, cfg.FetchTimeout)
	overviewUC := insightsUsecase.NewGetOverviewUseCase(reportUC)

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	insightsHandler := insightsHttp.NewInsightsHandler(reportUC, overviewUC)
	app.Get("/insights/metrics", insightsHandler.GetMetrics)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("fiber shutdown error: %v", err)
	}

	log.Println("server exiting")
}
