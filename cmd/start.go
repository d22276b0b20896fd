package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"disasterhub/core/aggregate"
	"disasterhub/core/broadcast"
	"disasterhub/core/cache"
	"disasterhub/core/config"
	"disasterhub/core/database"
	"disasterhub/core/loader"
	"disasterhub/core/logger"
	"disasterhub/core/metrics"
	"disasterhub/core/middleware/rayid"
	"disasterhub/core/storage"
	"disasterhub/core/token"
	"disasterhub/provider/gemini"
	"disasterhub/provider/nominatim"
	"disasterhub/provider/scrape"

	"disasterhub/feature/auth"
	"disasterhub/feature/disasters"
	"disasterhub/feature/geocode"
	"disasterhub/feature/reports"
	"disasterhub/feature/resources"
	"disasterhub/feature/social"
	"disasterhub/feature/updates"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "disasterhub/docs/swagger"
)

// @title Disaster Coordination API
// @version 1.0
// @description Backend for the disaster coordination platform.
// @host localhost:5000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the disaster coordination server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("host", cfg.Database.Host))

		// 4. Object storage for report images
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		ensureBucket(store, cfg.Storage, logg)

		// 5. Core services
		m := metrics.New()
		hub := broadcast.NewHub(logg)
		tokens := token.NewService(cfg.Server.JwtSecret, time.Duration(cfg.Server.TokenTTLHours)*time.Hour)
		orchestrator := aggregate.New(cache.NewStore(db), m, logg)

		// 6. Provider adapters
		ai := gemini.NewClient(cfg.Gemini, m, logg)
		geocoder := nominatim.NewClient(cfg.Geocode, m)
		sources := []scrape.Source{
			scrape.NewNDMA(scrape.DefaultNDMAURL, nil, m, logg),
			scrape.NewReliefWeb(scrape.DefaultReliefWebURL, nil, m, logg),
		}

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// Middleware: RayID first so everything is traceable
		app.Use(rayid.New())
		app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.CorsOrigin}))
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Observability and docs
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", m.Handler())

		// Realtime updates
		app.Use("/ws", broadcast.Upgrade)
		app.Get("/ws", hub.Handler())

		// 8. Register Features
		mgr := loader.NewManager()
		mgr.Register(auth.NewFeature(db, tokens, logg))
		mgr.Register(disasters.NewFeature(db, geocoder, hub, tokens, m, logg))
		mgr.Register(resources.NewFeature(db, hub, m, logg))
		mgr.Register(reports.NewFeature(db, hub, store, cfg.Storage, ai, tokens, m, logg))
		mgr.Register(geocode.NewFeature(orchestrator, ai, geocoder, logg))
		mgr.Register(updates.NewFeature(orchestrator, sources, logg))
		mgr.Register(social.NewFeature(orchestrator, social.MockProvider{}, hub, m, logg))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// ensureBucket creates the report image bucket if it does not exist yet.
// Failure is non-fatal: uploads will error until storage recovers.
func ensureBucket(store storage.Client, cfg storage.Config, logg *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	exists, err := store.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		logg.Warn("Could not check image bucket", zap.Error(err))
		return
	}
	if !exists {
		if err := store.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			logg.Warn("Could not create image bucket", zap.Error(err))
		}
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
