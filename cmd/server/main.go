package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"career-advisor/internal/auth"
	"career-advisor/internal/catalog"
	"career-advisor/internal/config"
	"career-advisor/internal/events"
	apphttp "career-advisor/internal/http"
	"career-advisor/internal/report"
	"career-advisor/internal/repository/sqlite"
	"career-advisor/internal/resume"
	"career-advisor/internal/service"
	"career-advisor/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db, logger); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}
	store := sqlite.NewStore(db)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	logger.Infof("catalog: %d careers, %d quiz topics", len(cat.Careers()), len(cat.Topics()))

	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.TokenTTL())
	if err != nil {
		logger.Fatalf("token issuer: %v", err)
	}

	publisher := buildPublisher(cfg, logger)
	defer publisher.Close()

	deps := apphttp.Dependencies{
		Users:           service.NewUserService(store, publisher),
		Recommendations: service.NewRecommendationService(store, publisher),
		Quiz:            service.NewQuizService(cat, store, publisher),
		Badges:          service.NewBadgeService(cat, store),
		Careers:         service.NewCareerService(cat),
		Interview:       service.NewInterviewService(cat),
		Issuer:          issuer,
		Resumes:         resume.NewAnalyzer(cat, logger),
		Reports:         report.NewRenderer(),
		Logger:          logger,
		AllowOrigins:    cfg.Cors.AllowOrigins,
	}

	if cfg.Storage.Bucket != "" {
		storageSvc, err := buildStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup storage: %v", err)
		}
		deps.Archive = storage.NewReportArchive(storageSvc, cfg.Storage.Bucket, cfg.Storage.KeyPrefix)
	} else {
		logger.Info("report archive disabled (no storage bucket)")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(deps)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// buildPublisher falls back to a no-op publisher when the broker is not
// configured or unreachable.
func buildPublisher(cfg config.Config, logger *logrus.Logger) events.Publisher {
	if cfg.Events.AMQPURL == "" {
		return events.Nop{}
	}
	pub, err := events.DialAMQP(cfg.Events.AMQPURL, cfg.Events.Exchange, logger.WithField("component", "events"))
	if err != nil {
		logger.Warnf("event publisher disabled: %v", err)
		return events.Nop{}
	}
	logger.Infof("publishing events to exchange %s", cfg.Events.Exchange)
	return pub
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("archiving reports to s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
