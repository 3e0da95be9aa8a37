package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ayumitra/telemed-backend/internal/adapters/cache"
	"github.com/ayumitra/telemed-backend/internal/adapters/database"
	"github.com/ayumitra/telemed-backend/internal/adapters/events"
	"github.com/ayumitra/telemed-backend/internal/adapters/search"
	"github.com/ayumitra/telemed-backend/internal/api/handlers"
	"github.com/ayumitra/telemed-backend/internal/api/routes"
	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/providers"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/cerebras"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/postgres"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/redis"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/typesense"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/observability"
	"github.com/ayumitra/telemed-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry if enabled
	var otelShutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		otelShutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
			otelShutdown = nil
		} else {
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// PostgreSQL is the system of record; nothing works without it.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis and Typesense are optional: caching, events, and directory
	// search degrade gracefully when they are unreachable.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache and event bus")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, facility search falls back to the database")
		typesenseClient = nil
	}

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}

	// Adapters
	baseDoctorAdapter := database.NewDoctorAdapter(pgClient)
	var doctorRepo repositories.DoctorRepository = baseDoctorAdapter
	if cacheProvider != nil {
		doctorRepo = database.NewCachedDoctorAdapter(baseDoctorAdapter, cacheProvider)
	}

	clinicRepo := database.NewClinicAdapter(pgClient)
	hospitalRepo := database.NewHospitalAdapter(pgClient)
	requestRepo := database.NewPatientRequestAdapter(pgClient)
	notificationRepo := database.NewNotificationAdapter(pgClient)
	analysisRepo := database.NewSymptomAnalysisAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	var searchRepo repositories.FacilitySearchRepository
	if typesenseClient != nil {
		if err := typesenseClient.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		} else {
			searchRepo = search.NewTypesenseAdapter(typesenseClient)
		}
	}

	var analyzer providers.SymptomAnalyzer
	if cfg.Cerebras.APIKey == "" {
		log.Warn().Msg("CEREBRAS_API_KEY is not set, using offline symptom analyzer")
		analyzer = cerebras.NewOfflineAnalyzer()
	} else {
		client, err := cerebras.NewClient(&cfg.Cerebras)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize analysis client, using offline analyzer")
			analyzer = cerebras.NewOfflineAnalyzer()
		} else {
			analyzer = client
		}
	}

	// Services
	resolver := services.NewKeywordResolver()
	doctorMatcher := services.NewDoctorMatchingService(doctorRepo, resolver)
	facilityMatcher := services.NewFacilityMatchingService(clinicRepo, hospitalRepo, resolver)

	routingService := services.NewRoutingService(
		analyzer,
		doctorMatcher,
		facilityMatcher,
		requestRepo,
		notificationRepo,
		analysisRepo,
		userRepo,
		eventBus,
		metrics,
	)
	requestService := services.NewRequestService(requestRepo, doctorRepo, clinicRepo, hospitalRepo, eventBus)
	doctorService := services.NewDoctorService(doctorRepo, requestRepo, notificationRepo, clinicRepo, hospitalRepo, eventBus)
	facilityService := services.NewFacilityService(clinicRepo, hospitalRepo, searchRepo)

	// Handlers and routes
	routingHandler := handlers.NewRoutingHandler(routingService)
	doctorHandler := handlers.NewDoctorHandler(doctorService, requestService)
	patientHandler := handlers.NewPatientHandler(requestService)
	facilityHandler := handlers.NewFacilityHandler(facilityService)

	router := routes.NewRouter(routingHandler, doctorHandler, patientHandler, facilityHandler, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	if otelShutdown != nil {
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error shutting down OpenTelemetry")
		}
	}

	log.Info().Msg("server stopped")
}
