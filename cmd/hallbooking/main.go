package main

import (
	"context"

	bookinghandler "hallbooking/internal/bookings/handler"
	bookingrepository "hallbooking/internal/bookings/repository"
	bookingservice "hallbooking/internal/bookings/service"
	"hallbooking/internal/bookings/validator"
	facilityhandler "hallbooking/internal/facilities/handler"
	facilityrepository "hallbooking/internal/facilities/repository"
	facilityservice "hallbooking/internal/facilities/service"
	"hallbooking/pkg/app"
	"hallbooking/pkg/cache"
	"hallbooking/pkg/config"
	"hallbooking/pkg/events"
	"hallbooking/pkg/kafka"
	kafka_middleware "hallbooking/pkg/kafka/middleware"
)

const ServiceName = "hallbooking"

const cachePrefix = "hallbooking:"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Hallbooking service")
	serverApp := app.NewApplication(cfg)

	publisher := initEvents(cfg, serverApp)
	facilityService := initFacilities(cfg, publisher)
	bookingService := initBookings(cfg, publisher)

	serverApp.SetApp(
		facilityhandler.NewFacilityHandler(facilityService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.OnShutdown(func() error {
		cfg.GracefulShutdown()
		return nil
	})
	serverApp.Run()
}

func initEvents(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.Kafka.Enabled {
		cfg.Log.Info("Kafka disabled, lifecycle events are not published")
		return events.NopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}
	serverApp.OnShutdown(producer.Close)

	cfg.Log.Info("Kafka producer initialized", "topic", producer.Topic())
	return events.NewKafkaPublisher(producer, cfg.Kafka.ProducerWriteTimeout, cfg.Log)
}

func initFacilities(cfg *config.Config, publisher events.Publisher) facilityservice.FacilityService {
	facilityRepo := facilityrepository.NewMongoFacilityRepository(cfg)
	if cfg.Client.Redis != nil {
		facilityRepo = facilityrepository.NewCachedFacilityRepository(
			facilityRepo,
			cache.NewRedisCache(cfg.Client.Redis, cachePrefix),
			cfg.FacilityCacheTTL,
			cfg.Log,
		)
		cfg.Log.Info("Facility lookups cached in Redis", "ttl", cfg.FacilityCacheTTL)
	}

	facilityService := facilityservice.NewFacilityService(facilityRepo, publisher, cfg)
	cfg.Log.Info("Facility service initialized", "database", cfg.MongoDatabaseName)
	return facilityService
}

func initBookings(cfg *config.Config, publisher events.Publisher) bookingservice.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)

	if cfg.BookingAtomicInsert {
		if err := bookingRepo.EnsureUniqueIndexes(context.Background(), cfg.BookingConflictPolicy); err != nil {
			cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
		}
		cfg.Log.Info("Booking admission enforced by unique indexes", "policy", cfg.BookingConflictPolicy)
	} else {
		cfg.Log.Warn("Booking admission is check-then-insert, concurrent duplicates are possible",
			"policy", cfg.BookingConflictPolicy,
		)
	}

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
