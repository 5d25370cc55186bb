package main

import (
	"github.com/joho/godotenv"

	"huddle/internal/bookings/events"
	bookingshandler "huddle/internal/bookings/handler"
	bookingsrepo "huddle/internal/bookings/repository"
	bookingsservice "huddle/internal/bookings/service"
	"huddle/internal/bookings/validator"
	roomshandler "huddle/internal/rooms/handler"
	roomsrepo "huddle/internal/rooms/repository"
	roomsservice "huddle/internal/rooms/service"
	"huddle/pkg/app"
	"huddle/pkg/config"
	"huddle/pkg/kafka"
	kafkaconfig "huddle/pkg/kafka/config"
)

const ServiceName = "huddle"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting huddle service")

	publisher, closePublisher := initPublisher(cfg)
	defer closePublisher()

	bookingService, roomService := initServices(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		roomshandler.NewRoomHandler(roomService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) (bookingsservice.BookingService, roomsservice.RoomService) {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	roomRepo := roomsrepo.NewMongoRoomRepository(cfg)

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		roomRepo,
		bookingValidator,
		publisher,
		cfg,
	)
	roomService := roomsservice.NewRoomService(roomRepo, bookingRepo, cfg.Log)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return bookingService, roomService
}

// initPublisher returns a Kafka-backed publisher when events are enabled and
// a no-op one otherwise; booking requests never fail on event delivery.
func initPublisher(cfg *config.Config) (events.Publisher, func()) {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return events.NewNopPublisher(), func() {}
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingsTopic, cfg.BookingsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Booking events enabled", "topic", cfg.BookingsTopic)
	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log), func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}
