package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/aeterna-motors/booking-api/internal/email"
	"github.com/aeterna-motors/booking-api/internal/kafka"
	"github.com/aeterna-motors/booking-api/internal/logger"
)

// The worker consumes booking events and sends confirmation e-mails.
// It runs separately from the API so a slow mail relay never touches
// request latency.
func main() {
	configPath := parseFlags()

	kafkaBrokers, kafkaTopic, kafkaGroupID,
		smtpAddr, smtpFrom, logLevel,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		kafkaBrokers, kafkaTopic, kafkaGroupID,
		smtpAddr, smtpFrom, logLevel,
	); err != nil {
		log.Fatalf("worker stopped with error: %v", err)
	}
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the Kafka, SMTP and logging configuration.
func parseConfig(path string) (
	kafkaBrokers []string, kafkaTopic, kafkaGroupID string,
	smtpAddr, smtpFrom, logLevel string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	brokers := getEnv("KAFKA_BROKERS", "localhost:9092")
	kafkaBrokers = strings.Split(brokers, ",")
	kafkaTopic = getEnv("KAFKA_BOOKING_TOPIC", "bookings")
	kafkaGroupID = getEnv("KAFKA_GROUP_ID", "booking-notifications")

	smtpAddr = getEnv("SMTP_ADDR", "")
	smtpFrom = getEnv("SMTP_FROM", "bookings@aeterna-motors.example")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	return
}

// run initializes the logger, consumer and sender, then consumes booking
// events until a shutdown signal arrives.
func run(ctx context.Context,
	kafkaBrokers []string, kafkaTopic, kafkaGroupID string,
	smtpAddr, smtpFrom, logLevel string,
) error {
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()

	consumer := kafka.NewConsumer(kafkaBrokers, kafkaGroupID, kafkaTopic)
	defer consumer.Close()

	sender := email.NewSender(smtpAddr, smtpFrom)

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	logger.Log.Infof("Worker consuming topic %s as group %s", kafkaTopic, kafkaGroupID)

	err := consumer.Consume(ctxShutdown, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// Skip malformed messages instead of wedging the consumer
			logger.Log.Errorw("failed to decode booking event", "err", err)
			return nil
		}

		if event.Type != kafka.EventBookingCreated {
			return nil
		}

		if err := sender.Send(ctx, event); err != nil {
			logger.Log.Errorw("failed to send confirmation",
				"reference_id", event.ReferenceID,
				"err", err,
			)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Log.Info("Worker stopped gracefully")
	return nil
}
