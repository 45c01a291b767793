package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/engage/internal/adapters/events"
	"github.com/vncsmyrnk/engage/internal/adapters/handler/http"
	"github.com/vncsmyrnk/engage/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/engage/internal/core/ports"
	"github.com/vncsmyrnk/engage/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName string
	var httpAddr, jwtSecret, kafkaBrokers string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.StringVar(&httpAddr, "http-addr", envOr("HTTP_ADDR", "0.0.0.0:8080"), "HTTP listen address")
	flag.StringVar(&jwtSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "Secret for access token validation")
	flag.StringVar(&kafkaBrokers, "kafka-brokers", os.Getenv("KAFKA_BROKERS"), "Comma separated Kafka brokers, empty disables publishing")
	flag.Parse()

	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	var publisher ports.LifecyclePublisher
	if kafkaBrokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(strings.Split(kafkaBrokers, ","))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Initialize Repositories
	transactor := postgres.NewTransactor(db)
	activityRepo := postgres.NewActivityRepository(db)
	responseRepo := postgres.NewResponseRepository(db)
	logoRepo := postgres.NewLogoRepository(db)
	rosterRepo := postgres.NewRosterRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)

	// Initialize Services
	activityService := services.NewActivityService(transactor, activityRepo, responseRepo, logoRepo, rosterRepo, publisher)
	responseService := services.NewResponseService(transactor, activityRepo, responseRepo, logoRepo, participantRepo)
	roundService := services.NewRoundService(activityRepo, logoRepo)
	leaderboardService := services.NewLeaderboardService(activityRepo, responseRepo, participantRepo)
	rosterService := services.NewRosterService(transactor, activityRepo, rosterRepo, participantRepo)

	handler := http.NewHandler(http.Handlers{
		Activity:    http.NewActivityHandler(activityService),
		Response:    http.NewResponseHandler(responseService),
		Round:       http.NewRoundHandler(roundService),
		Leaderboard: http.NewLeaderboardHandler(leaderboardService),
		Roster:      http.NewRosterHandler(rosterService),
	}, jwtSecret)

	server := &stdhttp.Server{Addr: httpAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", httpAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
