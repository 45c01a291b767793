package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/vncsmyrnk/engage/internal/adapters/handler/http"
	repo "github.com/vncsmyrnk/engage/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/engage/internal/core/services"
)

const testJWTSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	transactor := repo.NewTransactor(db)
	activityRepo := repo.NewActivityRepository(db)
	responseRepo := repo.NewResponseRepository(db)
	logoRepo := repo.NewLogoRepository(db)
	rosterRepo := repo.NewRosterRepository(db)
	participantRepo := repo.NewParticipantRepository(db)

	activitySvc := services.NewActivityService(transactor, activityRepo, responseRepo, logoRepo, rosterRepo, nil)
	responseSvc := services.NewResponseService(transactor, activityRepo, responseRepo, logoRepo, participantRepo)
	roundSvc := services.NewRoundService(activityRepo, logoRepo)
	leaderboardSvc := services.NewLeaderboardService(activityRepo, responseRepo, participantRepo)
	rosterSvc := services.NewRosterService(transactor, activityRepo, rosterRepo, participantRepo)

	router := handler.NewHandler(handler.Handlers{
		Activity:    handler.NewActivityHandler(activitySvc),
		Response:    handler.NewResponseHandler(responseSvc),
		Round:       handler.NewRoundHandler(roundSvc),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardSvc),
		Roster:      handler.NewRosterHandler(rosterSvc),
	}, testJWTSecret)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) createEvent(t *testing.T) uuid.UUID {
	t.Helper()

	eventID := uuid.New()
	name := fmt.Sprintf("Event %s", eventID)
	_, err := app.DB.Exec("INSERT INTO events (id, name) VALUES ($1, $2)", eventID, name)
	require.NoError(t, err)
	return eventID
}

func (app *TestApp) createParticipantAndToken(t *testing.T, eventID uuid.UUID) (uuid.UUID, string) {
	t.Helper()

	participantID := uuid.New()
	name := fmt.Sprintf("Participant %s", participantID)
	_, err := app.DB.Exec("INSERT INTO participants (id, event_id, name) VALUES ($1, $2, $3)", participantID, eventID, name)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub": participantID.String(),
		"exp": time.Now().Add(15 * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return participantID, signedToken
}
