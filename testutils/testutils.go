package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"notesapp/config"
	"notesapp/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

const TestTokenSecret = "test_secret_key"

// SetupTestEnvironment sets the variables config.Load requires and keeps it
// from reading the developer's .env file.
func SetupTestEnvironment(t *testing.T) {
	t.Helper()

	t.Setenv("GO_ENV", "test")
	t.Setenv("ACCESS_TOKEN_SECRET", TestTokenSecret)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "notes_test")
}

// SetupTestDB connects to TEST_MONGO_URI and returns a cleanup function that
// drops the test database. Tests are skipped when no server is configured.
func SetupTestDB(t *testing.T) (*mongo.Database, func()) {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set, skipping integration test")
	}

	SetupTestEnvironment(t)
	t.Setenv("MONGO_URI", uri)
	dbConfig := config.LoadDatabaseConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := utils.ConnectMongo(ctx, dbConfig.ClientOptions())
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	db := client.Database(dbConfig.DatabaseName)
	cleanup := func() {
		t.Helper()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := db.Drop(ctx); err != nil {
			t.Logf("Warning: Failed to drop test database %s: %v", dbConfig.DatabaseName, err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Warning: Failed to disconnect: %v", err)
		}
	}

	return db, cleanup
}
