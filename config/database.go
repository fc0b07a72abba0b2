package config

import (
	"time"

	"notesapp/utils"

	"go.mongodb.org/mongo-driver/mongo/options"
)

type DatabaseConfig struct {
	URI              string
	DatabaseName     string
	UsersCollection  string
	NotesCollection  string
	MaxPoolSize      uint64
	MinPoolSize      uint64
	MaxConnIdleTime  time.Duration
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
	RetryWrites      bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:              utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:     utils.GetEnvAsString("MONGO_DB", "notes_app"),
		UsersCollection:  utils.GetEnvAsString("USERS_COLLECTION", "users"),
		NotesCollection:  utils.GetEnvAsString("NOTES_COLLECTION", "notes"),
		MaxPoolSize:      utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:      utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime:  time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		ConnectTimeout:   utils.GetEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		OperationTimeout: utils.GetEnvAsDuration("MONGO_OPERATION_TIMEOUT", 10*time.Second),
		RetryWrites:      utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

// ClientOptions builds the driver options for the pooled client.
func (c DatabaseConfig) ClientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URI).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize).
		SetMaxConnIdleTime(c.MaxConnIdleTime).
		SetConnectTimeout(c.ConnectTimeout).
		SetRetryWrites(c.RetryWrites)
}
