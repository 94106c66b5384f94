package database

import (
	"context"
	"fmt"
	"time"

	"cryptoledger/src/config"
	aws_handler "cryptoledger/src/utils/aws"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

const (
	connectAttempts = 5
	connectBackoff  = 500 * time.Millisecond
)

// SecretGetter resolves a secret id to its value.
type SecretGetter interface {
	GetSecretValue(secretID string) (string, error)
}

// NewSecretGetter returns the AWS secret manager when the database password is
// stored as a secret, and nil otherwise.
func NewSecretGetter(cfg *config.Config) (SecretGetter, error) {
	if cfg.Databases.SQL.PasswordSecretID == "" {
		return nil, nil
	}
	awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return nil, err
	}
	return awsHandler.SecretManager, nil
}

// ResolveSQLConfig returns the SQL settings with the password taken from the
// secret manager when a password secret id is configured.
func ResolveSQLConfig(cfg *config.Config, secrets SecretGetter) (config.SQLConfig, error) {
	sqlCfg := cfg.Databases.SQL
	if sqlCfg.PasswordSecretID == "" {
		return sqlCfg, nil
	}
	if secrets == nil {
		return sqlCfg, fmt.Errorf("password secret %s configured without a secret manager", sqlCfg.PasswordSecretID)
	}

	// Fetch password from the secret manager
	password, err := secrets.GetSecretValue(sqlCfg.PasswordSecretID)
	if err != nil {
		return sqlCfg, fmt.Errorf("failed to fetch database password: %w", err)
	}
	sqlCfg.Password = password
	return sqlCfg, nil
}

// SetupDB opens the pgx pool and waits for the database to answer a ping.
// When a password secret id is configured, secrets must be non-nil.
func SetupDB(ctx context.Context, cfg *config.Config, secrets SecretGetter, logger logrus.FieldLogger) (*pgxpool.Pool, error) {
	sqlCfg, err := ResolveSQLConfig(cfg, secrets)
	if err != nil {
		return nil, err
	}

	// Create connection pool config
	poolCfg, err := pgxpool.ParseConfig(sqlCfg.DSN())
	if err != nil {
		return nil, err
	}
	// Pool size falls back to pgx defaults when unset
	if sqlCfg.MaxConns > 0 {
		poolCfg.MaxConns = sqlCfg.MaxConns
	}
	if sqlCfg.MinConns > 0 {
		poolCfg.MinConns = sqlCfg.MinConns
	}

	// Create connection pool
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection, the database may still be starting
	backoff := retry.WithMaxRetries(connectAttempts-1, retry.NewExponential(connectBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			logger.WithError(err).Warn("database not reachable yet")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
