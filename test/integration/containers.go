package integration

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type Env struct {
	PG     *postgres.PostgresContainer
	Kafka  *kafka.KafkaContainer
	Pool   *pgxpool.Pool
	PGURL  string
	KAddr  []string
	Cancel context.CancelFunc
}

// Setup starts a postgres container and applies the schema. Callers must
// Teardown.
func Setup(ctx context.Context) (*Env, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pgC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ecommerce"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		cancel()
		return nil, err
	}

	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		cancel()
		return nil, err
	}

	schema, err := os.ReadFile("../../migrations/schema.sql")
	if err != nil {
		cancel()
		return nil, err
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		cancel()
		return nil, err
	}

	return &Env{
		PG:     pgC,
		Pool:   pool,
		PGURL:  pgURL,
		Cancel: cancel,
	}, nil
}

// WithKafka adds a kafka broker to the env for relay round-trip tests.
func (e *Env) WithKafka(ctx context.Context) error {
	kafkaC, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafka.WithClusterID("test-cluster"),
	)
	if err != nil {
		return err
	}

	brokers, err := kafkaC.Brokers(ctx)
	if err != nil {
		_ = kafkaC.Terminate(ctx)
		return err
	}

	e.Kafka = kafkaC
	e.KAddr = brokers
	return nil
}

func (e *Env) Teardown(ctx context.Context) {
	e.Pool.Close()
	e.Cancel()
	if e.Kafka != nil {
		_ = e.Kafka.Terminate(ctx)
	}
	_ = e.PG.Terminate(ctx)
}
