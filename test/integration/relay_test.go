package integration

import (
	"context"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkoutkafka "github.com/akshatjain02/ecommerce-backend/internal/checkout/infrastructure/kafka"
	checkoutpg "github.com/akshatjain02/ecommerce-backend/internal/checkout/infrastructure/postgres"
	"github.com/akshatjain02/ecommerce-backend/pkg/outbox"
)

// A pending outbox row is leased, published to the broker and marked sent;
// the consumed message carries the payload and event_type header.
func TestRelayPublishesOutboxEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { env.Teardown(context.Background()) })
	require.NoError(t, env.WithKafka(ctx))

	const topic = "order.events.test"

	_, err = env.Pool.Exec(ctx, `
		INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, headers, traceparent, status)
		VALUES ('order', '7', 'OrderCreated', '{"order_id":7}', '{"source":"checkout"}', '', 'pending')`)
	require.NoError(t, err)

	log := slog.New(slog.DiscardHandler)
	store := checkoutpg.NewOutboxStore(log, env.Pool)
	writer := checkoutkafka.NewWriter(env.KAddr)
	writer.AllowAutoTopicCreation = true
	defer writer.Close()

	relay := outbox.NewRelay(log, store, outbox.NewDispatcher(log, writer, topic), "relay-it")

	relayCtx, cancelRelay := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = relay.Run(relayCtx)
	}()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: env.KAddr,
		Topic:   topic,
		GroupID: "relay-it-consumer",
	})
	defer reader.Close()

	readCtx, cancelRead := context.WithTimeout(ctx, 60*time.Second)
	defer cancelRead()
	msg, err := reader.ReadMessage(readCtx)
	cancelRelay()
	<-done
	require.NoError(t, err)

	assert.Equal(t, "7", string(msg.Key))
	assert.JSONEq(t, `{"order_id":7}`, string(msg.Value))

	var eventType string
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			eventType = string(h.Value)
		}
	}
	assert.Equal(t, "OrderCreated", eventType)

	require.Eventually(t, func() bool {
		var status string
		if err := env.Pool.QueryRow(ctx, `SELECT status FROM outbox WHERE aggregate_id = '7'`).Scan(&status); err != nil {
			return false
		}
		return status == "sent"
	}, 10*time.Second, 100*time.Millisecond)
}
