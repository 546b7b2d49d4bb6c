package broker

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"assetpipe/internal/domain/entity"
)

const (
	RedisImage = "redis:7-alpine"
	StreamName = "test-stream"
	GroupName  = "test-group"
	Consumer   = "test-consumer"
)

func setupRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        RedisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start Redis container: %v", err)
	}
	t.Cleanup(func() { _ = redisC.Terminate(context.Background()) })

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get Redis container host: %v", err)
	}

	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("failed to get Redis container port: %v", err)
	}

	return fmt.Sprintf("redis://%s", net.JoinHostPort(host, port.Port()))
}

func newClient(t *testing.T, uri string, maxLen int64) *Client {
	t.Helper()

	client, err := NewClient(Config{
		URI:        uri,
		StreamName: StreamName,
		GroupName:  GroupName,
		MaxLen:     maxLen,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestPublish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []entity.Event
	}{
		{"one event", []entity.Event{{Type: entity.EventAssetCreated, AssetID: "a1", Folder: "uploads"}}},
		{"batch events", []entity.Event{
			{Type: entity.EventBatchProgress, BatchID: "b1", Operation: "delete", Percent: 50},
			{Type: entity.EventBatchProgress, BatchID: "b1", Operation: "delete", Percent: 100},
			{Type: entity.EventBatchDone, BatchID: "b1", Operation: "delete", Succeeded: 2},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newClient(t, setupRedis(t), 0)
			publisher := NewPublisher(client, PublisherConfig{Timeout: 1000})

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			for _, e := range tt.events {
				require.NoError(t, publisher.Publish(ctx, e))
			}

			read, err := client.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    GroupName,
				Consumer: Consumer,
				Streams:  []string{StreamName, ">"},
				Count:    int64(len(tt.events)),
				Block:    2 * time.Second,
			}).Result()
			require.NoError(t, err)
			require.Len(t, read, 1)
			require.Len(t, read[0].Messages, len(tt.events))

			for i, e := range tt.events {
				assert.Equal(t, e.Type, read[0].Messages[i].Values["type"])
				assert.Contains(t, read[0].Messages[i].Values["body"], `"at":`)
			}
		})
	}
}

func TestPublishWithoutClient(t *testing.T) {
	t.Parallel()

	err := (&Publisher{}).Publish(context.Background(), entity.Event{Type: entity.EventAssetDeleted})
	assert.Error(t, err)
}

func TestMessagesRoundTrip(t *testing.T) {
	t.Parallel()

	client := newClient(t, setupRedis(t), 0)
	publisher := NewPublisher(client, PublisherConfig{Timeout: 1000})
	receiver := NewReceiver(client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sent := entity.Event{
		Type:         entity.EventAssetMoved,
		AssetID:      "a1",
		StoragePath:  "archive/x.png",
		PreviousPath: "uploads/x.png",
		Folder:       "archive",
	}
	require.NoError(t, publisher.Publish(ctx, sent))

	ch, err := receiver.Messages(ctx, Consumer)
	require.NoError(t, err)

	msg := <-ch
	require.NotNil(t, msg)
	assert.NotEmpty(t, msg.ID())

	got, err := msg.Event()
	require.NoError(t, err)
	assert.Equal(t, sent.Type, got.Type)
	assert.Equal(t, sent.PreviousPath, got.PreviousPath)
	assert.False(t, got.At.IsZero())
	assert.NoError(t, msg.Ack())
}

func TestMessagesConcurrentConsumers(t *testing.T) {
	t.Parallel()

	client := newClient(t, setupRedis(t), 0)
	publisher := NewPublisher(client, PublisherConfig{Timeout: 1000})

	total := 50
	for i := 0; i < total; i++ {
		require.NoError(t, publisher.Publish(context.Background(), entity.Event{
			Type:    entity.EventAssetCreated,
			AssetID: fmt.Sprintf("asset-%d", i),
		}))
	}

	received := make(chan string, total)
	var wg sync.WaitGroup
	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
	defer cancel()

	receiver := NewReceiver(client)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			ch, err := receiver.Messages(ctx, fmt.Sprintf("consumer-%d", id))
			if err != nil {
				return
			}
			for msg := range ch {
				e, err := msg.Event()
				if err == nil {
					received <- e.AssetID
				}
				_ = msg.Ack()
			}
		}(i)
	}

	wg.Wait()
	close(received)

	seen := make(map[string]bool)
	for id := range received {
		assert.False(t, seen[id], "duplicate event received: %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, total)
}

func TestPublishTrimsStream(t *testing.T) {
	t.Parallel()

	client := newClient(t, setupRedis(t), 10)
	publisher := NewPublisher(client, PublisherConfig{Timeout: 1000})

	for i := 0; i < 500; i++ {
		require.NoError(t, publisher.Publish(context.Background(), entity.Event{Type: entity.EventAssetCreated}))
	}

	n, err := client.redis.XLen(context.Background(), StreamName).Result()
	require.NoError(t, err)
	assert.Less(t, n, int64(500))
}

func TestMessagesContextCancel(t *testing.T) {
	t.Parallel()

	client := newClient(t, setupRedis(t), 0)
	receiver := NewReceiver(client)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
	defer cancel()

	ch, err := receiver.Messages(ctx, "consumer-cancel")
	require.NoError(t, err)
	_, ok := <-ch
	assert.False(t, ok, "expected channel to be closed due to context cancel")
}

func TestMessagesInvalidClient(t *testing.T) {
	t.Parallel()

	receiver := &Receiver{}
	ch, err := receiver.Messages(context.Background(), "invalid-consumer")
	assert.Nil(t, ch)
	assert.Error(t, err)
}
