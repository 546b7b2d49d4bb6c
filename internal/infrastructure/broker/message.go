package broker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"assetpipe/internal/domain/entity"
)

type RedisMessage struct {
	stream      string
	group       string
	id          string
	body        string
	redisClient *redis.Client
}

func (m *RedisMessage) ID() string {
	return m.id
}

func (m *RedisMessage) Event() (entity.Event, error) {
	var e entity.Event
	err := json.Unmarshal([]byte(m.body), &e)

	return e, err
}

func (m *RedisMessage) Ack() error {
	return m.redisClient.XAck(context.Background(), m.stream, m.group, m.id).Err()
}
