package journal

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const recentFillsMax = 100

// RedisJournal pushes fills onto a capped recent-fills list and publishes
// them on a channel for live dashboards.
type RedisJournal struct {
	client  *redis.Client
	listKey string
	channel string
}

func NewRedisJournal(client *redis.Client, serviceName string) *RedisJournal {
	return &RedisJournal{
		client:  client,
		listKey: serviceName + ":recent_fills",
		channel: serviceName + ":fills",
	}
}

func (j *RedisJournal) Record(ctx context.Context, trade *GhostTrade) error {
	payload, err := json.Marshal(trade)
	if err != nil {
		return err
	}

	pipe := j.client.TxPipeline()
	pipe.LPush(ctx, j.listKey, payload)
	pipe.LTrim(ctx, j.listKey, 0, recentFillsMax-1)
	pipe.Publish(ctx, j.channel, payload)
	_, err = pipe.Exec(ctx)
	return err
}
