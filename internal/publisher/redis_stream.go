package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luciengaly/football-scraping/internal/match"
)

// RecordStream is the stream assembled football records are appended to.
const RecordStream = "matches.records.football"

// RedisPublisher publishes match records to a Redis stream
type RedisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisPublisher creates a publisher from an existing client
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		stream: RecordStream,
		maxLen: 10000,
	}
}

// Connect opens a client for redisURL and checks it answers
func Connect(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishMatchRecord appends rec to the record stream
func (rp *RedisPublisher) PublishMatchRecord(ctx context.Context, rec *match.Record) error {
	values, err := streamValues(rec, time.Now())
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: rp.stream,
		MaxLen: rp.maxLen,
		Approx: true,
		Values: values,
	}).Err()
}

func streamValues(rec *match.Record, now time.Time) (map[string]interface{}, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal match %s: %w", rec.ID, err)
	}
	return map[string]interface{}{
		"match_id":  rec.ID,
		"season":    rec.Season,
		"data":      string(data),
		"timestamp": now.Unix(),
	}, nil
}

func (rp *RedisPublisher) Name() string { return "stream" }

func (rp *RedisPublisher) Write(ctx context.Context, rec *match.Record) error {
	return rp.PublishMatchRecord(ctx, rec)
}
