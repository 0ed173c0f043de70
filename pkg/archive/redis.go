package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ListKey is the redis list every archived record is pushed onto.
const ListKey = "breakthrough:tournaments"

// RecordKey returns the redis key a record with the given id is stored at.
func RecordKey(id string) string {
	return "breakthrough:tournament:" + id
}

// RedisSink stores records as JSON in redis.
type RedisSink struct {
	Client *redis.Client
}

// NewRedisSink connects to the redis server at the given url, like
// redis://localhost:6379/0.
func NewRedisSink(ctx context.Context, url string) (*RedisSink, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis sink: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis sink: ping %s: %w", opts.Addr, err)
	}

	return &RedisSink{Client: client}, nil
}

func (sink *RedisSink) Write(ctx context.Context, record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis sink: %w", err)
	}

	pipe := sink.Client.TxPipeline()
	pipe.Set(ctx, RecordKey(record.ID), data, 0)
	pipe.RPush(ctx, ListKey, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis sink: %w", err)
	}

	logrus.Infof("Tournament results saved to redis key %s", RecordKey(record.ID))
	return nil
}

// Read fetches the record with the given id.
func (sink *RedisSink) Read(ctx context.Context, id string) (Record, error) {
	data, err := sink.Client.Get(ctx, RecordKey(id)).Bytes()
	if err != nil {
		return Record{}, fmt.Errorf("redis sink: read %s: %w", id, err)
	}

	return Unmarshal(data, FormatJSON)
}

func (sink *RedisSink) Close() error {
	return sink.Client.Close()
}
