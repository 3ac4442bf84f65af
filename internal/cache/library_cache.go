package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"icebreak/internal/model"

	"github.com/redis/go-redis/v9"
)

// LibraryCache stores saved openers in one Redis hash per client, keyed by record ID
type LibraryCache interface {
	Put(ctx context.Context, clientID string, rec *model.LibraryRecord) error
	Get(ctx context.Context, clientID, id string) (*model.LibraryRecord, error)
	List(ctx context.Context, clientID string) ([]model.LibraryRecord, error)
	Delete(ctx context.Context, clientID, id string) (bool, error)
}

type libraryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLibraryCache creates a new library cache
func NewLibraryCache(client *redis.Client, ttl time.Duration) LibraryCache {
	return &libraryCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *libraryCache) key(clientID string) string {
	return fmt.Sprintf("client:%s:library", clientID)
}

func (c *libraryCache) Put(ctx context.Context, clientID string, rec *model.LibraryRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := c.key(clientID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, rec.ID, data)
	pipe.Expire(ctx, key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Get returns nil, nil when the record does not exist
func (c *libraryCache) Get(ctx context.Context, clientID, id string) (*model.LibraryRecord, error) {
	data, err := c.client.HGet(ctx, c.key(clientID), id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec model.LibraryRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns all records, newest first
func (c *libraryCache) List(ctx context.Context, clientID string) ([]model.LibraryRecord, error) {
	all, err := c.client.HGetAll(ctx, c.key(clientID)).Result()
	if err != nil {
		return nil, err
	}
	records := make([]model.LibraryRecord, 0, len(all))
	for _, data := range all {
		var rec model.LibraryRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (c *libraryCache) Delete(ctx context.Context, clientID, id string) (bool, error) {
	n, err := c.client.HDel(ctx, c.key(clientID), id).Result()
	return n > 0, err
}
