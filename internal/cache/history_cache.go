package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"icebreak/internal/model"

	"github.com/redis/go-redis/v9"
)

// HistoryCache keeps the most recent generation and scoring calls per client in Redis lists.
// Newest entries are at the head; lists are trimmed to a fixed length and expire after ttl.
type HistoryCache interface {
	PushTopics(ctx context.Context, clientID string, item *model.TopicHistoryItem) error
	ListTopics(ctx context.Context, clientID string) ([]model.TopicHistoryItem, error)
	SelectTopic(ctx context.Context, clientID, id string, topic *model.IcebreakerTopic) (bool, error)
	DeleteTopics(ctx context.Context, clientID, id string) (bool, error)
	ClearTopics(ctx context.Context, clientID string) error

	PushConfidence(ctx context.Context, clientID string, item *model.ConfidenceHistoryItem) error
	ListConfidence(ctx context.Context, clientID string) ([]model.ConfidenceHistoryItem, error)
	DeleteConfidence(ctx context.Context, clientID, id string) (bool, error)
	ClearConfidence(ctx context.Context, clientID string) error
}

type historyCache struct {
	client   *redis.Client
	ttl      time.Duration
	maxItems int
}

// NewHistoryCache creates a new history cache
func NewHistoryCache(client *redis.Client, ttl time.Duration, maxItems int) HistoryCache {
	return &historyCache{
		client:   client,
		ttl:      ttl,
		maxItems: maxItems,
	}
}

func (c *historyCache) topicsKey(clientID string) string {
	return fmt.Sprintf("client:%s:history:topics", clientID)
}

func (c *historyCache) confidenceKey(clientID string) string {
	return fmt.Sprintf("client:%s:history:confidence", clientID)
}

func (c *historyCache) push(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(c.maxItems-1))
	pipe.Expire(ctx, key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func listItems[T any](ctx context.Context, client *redis.Client, key string) ([]T, error) {
	raw, err := client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(raw))
	for _, data := range raw {
		var item T
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// findByID returns the list index and raw value of the entry with the given id, or -1
func (c *historyCache) findByID(ctx context.Context, key, id string) (int64, string, error) {
	raw, err := c.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return -1, "", err
	}
	for i, data := range raw {
		var entry struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			continue
		}
		if entry.ID == id {
			return int64(i), data, nil
		}
	}
	return -1, "", nil
}

func (c *historyCache) deleteByID(ctx context.Context, key, id string) (bool, error) {
	idx, data, err := c.findByID(ctx, key, id)
	if err != nil || idx < 0 {
		return false, err
	}
	removed, err := c.client.LRem(ctx, key, 1, data).Result()
	return removed > 0, err
}

func (c *historyCache) PushTopics(ctx context.Context, clientID string, item *model.TopicHistoryItem) error {
	return c.push(ctx, c.topicsKey(clientID), item)
}

func (c *historyCache) ListTopics(ctx context.Context, clientID string) ([]model.TopicHistoryItem, error) {
	return listItems[model.TopicHistoryItem](ctx, c.client, c.topicsKey(clientID))
}

func (c *historyCache) SelectTopic(ctx context.Context, clientID, id string, topic *model.IcebreakerTopic) (bool, error) {
	key := c.topicsKey(clientID)
	idx, data, err := c.findByID(ctx, key, id)
	if err != nil || idx < 0 {
		return false, err
	}

	var item model.TopicHistoryItem
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return false, err
	}
	item.SelectedTopic = topic

	updated, err := json.Marshal(&item)
	if err != nil {
		return false, err
	}
	if err := c.client.LSet(ctx, key, idx, updated).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (c *historyCache) DeleteTopics(ctx context.Context, clientID, id string) (bool, error) {
	return c.deleteByID(ctx, c.topicsKey(clientID), id)
}

func (c *historyCache) ClearTopics(ctx context.Context, clientID string) error {
	return c.client.Del(ctx, c.topicsKey(clientID)).Err()
}

func (c *historyCache) PushConfidence(ctx context.Context, clientID string, item *model.ConfidenceHistoryItem) error {
	return c.push(ctx, c.confidenceKey(clientID), item)
}

func (c *historyCache) ListConfidence(ctx context.Context, clientID string) ([]model.ConfidenceHistoryItem, error) {
	return listItems[model.ConfidenceHistoryItem](ctx, c.client, c.confidenceKey(clientID))
}

func (c *historyCache) DeleteConfidence(ctx context.Context, clientID, id string) (bool, error) {
	return c.deleteByID(ctx, c.confidenceKey(clientID), id)
}

func (c *historyCache) ClearConfidence(ctx context.Context, clientID string) error {
	return c.client.Del(ctx, c.confidenceKey(clientID)).Err()
}
