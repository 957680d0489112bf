package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

const chatPrefix = "edubuddy:session:"

// ChatHistoryRepository keeps recent Edu Buddy turns per session in a capped
// Redis list.
type ChatHistoryRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
	max    int
}

// NewChatHistoryRepository constructs the repository.
func NewChatHistoryRepository(client redis.UniversalClient, ttl time.Duration, max int) *ChatHistoryRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if max <= 0 {
		max = 20
	}
	return &ChatHistoryRepository{client: client, ttl: ttl, max: max}
}

// Append adds turns to the session and trims it to the newest entries.
func (r *ChatHistoryRepository) Append(ctx context.Context, sessionID string, turns ...models.ChatTurn) error {
	if r.client == nil || len(turns) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshal chat turn: %w", err)
		}
		values = append(values, raw)
	}
	key := chatPrefix + sessionID
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, int64(-r.max), -1)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append chat history: %w", err)
	}
	return nil
}

// Recent returns the stored turns, oldest first.
func (r *ChatHistoryRepository) Recent(ctx context.Context, sessionID string) ([]models.ChatTurn, error) {
	if r.client == nil {
		return nil, nil
	}
	raw, err := r.client.LRange(ctx, chatPrefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	out := make([]models.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var t models.ChatTurn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
