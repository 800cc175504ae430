package chat

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	myredis "apna_room_server/internal/dao/redis"
	"apna_room_server/pkg/constants"
)

// PresenceRecord is what the cache stores per user.
type PresenceRecord struct {
	Status   string    `json:"status"`
	LastSeen time.Time `json:"lastSeen"`
}

// PresenceStore persists user availability. Records expire on their
// own, so a missing record simply reads as offline.
type PresenceStore interface {
	SetStatus(ctx context.Context, userId, status string) error
	Get(ctx context.Context, userId string) (PresenceRecord, error)
}

func presenceKey(userId string) string {
	return "presence:user:" + userId
}

type redisPresenceStore struct {
	cache myredis.CacheService
}

// NewPresenceStore builds a cache-backed presence store.
func NewPresenceStore(cache myredis.CacheService) PresenceStore {
	return &redisPresenceStore{cache: cache}
}

func (p *redisPresenceStore) SetStatus(ctx context.Context, userId, status string) error {
	record := PresenceRecord{Status: status, LastSeen: time.Now().UTC()}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return p.cache.Set(ctx, presenceKey(userId), string(data), constants.PRESENCE_TTL)
}

func (p *redisPresenceStore) Get(ctx context.Context, userId string) (PresenceRecord, error) {
	value, err := p.cache.Get(ctx, presenceKey(userId))
	if err != nil {
		return PresenceRecord{Status: "offline"}, err
	}
	if value == "" {
		return PresenceRecord{Status: "offline"}, nil
	}
	var record PresenceRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		zap.L().Warn("corrupt presence record", zap.String("user_id", userId), zap.Error(err))
		return PresenceRecord{Status: "offline"}, nil
	}
	return record, nil
}
