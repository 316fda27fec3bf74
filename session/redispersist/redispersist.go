package redispersist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prepmate/prepmate/config"
	"github.com/prepmate/prepmate/session"
)

const sessionKey = "prepmate:session"

// Persister mirrors the active session into redis so a restarted process
// can pick the interview back up.
type Persister struct {
	client *redis.Client
	ttl    time.Duration
}

func New(cfg config.SessionConfig) (*Persister, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Pass,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed (%s:%s): %w", cfg.Redis.Host, cfg.Redis.Port, err)
	}
	return &Persister{client: rdb, ttl: cfg.TTL}, nil
}

func (p *Persister) Save(snap session.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return p.client.Set(context.Background(), sessionKey, data, p.ttl).Err()
}

func (p *Persister) Load() (session.Snapshot, bool, error) {
	val, err := p.client.Get(context.Background(), sessionKey).Result()
	if err == redis.Nil {
		return session.Snapshot{}, false, nil
	}
	if err != nil {
		return session.Snapshot{}, false, err
	}
	var snap session.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return session.Snapshot{}, false, err
	}
	return snap, true, nil
}
