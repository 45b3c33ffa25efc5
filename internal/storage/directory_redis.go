package storage

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"cricsaga/internal/domain"
)

const redisKeyPrefix = "cricsaga:match:"

// RedisDirectory keeps live matches in Redis so that multiple server nodes
// can share one session space. Match state is stored as a JSON blob per id.
type RedisDirectory struct {
	client *redis.Client
}

func NewRedisDirectory(client *redis.Client) *RedisDirectory {
	return &RedisDirectory{client: client}
}

func (d *RedisDirectory) Create(ctx context.Context, m *domain.Match) error {
	data, err := json.Marshal(m)
	if err != nil {
		return eris.Wrap(err, "failed to marshal match")
	}

	ok, err := d.client.SetNX(ctx, redisKeyPrefix+m.ID, data, 0).Result()
	if err != nil {
		return eris.Wrap(err, "failed to register match")
	}
	if !ok {
		return eris.Errorf("match id %s already registered", m.ID)
	}
	return nil
}

func (d *RedisDirectory) Lookup(ctx context.Context, id string) (*domain.Match, error) {
	data, err := d.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "failed to look up match")
	}

	var m domain.Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "failed to unmarshal match")
	}
	return &m, nil
}

func (d *RedisDirectory) Save(ctx context.Context, m *domain.Match) error {
	data, err := json.Marshal(m)
	if err != nil {
		return eris.Wrap(err, "failed to marshal match")
	}
	if err := d.client.Set(ctx, redisKeyPrefix+m.ID, data, 0).Err(); err != nil {
		return eris.Wrap(err, "failed to save match")
	}
	return nil
}

func (d *RedisDirectory) Remove(ctx context.Context, id string) error {
	if err := d.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return eris.Wrap(err, "failed to remove match")
	}
	return nil
}

func (d *RedisDirectory) List(ctx context.Context) ([]*domain.Match, error) {
	var out []*domain.Match

	iter := d.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := d.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue // expired between scan and get
		}
		if err != nil {
			return nil, eris.Wrap(err, "failed to read match during scan")
		}

		var m domain.Match
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, eris.Wrap(err, "failed to unmarshal match during scan")
		}
		out = append(out, &m)
	}
	if err := iter.Err(); err != nil {
		return nil, eris.Wrap(err, "failed to scan match keys")
	}
	return out, nil
}
