package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Dowody/rw-sub000/internal/model"
)

// RedisPersister stores each cart as a JSON blob under a fixed per-user
// key ("cart:<authid>").
type RedisPersister struct {
	Client *redis.Client
}

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{Client: client}
}

func cartKey(authID int64) string {
	return fmt.Sprintf("cart:%d", authID)
}

func (p *RedisPersister) Save(ctx context.Context, authID int64, items []model.CartItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return p.Client.Set(ctx, cartKey(authID), b, 0).Err()
}

func (p *RedisPersister) Load(ctx context.Context, authID int64) ([]model.CartItem, error) {
	b, err := p.Client.Get(ctx, cartKey(authID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var items []model.CartItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *RedisPersister) Delete(ctx context.Context, authID int64) error {
	return p.Client.Del(ctx, cartKey(authID)).Err()
}
