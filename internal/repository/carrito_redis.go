package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
)

// CarritoStore keeps pre-checkout carts in Redis, keyed by the owning user.
// Every write refreshes the TTL, so any cart the user stops touching expires
// and its soft stock hold disappears with it.
type CarritoStore interface {
	Get(ctx context.Context, usuarioID string) (*model.Carrito, error)
	Save(ctx context.Context, usuarioID string, carrito *model.Carrito) error
	Delete(ctx context.Context, usuarioID string) error
}

type carritoRedis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCarritoStore(rdb *redis.Client, ttl time.Duration) CarritoStore {
	return &carritoRedis{rdb: rdb, ttl: ttl}
}

func carritoKey(usuarioID string) string {
	return fmt.Sprintf("carrito:%s", usuarioID)
}

// Get returns an empty cart when no session exists; callers never need to
// distinguish "no cart" from "empty cart".
func (s *carritoRedis) Get(ctx context.Context, usuarioID string) (*model.Carrito, error) {
	raw, err := s.rdb.Get(ctx, carritoKey(usuarioID)).Result()
	if errors.Is(err, redis.Nil) {
		return &model.Carrito{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("carrito redis get: %w", err)
	}

	var c model.Carrito
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("carrito corrupto: %w", err)
	}
	return &c, nil
}

func (s *carritoRedis) Save(ctx context.Context, usuarioID string, carrito *model.Carrito) error {
	raw, err := json.Marshal(carrito)
	if err != nil {
		return fmt.Errorf("carrito serializar: %w", err)
	}
	if err := s.rdb.Set(ctx, carritoKey(usuarioID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("carrito redis set: %w", err)
	}
	return nil
}

func (s *carritoRedis) Delete(ctx context.Context, usuarioID string) error {
	if err := s.rdb.Del(ctx, carritoKey(usuarioID)).Err(); err != nil {
		return fmt.Errorf("carrito redis del: %w", err)
	}
	return nil
}
