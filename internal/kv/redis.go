package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "mealgo:kv:"

// RedisConfig holds the connection settings for RedisStore
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps each owner's entries in one hash
type RedisStore struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewRedisStore connects and pings the server
func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))
	return &RedisStore{rdb: rdb, logger: logger}, nil
}

func ownerHash(owner string) string {
	return redisKeyPrefix + owner
}

func (s *RedisStore) Get(ctx context.Context, owner, key string) ([]byte, error) {
	value, err := s.rdb.HGet(ctx, ownerHash(owner), key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, owner, key string, value []byte) error {
	return s.rdb.HSet(ctx, ownerHash(owner), key, value).Err()
}

func (s *RedisStore) Delete(ctx context.Context, owner, key string) error {
	return s.rdb.HDel(ctx, ownerHash(owner), key).Err()
}

func (s *RedisStore) Keys(ctx context.Context, owner, prefix string) ([]string, error) {
	all, err := s.rdb.HKeys(ctx, ownerHash(owner)).Result()
	if err != nil {
		return nil, err
	}
	return filterKeys(all, prefix), nil
}

// Close releases the connection pool
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func filterKeys(keys []string, prefix string) []string {
	out := []string{}
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

/*
This project is the backend API for MealGo, a school meal and timetable companion built on open education data.
API Copyright (C) 2025 MealGo
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
