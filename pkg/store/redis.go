package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
)

// Redis key layout.
const (
	redisGraphPrefix = "columnview:graph:"
	redisIndexKey    = "columnview:graphs"
)

// RedisStore keeps each graph as a JSON string and the ID catalog as a set.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore connects to addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	if addr == "" {
		return nil, cverr.New(cverr.ErrCodeInvalidInput, "redis address cannot be empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, cverr.Wrap(cverr.ErrCodeUnavailable, err, "connect to redis at %s", addr)
	}
	return NewRedisStoreFromClient(client), nil
}

// NewRedisStoreFromClient wraps an existing client. Close closes the client.
func NewRedisStoreFromClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func redisGraphKey(id int) string { return redisGraphPrefix + strconv.Itoa(id) }

func (s *RedisStore) List(ctx context.Context) ([]int, error) {
	members, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, cverr.Wrap(cverr.ErrCodeUnavailable, err, "list graphs")
	}
	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *RedisStore) Get(ctx context.Context, id int) (graph.Graph, error) {
	data, err := s.client.Get(ctx, redisGraphKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return graph.Graph{}, notFound(id)
	}
	if err != nil {
		return graph.Graph{}, cverr.Wrap(cverr.ErrCodeUnavailable, err, "get graph %d", id)
	}
	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		return graph.Graph{}, cverr.Wrap(cverr.ErrCodeUnavailable, err, "decode graph %d", id)
	}
	return g, nil
}

// Put stores g and registers its ID in one transaction.
func (s *RedisStore) Put(ctx context.Context, id int, g graph.Graph) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode graph %d: %w", id, err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisGraphKey(id), data, 0)
		pipe.SAdd(ctx, redisIndexKey, strconv.Itoa(id))
		return nil
	})
	if err != nil {
		return cverr.Wrap(cverr.ErrCodeUnavailable, err, "put graph %d", id)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var (
	_ Store  = (*RedisStore)(nil)
	_ Writer = (*RedisStore)(nil)
)
