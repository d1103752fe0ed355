package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis guarda cada documento numa chave string, com prefixo opcional
type Redis struct {
	r      *redis.Client
	prefix string
}

func NewRedis(r *redis.Client, prefix string) *Redis {
	return &Redis{r: r, prefix: prefix}
}

func (s *Redis) key(k string) string { return s.prefix + k }

func (s *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.r.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// PutAll grava todas as chaves em MULTI/EXEC
func (s *Redis) PutAll(ctx context.Context, docs []Document) error {
	_, err := s.r.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, d := range docs {
			pipe.Set(ctx, s.key(d.Key), string(d.Value), 0)
		}
		return nil
	})
	return err
}
