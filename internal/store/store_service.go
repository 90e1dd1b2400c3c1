package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const cacheTTL = 30 * time.Second

//go:generate mockgen -source=store_service.go -destination=mock/store_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Save(ctx context.Context, key string, data json.RawMessage) error
	Init(ctx context.Context, key string, data json.RawMessage) (initialized bool, err error)
	Reset(ctx context.Context, key string, data json.RawMessage) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("store.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("store.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func cacheKey(key string) string {
	return fmt.Sprintf("store:doc:%s", key)
}

// Get serves the document from the redis cache when possible and
// collapses concurrent cache misses into one database read.
func (s *service) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey(key)).Bytes(); err == nil {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		doc, err := s.repo.Get(ctx, key)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return json.RawMessage(nil), nil
			}
			return nil, err
		}

		if s.rdb != nil {
			if err := s.rdb.Set(ctx, cacheKey(key), doc.Data, cacheTTL).Err(); err != nil {
				s.logger.Warn("cache fill failed", zap.String("key", key), zap.Error(err))
			}
		}
		return json.RawMessage(doc.Data), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

func (s *service) Save(ctx context.Context, key string, data json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	doc := &StoreDocument{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	if err := qtx.Save(ctx, doc); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, key)
	return nil
}

// Init seeds the document only when the key is still empty.
func (s *service) Init(ctx context.Context, key string, data json.RawMessage) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.Get(ctx, key)
	if err == nil {
		return false, tx.Commit()
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	doc := &StoreDocument{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	if err := qtx.Save(ctx, doc); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}

	s.invalidate(ctx, key)
	return true, nil
}

func (s *service) Reset(ctx context.Context, key string, data json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, key); err != nil {
		return err
	}
	doc := &StoreDocument{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	if err := qtx.Save(ctx, doc); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, key)
	return nil
}

func (s *service) invalidate(ctx context.Context, key string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKey(key)).Err(); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
