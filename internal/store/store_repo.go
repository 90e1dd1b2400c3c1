package store

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=store_repo.go -destination=mock/store_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Get(ctx context.Context, key string) (*StoreDocument, error)
	Save(ctx context.Context, doc *StoreDocument) error
	Delete(ctx context.Context, key string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Get(ctx context.Context, key string) (*StoreDocument, error) {
	var doc StoreDocument
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&doc).Error
	return &doc, err
}

func (r *repository) Save(ctx context.Context, doc *StoreDocument) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(doc).Error
}

func (r *repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&StoreDocument{}).Error
}
