package repository

import (
	"context"
	"errors"

	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	domainRepo "github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	"gorm.io/gorm"
)

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new document counter repository
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

// Next advances the named counter inside a transaction. The stored value
// is the last allocated number, so a single UPDATE with value = value + 1
// both reserves and reveals the next one. A counter row that does not
// exist yet is created holding the seed.
func (r *counterRepository) Next(ctx context.Context, name string, seed int64) (int64, error) {
	var allocated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.DocumentCounter{}).
			Where("name = ?", name).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			counter := entity.DocumentCounter{Name: name, Value: seed}
			if err := tx.Create(&counter).Error; err != nil {
				// Lost the race to create: advance the existing row instead.
				retry := tx.Model(&entity.DocumentCounter{}).
					Where("name = ?", name).
					Update("value", gorm.Expr("value + 1"))
				if retry.Error != nil {
					return retry.Error
				}
				if retry.RowsAffected == 0 {
					return err
				}
			} else {
				allocated = seed
				return nil
			}
		}

		var counter entity.DocumentCounter
		if err := tx.Where("name = ?", name).First(&counter).Error; err != nil {
			return err
		}
		allocated = counter.Value
		return nil
	})
	return allocated, err
}

func (r *counterRepository) Current(ctx context.Context, name string) (int64, bool, error) {
	var counter entity.DocumentCounter
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return counter.Value, true, nil
}
