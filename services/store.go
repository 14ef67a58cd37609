package services

import (
	"context"
	"fmt"

	"phishguard-api/models"

	"gorm.io/gorm"
)

// PredictionStore is the durable, append-only log of predictions.
type PredictionStore struct {
	db *gorm.DB
}

func NewPredictionStore(db *gorm.DB) *PredictionStore {
	return &PredictionStore{db: db}
}

// AutoMigrate creates or updates the predictions table.
func (s *PredictionStore) AutoMigrate() error {
	if err := s.db.AutoMigrate(&models.Prediction{}); err != nil {
		return fmt.Errorf("migrate predictions: %w", err)
	}
	return nil
}

// Append inserts p and returns the id the database assigned to it.
func (s *PredictionStore) Append(ctx context.Context, p *models.Prediction) (uint, error) {
	p.ID = 0
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

// ListAll returns every prediction in insertion order.
func (s *PredictionStore) ListAll(ctx context.Context) ([]models.Prediction, error) {
	var rows []models.Prediction
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPage returns up to limit predictions with id > afterID, oldest first.
func (s *PredictionStore) ListPage(ctx context.Context, afterID uint, limit int) ([]models.Prediction, error) {
	var rows []models.Prediction
	err := s.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of stored predictions.
func (s *PredictionStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Prediction{}).Count(&n).Error
	return n, err
}
