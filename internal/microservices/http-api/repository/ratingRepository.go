package repository

import (
	"context"
	"fmt"

	"carhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CarStats are the rating aggregates of one car
type CarStats struct {
	CarID       int64   `gorm:"column:car_id"`
	RatesNumber int64   `gorm:"column:rates_number"`
	AvgRating   float64 `gorm:"column:avg_rating"`
}

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListByCar(ctx context.Context, carID int64) ([]models.Rating, error)
	CountByCar(ctx context.Context, carID int64) (int64, error)
	AverageByCar(ctx context.Context, carID int64) (float64, error)
	StatsByCar(ctx context.Context) (map[int64]CarStats, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create a new rating
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rating).Error; err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

// ListByCar retrieves all ratings of a car, oldest first
func (r *ratingRepository) ListByCar(ctx context.Context, carID int64) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("id asc").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// CountByCar counts the ratings of a car
func (r *ratingRepository) CountByCar(ctx context.Context, carID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("car_id = ?", carID).Count(&count).Error
	return count, err
}

// AverageByCar calculates the mean rating of a car, 0 when unrated
func (r *ratingRepository) AverageByCar(ctx context.Context, carID int64) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("car_id = ?", carID).
		Scan(&avg).Error

	if err != nil {
		return 0, err
	}

	return avg.Average, nil
}

// StatsByCar aggregates every rated car in one query. Cars without ratings
// are absent from the map.
func (r *ratingRepository) StatsByCar(ctx context.Context) (map[int64]CarStats, error) {
	var rows []CarStats
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("car_id, COUNT(*) AS rates_number, AVG(rating) AS avg_rating").
		Group("car_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate car stats: %w", err)
	}

	stats := make(map[int64]CarStats, len(rows))
	for _, row := range rows {
		stats[row.CarID] = row
	}
	return stats, nil
}
