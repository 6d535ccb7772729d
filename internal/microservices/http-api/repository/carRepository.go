package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carhub/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDuplicateModel = errors.New("car with this model already exists")

type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	GetOrCreate(ctx context.Context, car *models.Car) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Car, error)
	List(ctx context.Context) ([]models.Car, error)
	Delete(ctx context.Context, id int64) error
}

type carRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

// Create inserts a car. The unique index on model decides duplicates.
func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateModel
		}
		return fmt.Errorf("create car: %w", err)
	}
	// GORM will populate car.ID and car.CreatedAt
	return nil
}

// GetOrCreate inserts car unless its model is already stored, in which case
// car is overwritten with the stored row. Reports whether a row was inserted.
func (r *carRepository) GetOrCreate(ctx context.Context, car *models.Car) (bool, error) {
	db := r.db.WithContext(ctx)

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model"}},
		DoNothing: true,
	}).Create(car)
	if result.Error != nil {
		return false, fmt.Errorf("get or create car: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var existing models.Car
	if err := db.Where("model = ?", car.Model).First(&existing).Error; err != nil {
		return false, fmt.Errorf("load existing car: %w", err)
	}
	*car = existing
	return false, nil
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Car, error) {
	var cars []models.Car
	if len(ids) == 0 {
		return cars, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("get cars by ids: %w", err)
	}
	return cars, nil
}

func (r *carRepository) List(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := r.db.WithContext(ctx).Order("id asc").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	return cars, nil
}

// Delete removes the car and its ratings in one transaction.
func (r *carRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return fmt.Errorf("delete ratings: %w", err)
		}
		result := tx.Delete(&models.Car{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete car: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
