package service

import (
	"context"
	"errors"
	"fmt"

	"carhub/internal/microservices/http-api/dto"
	"carhub/internal/microservices/http-api/models"
	"carhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type RatingService interface {
	Rate(ctx context.Context, carID int64, value int) (*dto.RatingResponse, error)
}

type ratingService struct {
	ratings repository.RatingRepository
	cars    repository.CarRepository
}

func NewRatingService(ratings repository.RatingRepository, cars repository.CarRepository) RatingService {
	return &ratingService{
		ratings: ratings,
		cars:    cars,
	}
}

// Rate stores a 1..5 rating for an existing car. Nothing is written when
// validation fails.
func (s *ratingService) Rate(ctx context.Context, carID int64, value int) (*dto.RatingResponse, error) {
	verr := &ValidationError{Fields: map[string][]string{}}

	switch {
	case value < models.MinRating:
		verr.Fields["rating"] = []string{fmt.Sprintf("Ensure this value is greater than or equal to %d.", models.MinRating)}
	case value > models.MaxRating:
		verr.Fields["rating"] = []string{fmt.Sprintf("Ensure this value is less than or equal to %d.", models.MaxRating)}
	}

	// Check if car exists
	if _, err := s.cars.GetByID(ctx, carID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		verr.Fields["car_id"] = []string{fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", carID)}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	rating := &models.Rating{CarID: carID, Rating: value}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}
	return dto.FromModelToRatingResponse(rating), nil
}
