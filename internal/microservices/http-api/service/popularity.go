package service

import (
	"context"
	"math"
	"sort"

	"carhub/internal/microservices/http-api/dto"
	"carhub/internal/microservices/http-api/models"
	"carhub/internal/microservices/http-api/repository"
)

type PopularityService interface {
	Popular(ctx context.Context) ([]dto.CarResponse, error)
}

type popularityService struct {
	cars    repository.CarRepository
	ratings repository.RatingRepository
}

func NewPopularityService(cars repository.CarRepository, ratings repository.RatingRepository) PopularityService {
	return &popularityService{cars: cars, ratings: ratings}
}

func (s *popularityService) Popular(ctx context.Context) ([]dto.CarResponse, error) {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.ratings.StatsByCar(ctx)
	if err != nil {
		return nil, err
	}
	return RankByPopularity(cars, stats), nil
}

// RankByPopularity orders cars by rating count, most rated first. Cars with
// equal counts keep ascending id order. Unrated cars are included with zero
// counts.
func RankByPopularity(cars []models.Car, stats map[int64]repository.CarStats) []dto.CarResponse {
	ranked := make([]dto.CarResponse, 0, len(cars))
	for _, car := range cars {
		st := stats[car.ID]
		ranked = append(ranked, dto.FromModelToCarResponse(car, st.RatesNumber, RoundRating(st.AvgRating)))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ID < ranked[j].ID
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RatesNumber > ranked[j].RatesNumber
	})
	return ranked
}

// RoundRating rounds an average to one decimal, half away from zero.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
