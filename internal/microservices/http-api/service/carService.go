package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"carhub/internal/ingestion/vpic"
	"carhub/internal/microservices/http-api/dto"
	"carhub/internal/microservices/http-api/models"
	"carhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// VehicleCatalog is the part of the vPIC client the car service needs
type VehicleCatalog interface {
	Lookup(ctx context.Context, makeName, model string) (vpic.Vehicle, error)
	ModelsForMake(ctx context.Context, makeName string, limit int) ([]vpic.Vehicle, error)
}

type CarService interface {
	List(ctx context.Context) ([]dto.CarResponse, error)
	Get(ctx context.Context, id int64) (*dto.CarResponse, error)
	Create(ctx context.Context, makeName, model string) (*dto.CarResponse, error)
	Delete(ctx context.Context, id int64) error

	// vPIC models for a make, optionally stored
	ModelsForMake(ctx context.Context, makeName string) ([]dto.VehicleResponse, error)
	ImportByMake(ctx context.Context, makeName string) ([]dto.CarResponse, error)
	ImportForCars(ctx context.Context, ids []int64) (*dto.ImportResult, error)
}

// concurrent vPIC lookups during an admin import
const importWorkers = 4

type carService struct {
	cars        repository.CarRepository
	ratings     repository.RatingRepository
	catalog     VehicleCatalog
	importLimit int
	logger      *slog.Logger
}

func NewCarService(
	cars repository.CarRepository,
	ratings repository.RatingRepository,
	catalog VehicleCatalog,
	importLimit int,
	logger *slog.Logger,
) CarService {
	if logger == nil {
		logger = slog.Default()
	}
	return &carService{
		cars:        cars,
		ratings:     ratings,
		catalog:     catalog,
		importLimit: importLimit,
		logger:      logger,
	}
}

func (s *carService) List(ctx context.Context) ([]dto.CarResponse, error) {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.ratings.StatsByCar(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CarResponse, 0, len(cars))
	for _, car := range cars {
		st := stats[car.ID]
		resp = append(resp, dto.FromModelToCarResponse(car, st.RatesNumber, RoundRating(st.AvgRating)))
	}
	return resp, nil
}

func (s *carService) Get(ctx context.Context, id int64) (*dto.CarResponse, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return s.withStats(ctx, *car)
}

// Create validates make/model against vPIC with a single call and stores the
// names vPIC reports.
func (s *carService) Create(ctx context.Context, makeName, model string) (*dto.CarResponse, error) {
	vehicle, err := s.catalog.Lookup(ctx, makeName, model)
	if err != nil {
		return nil, err
	}

	car := &models.Car{Make: vehicle.Make, Model: vehicle.Model}
	if err := s.cars.Create(ctx, car); err != nil {
		if errors.Is(err, repository.ErrDuplicateModel) {
			return nil, ErrCarExists
		}
		return nil, err
	}

	s.logger.Info("car created", "id", car.ID, "make", car.Make, "model", car.Model)
	resp := dto.FromModelToCarResponse(*car, 0, 0)
	return &resp, nil
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCarNotFound
		}
		return err
	}
	s.logger.Info("car deleted", "id", id)
	return nil
}

func (s *carService) ModelsForMake(ctx context.Context, makeName string) ([]dto.VehicleResponse, error) {
	vehicles, err := s.catalog.ModelsForMake(ctx, makeName, s.importLimit)
	if err != nil {
		return nil, err
	}
	return dto.FromVehicles(vehicles), nil
}

// ImportByMake get-or-creates every normalized model of makeName and returns
// only the cars that did not exist before.
func (s *carService) ImportByMake(ctx context.Context, makeName string) ([]dto.CarResponse, error) {
	vehicles, err := s.catalog.ModelsForMake(ctx, makeName, s.importLimit)
	if err != nil {
		return nil, err
	}

	created := make([]dto.CarResponse, 0, len(vehicles))
	for _, v := range vehicles {
		car := &models.Car{Make: v.Make, Model: v.Model}
		isNew, err := s.cars.GetOrCreate(ctx, car)
		if err != nil {
			return nil, fmt.Errorf("import %s %s: %w", v.Make, v.Model, err)
		}
		if isNew {
			created = append(created, dto.FromModelToCarResponse(*car, 0, 0))
		}
	}

	s.logger.Info("imported cars by make", "make", makeName, "fetched", len(vehicles), "created", len(created))
	return created, nil
}

// ImportForCars runs ImportByMake once per distinct make of the selected cars,
// on a small worker pool. Results keep the order of the selected cars.
// Makes vPIC does not know are skipped.
func (s *carService) ImportForCars(ctx context.Context, ids []int64) (*dto.ImportResult, error) {
	if len(ids) == 0 {
		return nil, NewValidationError("car_ids", "This list may not be empty.")
	}

	cars, err := s.cars.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(cars) == 0 {
		return nil, ErrCarNotFound
	}

	var makes []string
	seen := make(map[string]bool)
	for _, car := range cars {
		key := strings.ToLower(strings.TrimSpace(car.Make))
		if seen[key] {
			continue
		}
		seen[key] = true
		makes = append(makes, car.Make)
	}

	created := make([][]dto.CarResponse, len(makes))
	importErrs := make([]error, len(makes))
	pool := vpic.NewWorkerPool(ctx, importWorkers, s.logger)
	pool.Start()
	for i, makeName := range makes {
		pool.Submit(func(ctx context.Context) error {
			created[i], importErrs[i] = s.ImportByMake(ctx, makeName)
			return importErrs[i]
		})
	}
	pool.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Created: []dto.CarResponse{}}
	for i, makeName := range makes {
		if err := importErrs[i]; err != nil {
			if errors.Is(err, vpic.ErrUnknownMake) {
				s.logger.Warn("skipping make unknown to vpic", "make", makeName)
				continue
			}
			return nil, err
		}
		result.Makes = append(result.Makes, makeName)
		result.Created = append(result.Created, created[i]...)
	}
	return result, nil
}

func (s *carService) withStats(ctx context.Context, car models.Car) (*dto.CarResponse, error) {
	count, err := s.ratings.CountByCar(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	avg, err := s.ratings.AverageByCar(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToCarResponse(car, count, RoundRating(avg))
	return &resp, nil
}
