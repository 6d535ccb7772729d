package service

import (
	"context"
	"io"
	"log/slog"

	"carhub/database"
	"carhub/internal/ingestion/vpic"
	"carhub/internal/microservices/http-api/models"
	"carhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MockCatalog mocks the VehicleCatalog interface
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Lookup(ctx context.Context, makeName, model string) (vpic.Vehicle, error) {
	args := m.Called(ctx, makeName, model)
	return args.Get(0).(vpic.Vehicle), args.Error(1)
}

func (m *MockCatalog) ModelsForMake(ctx context.Context, makeName string, limit int) ([]vpic.Vehicle, error) {
	args := m.Called(ctx, makeName, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vpic.Vehicle), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// dbSuite wires real repositories over a fresh in-memory database per test
type dbSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	cars    repository.CarRepository
	ratings repository.RatingRepository
}

func (s *dbSuite) SetupTest() {
	db, err := database.Open("sqlite", "file::memory:")
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))

	s.ctx = context.Background()
	s.db = db
	s.cars = repository.NewCarRepository(db)
	s.ratings = repository.NewRatingRepository(db)
}

func (s *dbSuite) TearDownTest() {
	database.Close(s.db)
}

func (s *dbSuite) seedCar(carMake, model string) models.Car {
	car := models.Car{Make: carMake, Model: model}
	s.Require().NoError(s.cars.Create(s.ctx, &car))
	return car
}

func (s *dbSuite) seedRatings(carID int64, values ...int) {
	for _, v := range values {
		s.Require().NoError(s.ratings.Create(s.ctx, &models.Rating{CarID: carID, Rating: v}))
	}
}

func (s *dbSuite) carCount() int64 {
	var n int64
	s.Require().NoError(s.db.Model(&models.Car{}).Count(&n).Error)
	return n
}

func (s *dbSuite) ratingCount() int64 {
	var n int64
	s.Require().NoError(s.db.Model(&models.Rating{}).Count(&n).Error)
	return n
}
