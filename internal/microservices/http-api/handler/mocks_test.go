package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"carhub/internal/microservices/http-api/dto"
	"carhub/internal/microservices/http-api/handler"
	"carhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockCarService struct {
	mock.Mock
}

func (m *MockCarService) List(ctx context.Context) ([]dto.CarResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CarResponse), args.Error(1)
}

func (m *MockCarService) Get(ctx context.Context, id int64) (*dto.CarResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CarResponse), args.Error(1)
}

func (m *MockCarService) Create(ctx context.Context, makeName, model string) (*dto.CarResponse, error) {
	args := m.Called(ctx, makeName, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CarResponse), args.Error(1)
}

func (m *MockCarService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCarService) ModelsForMake(ctx context.Context, makeName string) ([]dto.VehicleResponse, error) {
	args := m.Called(ctx, makeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.VehicleResponse), args.Error(1)
}

func (m *MockCarService) ImportByMake(ctx context.Context, makeName string) ([]dto.CarResponse, error) {
	args := m.Called(ctx, makeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CarResponse), args.Error(1)
}

func (m *MockCarService) ImportForCars(ctx context.Context, ids []int64) (*dto.ImportResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportResult), args.Error(1)
}

type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Rate(ctx context.Context, carID int64, value int) (*dto.RatingResponse, error) {
	args := m.Called(ctx, carID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RatingResponse), args.Error(1)
}

type MockPopularityService struct {
	mock.Mock
}

func (m *MockPopularityService) Popular(ctx context.Context) ([]dto.CarResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CarResponse), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(username, password string) (string, time.Duration, error) {
	args := m.Called(username, password)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

// --- SETUP ---

type mocks struct {
	cars       *MockCarService
	ratings    *MockRatingService
	popularity *MockPopularityService
	auth       *MockAuthService
}

func setupRouter() (*gin.Engine, *mocks) {
	gin.SetMode(gin.TestMode)
	m := &mocks{
		cars:       new(MockCarService),
		ratings:    new(MockRatingService),
		popularity: new(MockPopularityService),
		auth:       new(MockAuthService),
	}
	r := handler.NewRouter(handler.Services{
		Cars:       m.cars,
		Ratings:    m.ratings,
		Popularity: m.popularity,
		Auth:       m.auth,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return r, m
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
