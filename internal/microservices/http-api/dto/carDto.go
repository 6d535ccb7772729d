package dto

import (
	"carhub/internal/ingestion/vpic"
	"carhub/internal/microservices/http-api/models"
)

// CreateCarDTO used for POST /cars/
type CreateCarDTO struct {
	Make  string `json:"make" form:"make" binding:"required,max=100"`
	Model string `json:"model" form:"model" binding:"required,max=100"`
}

// CarResponse is a car with its derived rating statistics
type CarResponse struct {
	ID          int64   `json:"id"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	AvgRating   float64 `json:"avg_rating"`
	RatesNumber int64   `json:"rates_number"`
}

// CarsByMakeDTO used for POST /cars_by_make/
type CarsByMakeDTO struct {
	Make   string   `json:"make" form:"make" binding:"required,max=100"`
	Create FlexBool `json:"create" form:"create"`
}

// VehicleResponse is a normalized catalog entry that was not stored
type VehicleResponse struct {
	Make  string `json:"make"`
	Model string `json:"model"`
}

// ImportSelectedDTO used for the admin "import all cars by make" action
type ImportSelectedDTO struct {
	CarIDs []int64 `json:"car_ids" form:"car_ids" binding:"required,min=1"`
}

// ImportResult lists the cars an import created
type ImportResult struct {
	Makes   []string      `json:"makes,omitempty"`
	Created []CarResponse `json:"created"`
}

// Converters
func FromModelToCarResponse(car models.Car, ratesNumber int64, avgRating float64) CarResponse {
	return CarResponse{
		ID:          car.ID,
		Make:        car.Make,
		Model:       car.Model,
		AvgRating:   avgRating,
		RatesNumber: ratesNumber,
	}
}

func FromVehicles(vehicles []vpic.Vehicle) []VehicleResponse {
	resp := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, VehicleResponse{Make: v.Make, Model: v.Model})
	}
	return resp
}
