package dto

import "carhub/internal/microservices/http-api/models"

// CreateRatingDTO for POST /rate/. Pointers so that 0 reports a range
// error instead of a missing field.
type CreateRatingDTO struct {
	CarID  *int64 `json:"car_id" form:"car_id" binding:"required"`
	Rating *int   `json:"rating" form:"rating" binding:"required,min=1,max=5"`
}

// RatingResponse for returning a stored rating
type RatingResponse struct {
	ID     int64 `json:"id"`
	CarID  int64 `json:"car_id"`
	Rating int   `json:"rating"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		ID:     rating.ID,
		CarID:  rating.CarID,
		Rating: rating.Rating,
	}
}
