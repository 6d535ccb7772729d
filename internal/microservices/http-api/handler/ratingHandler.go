package handler

import (
	"context"
	"net/http"

	"carhub/internal/microservices/http-api/dto"
	"carhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

func (h *RatingHandler) RegisterRoutes(r gin.IRoutes) {
	handle(r, http.MethodPost, "/rate", h.Create)
}

// Create stores a rating for a car
// POST /rate/
func (h *RatingHandler) Create(c *gin.Context) {
	var req dto.CreateRatingDTO
	if err := bind(c, &req); err != nil {
		respondBindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	rating, err := h.ratingService.Rate(ctx, *req.CarID, *req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}
