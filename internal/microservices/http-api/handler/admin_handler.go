package handler

import (
	"context"
	"net/http"

	"carhub/internal/microservices/http-api/dto"
	"carhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin actions. Routes must sit behind
// AuthMiddleware and RequireAdmin.
type AdminHandler struct {
	svc service.CarService
}

func NewAdminHandler(svc service.CarService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) RegisterRoutes(r gin.IRoutes) {
	handle(r, http.MethodPost, "/cars/import-by-make", h.ImportForSelected)
}

// ImportForSelected imports vPIC models for the makes of the selected cars
// POST /admin/cars/import-by-make
func (h *AdminHandler) ImportForSelected(c *gin.Context) {
	var in dto.ImportSelectedDTO
	if err := bind(c, &in); err != nil {
		respondBindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*lookupTimeout)
	defer cancel()

	result, err := h.svc.ImportForCars(ctx, in.CarIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
