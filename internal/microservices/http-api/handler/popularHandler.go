package handler

import (
	"context"
	"net/http"

	"carhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type PopularHandler struct {
	svc service.PopularityService
}

func NewPopularHandler(svc service.PopularityService) *PopularHandler {
	return &PopularHandler{svc: svc}
}

func (h *PopularHandler) RegisterRoutes(r gin.IRoutes) {
	handle(r, http.MethodGet, "/popular", h.List)
}

// List returns all cars, most rated first
// GET /popular/
func (h *PopularHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	ranked, err := h.svc.Popular(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranked)
}
