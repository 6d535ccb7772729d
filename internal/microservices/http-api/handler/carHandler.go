package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"carhub/internal/microservices/http-api/dto"
	"carhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	dbTimeout     = 5 * time.Second
	lookupTimeout = 30 * time.Second
)

type CarHandler struct {
	svc service.CarService
}

func NewCarHandler(svc service.CarService) *CarHandler {
	return &CarHandler{svc: svc}
}

func (h *CarHandler) RegisterRoutes(r gin.IRoutes) {
	handle(r, http.MethodGet, "/cars", h.List)
	handle(r, http.MethodPost, "/cars", h.Create)
	handle(r, http.MethodGet, "/cars/:id", h.Get)
	handle(r, http.MethodDelete, "/cars/:id", h.Delete)
	handle(r, http.MethodPost, "/cars_by_make", h.ListByMake)
}

// List returns every car with its rating statistics
// GET /cars/
func (h *CarHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	cars, err := h.svc.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

// GET /cars/:id/
func (h *CarHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	car, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// Create checks make/model against vPIC and stores the car
// POST /cars/
func (h *CarHandler) Create(c *gin.Context) {
	var in dto.CreateCarDTO
	if err := bind(c, &in); err != nil {
		respondBindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	car, err := h.svc.Create(ctx, in.Make, in.Model)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

// DELETE /cars/:id/
func (h *CarHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByMake returns up to IMPORT_LIMIT vPIC models of a make. With a truthy
// create flag it stores them and returns only the newly created cars.
// POST /cars_by_make/
func (h *CarHandler) ListByMake(c *gin.Context) {
	var in dto.CarsByMakeDTO
	if err := bind(c, &in); err != nil {
		respondBindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	if in.Create.Bool() {
		created, err := h.svc.ImportByMake(ctx, in.Make)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
		return
	}

	vehicles, err := h.svc.ModelsForMake(ctx, in.Make)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
