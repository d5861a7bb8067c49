package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymhub/config"
	"gymhub/internal/domain"
	"gymhub/internal/middleware"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

type GymHandler struct {
	gymRepo *repository.GymRepository
	search  config.SearchConfig
}

func NewGymHandler(gymRepo *repository.GymRepository, search config.SearchConfig) *GymHandler {
	return &GymHandler{gymRepo: gymRepo, search: search}
}

type gymRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address"`
	WorkingHours string  `json:"working_hours"`
}

// Create registers a gym under the calling owner.
func (h *GymHandler) Create(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req gymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g := &models.Gym{
		OwnerID:      ownerID,
		Name:         req.Name,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Address:      req.Address,
		WorkingHours: req.WorkingHours,
	}
	if err := h.gymRepo.Create(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create gym"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"gym": g})
}

func (h *GymHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return
	}
	g, err := h.gymRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gym": g})
}

func (h *GymHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	gyms, err := h.gymRepo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list gyms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gyms": gyms})
}

func (h *GymHandler) ListMine(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	gyms, err := h.gymRepo.ListByOwnerID(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list gyms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gyms": gyms})
}

// Nearest ranks gyms by distance from the given point.
func (h *GymHandler) Nearest(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}
	radius := h.search.MaxRadiusKm
	if v, err := strconv.ParseFloat(c.Query("radius_km"), 64); err == nil && v > 0 && v < radius {
		radius = v
	}
	results, err := h.gymRepo.Nearest(lat, lng, radius, h.search.NearestLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gyms": results})
}

// Update lets the owner (or staff) edit a gym.
func (h *GymHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return
	}
	g, err := h.gymRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
		return
	}
	if g.OwnerID != userID && !middleware.IsStaff(c) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	var req gymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g.Name = req.Name
	g.Description = req.Description
	g.Latitude = req.Latitude
	g.Longitude = req.Longitude
	g.Address = req.Address
	g.WorkingHours = req.WorkingHours
	if err := h.gymRepo.Update(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update gym"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gym": g})
}

func (h *GymHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return
	}
	g, err := h.gymRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
		return
	}
	if g.OwnerID != userID && !middleware.IsStaff(c) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	if err := h.gymRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete gym"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gym deleted"})
}
