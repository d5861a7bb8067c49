package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gymhub/internal/domain"
	"gymhub/internal/middleware"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

type PackageHandler struct {
	packageRepo *repository.PackageRepository
	gymRepo     *repository.GymRepository
}

func NewPackageHandler(packageRepo *repository.PackageRepository, gymRepo *repository.GymRepository) *PackageHandler {
	return &PackageHandler{packageRepo: packageRepo, gymRepo: gymRepo}
}

type packageRequest struct {
	GymID          uint            `json:"gym_id" binding:"required"`
	Title          string          `json:"title" binding:"required"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	DurationDays   int             `json:"duration_days" binding:"required"`
	CommissionRate float64         `json:"commission_rate"`
}

// Create adds a package to one of the owner's gyms. Only staff may set
// the commission rate; owner requests keep the default.
func (h *PackageHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req packageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := h.gymRepo.GetByID(req.GymID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
		return
	}
	if g.OwnerID != userID && !middleware.IsStaff(c) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
		return
	}
	p := &models.Package{
		GymID:        req.GymID,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
	}
	if middleware.IsStaff(c) && req.CommissionRate > 0 {
		p.CommissionRate = req.CommissionRate
	} else {
		p.CommissionRate = 0.05
	}
	if err := h.packageRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create package"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"package": p})
}

func (h *PackageHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}
	p, err := h.packageRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": p})
}

func (h *PackageHandler) ListByGym(c *gin.Context) {
	gymID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return
	}
	pkgs, err := h.packageRepo.ListByGymID(gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list packages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": pkgs})
}

func (h *PackageHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}
	p, err := h.packageRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		return
	}
	if p.Gym.OwnerID != userID && !middleware.IsStaff(c) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	var req struct {
		Title          string           `json:"title"`
		Description    string           `json:"description"`
		Price          *decimal.Decimal `json:"price"`
		DurationDays   *int             `json:"duration_days"`
		CommissionRate *float64         `json:"commission_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}
		p.Price = *req.Price
	}
	if req.DurationDays != nil {
		p.DurationDays = *req.DurationDays
	}
	if req.CommissionRate != nil && middleware.IsStaff(c) {
		p.CommissionRate = *req.CommissionRate
	}
	if err := h.packageRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update package"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": p})
}

func (h *PackageHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}
	p, err := h.packageRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		return
	}
	if p.Gym.OwnerID != userID && !middleware.IsStaff(c) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	if err := h.packageRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete package"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "package deleted"})
}
